package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartCommandSpan creates a span for a CLI command execution.
//
//	ctx, span := telemetry.StartCommandSpan(ctx, "score")
//	defer span.End()
func StartCommandSpan(ctx context.Context, cmdName string) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("commands")
	ctx, span := tracer.Start(ctx, "command."+cmdName)

	span.SetAttributes(
		attribute.String("command", cmdName),
		attribute.String("component", "cli"),
	)

	return ctx, span
}

// StartChatSpan creates a span for one chat call.
func StartChatSpan(ctx context.Context, providerName, workflow string, messages int) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("providers")
	ctx, span := tracer.Start(ctx, "provider.chat")

	span.SetAttributes(
		attribute.String("provider", providerName),
		attribute.String("workflow", workflow),
		attribute.Int("messages", messages),
		attribute.String("component", "provider"),
	)

	return ctx, span
}

// StartRoundSpan creates a span for one brainstorm round.
func StartRoundSpan(ctx context.Context, sessionID string, round int) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("brainstorm")
	ctx, span := tracer.Start(ctx, "brainstorm.round")

	span.SetAttributes(
		attribute.String("session_id", sessionID),
		attribute.Int("round", round),
	)

	return ctx, span
}

// RecordSuccess marks a span as successful with optional result attributes.
func RecordSuccess(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
	span.SetStatus(codes.Ok, "")
}

// RecordError records an error in a span and sets error status.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.Bool("error", true))
}
