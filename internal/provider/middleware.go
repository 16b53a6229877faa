package provider

import (
	"context"
	stderrors "errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/felixgeelhaar/promptplay/internal/errors"
	"github.com/felixgeelhaar/promptplay/internal/log"
	"github.com/felixgeelhaar/promptplay/internal/metrics"
	"github.com/felixgeelhaar/promptplay/internal/telemetry"
)

// Middleware decorates a ChatClient.
type Middleware func(ChatClient) ChatClient

// Wrap applies middlewares so that the first one listed is the outermost.
func Wrap(c ChatClient, mws ...Middleware) ChatClient {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			c = mws[i](c)
		}
	}
	return c
}

type workflowKey struct{}

// WithWorkflow tags ctx with the workflow issuing chat calls, such as
// "brainstorm" or "score". Middlewares use it as a label.
func WithWorkflow(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, workflowKey{}, name)
}

// WorkflowFrom returns the workflow set by WithWorkflow, or "unknown".
func WorkflowFrom(ctx context.Context) string {
	if name, ok := ctx.Value(workflowKey{}).(string); ok && name != "" {
		return name
	}
	return "unknown"
}

// decorated keeps the backend name visible through middleware layers.
type decorated struct {
	ChatFunc
	name string
}

func (d decorated) Name() string { return d.name }

func decorate(next ChatClient, fn ChatFunc) ChatClient {
	return decorated{ChatFunc: fn, name: NameOf(next)}
}

// WithLogging logs each call at debug level and failures at error level.
func WithLogging(logger *log.Logger) Middleware {
	return func(next ChatClient) ChatClient {
		return decorate(next, func(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
			l := logger.WithContext(ctx).With(
				"provider", NameOf(next),
				"workflow", WorkflowFrom(ctx),
			)
			l.Debug("sending chat request", "messages", len(messages), "system_prompt_chars", len(systemPrompt))

			start := time.Now()
			reply, err := next.Chat(ctx, systemPrompt, messages)
			if err != nil {
				l.WithError(err).Error("chat request failed", "duration", time.Since(start))
				return "", err
			}
			l.Debug("chat reply received", "duration", time.Since(start), "reply_chars", len(reply))
			return reply, nil
		})
	}
}

// WithMetrics records call counts and latency. A nil m disables recording.
func WithMetrics(m *metrics.Metrics) Middleware {
	return func(next ChatClient) ChatClient {
		return decorate(next, func(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
			start := time.Now()
			reply, err := next.Chat(ctx, systemPrompt, messages)
			m.RecordModelCall(NameOf(next), WorkflowFrom(ctx), err == nil, time.Since(start))
			return reply, err
		})
	}
}

// WithTracing wraps each call in a provider.chat span.
func WithTracing() Middleware {
	return func(next ChatClient) ChatClient {
		return decorate(next, func(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
			ctx, span := telemetry.StartChatSpan(ctx, NameOf(next), WorkflowFrom(ctx), len(messages))
			defer span.End()

			reply, err := next.Chat(ctx, systemPrompt, messages)
			if err != nil {
				telemetry.RecordError(span, err)
				return "", err
			}
			telemetry.RecordSuccess(span, attribute.Int("reply_chars", len(reply)))
			return reply, nil
		})
	}
}

// WithTimeout bounds each call. A deadline hit inside the call becomes a
// PROVIDER-005 error; cancellation of the parent context passes through.
func WithTimeout(d time.Duration) Middleware {
	return func(next ChatClient) ChatClient {
		if d <= 0 {
			return next
		}
		return decorate(next, func(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
			callCtx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			reply, err := next.Chat(callCtx, systemPrompt, messages)
			if err != nil && ctx.Err() == nil && stderrors.Is(callCtx.Err(), context.DeadlineExceeded) {
				return "", errors.NewProviderTimeoutError(NameOf(next), err)
			}
			return reply, err
		})
	}
}
