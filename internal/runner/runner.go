// Package runner implements the single-turn workflows: issue scoring,
// goal decomposition and role dispatch. Each runner sends one request,
// validates the structured reply, then renders and persists it.
package runner

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/felixgeelhaar/promptplay/internal/extract"
	"github.com/felixgeelhaar/promptplay/internal/log"
	"github.com/felixgeelhaar/promptplay/internal/metrics"
	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/provider"
	"github.com/felixgeelhaar/promptplay/internal/schema"
)

// ErrRejected wraps the extraction failure of a reply that was reported
// to the user and not persisted.
var ErrRejected = stderrors.New("model response rejected")

// Templates provides system prompt templates by name.
type Templates interface {
	Load(name string) (string, error)
}

// Presenter shows workflow results to the user.
type Presenter interface {
	Score(result *schema.ScoreResult)
	Decomposition(result *schema.TaskDecompositionResult)
	Dispatch(result *schema.DispatchResult)
	Rejected(workflow, excerpt string, err error)
	Saved(path string)
	Notice(msg string)
}

// Deps are the collaborators shared by all runners.
type Deps struct {
	Client    provider.ChatClient
	Templates Templates
	Presenter Presenter
	Logger    *log.Logger
	Metrics   *metrics.Metrics
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.Discard()
	}
	return d.Logger
}

// exchange sends one user message and parses the reply into T. check runs
// extra semantic checks; its error is reported as a schema violation.
func exchange[T any, PT interface {
	*T
	schema.Structured
}](ctx context.Context, d Deps, workflow, systemPrompt, userMessage string, check func(*T) error) (*T, error) {
	ctx = provider.WithWorkflow(ctx, workflow)
	logger := d.logger().With("workflow", workflow)

	raw, err := d.Client.Chat(ctx, systemPrompt, []provider.Message{provider.UserMessage(userMessage)})
	if err != nil {
		return nil, err
	}

	result, err := extract.Parse[T, PT](raw)
	if err == nil && check != nil {
		if cerr := check(result); cerr != nil {
			err = extract.Violation(raw, cerr)
		}
	}
	if err != nil {
		kind := extract.KindOf(err)
		d.Metrics.RecordExtraction(workflow, kind.String())
		logger.WithError(err).Error("failed to parse model response", "kind", kind.String())
		d.Presenter.Rejected(workflow, extract.Excerpt(raw), err)
		return nil, fmt.Errorf("%s: %w: %w", workflow, ErrRejected, err)
	}

	d.Metrics.RecordExtraction(workflow, "ok")
	return result, nil
}

func save(d Deps, workflow, path string, v any) error {
	if err := persist.WriteJSON(path, v); err != nil {
		return err
	}
	d.Metrics.RecordPersisted(workflow)
	d.logger().Info("result saved", "workflow", workflow, "path", path)
	d.Presenter.Saved(path)
	return nil
}
