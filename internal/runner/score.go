package runner

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/promptplay/internal/errors"
	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/prompt"
	"github.com/felixgeelhaar/promptplay/internal/schema"
)

// ScoreWorkflow labels the scoring workflow.
const ScoreWorkflow = "score"

// Scorer rates an issue description for readiness.
type Scorer struct {
	Deps
	// OutputPath defaults to persist.ScoreFile.
	OutputPath string
}

// Run scores issue and persists the result.
func (s *Scorer) Run(ctx context.Context, issue string) (*schema.ScoreResult, error) {
	issue = strings.TrimSpace(issue)
	if issue == "" {
		return nil, errors.NewInputMissingError("issue text")
	}

	system, err := s.Templates.Load(prompt.IssueScoring)
	if err != nil {
		return nil, err
	}

	result, err := exchange[schema.ScoreResult](ctx, s.Deps, ScoreWorkflow, system, "Please score this issue:\n\n"+issue, nil)
	if err != nil {
		return nil, err
	}

	s.logger().Info("issue scored", "total", result.TotalScore)
	s.Presenter.Score(result)
	return result, save(s.Deps, ScoreWorkflow, outputOr(s.OutputPath, persist.ScoreFile), result)
}

func outputOr(path, fallback string) string {
	if strings.TrimSpace(path) == "" {
		return fallback
	}
	return path
}
