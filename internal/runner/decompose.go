package runner

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/prompt"
	"github.com/felixgeelhaar/promptplay/internal/schema"
)

// DecomposeWorkflow labels the decomposition workflow.
const DecomposeWorkflow = "decompose"

// DefaultGoal is decomposed when no goal is given.
const DefaultGoal = "Develop a login page with email/password authentication"

// Decomposer breaks a goal into an epic, stories and tasks.
type Decomposer struct {
	Deps
	// OutputPath defaults to persist.DecomposeFile.
	OutputPath string
}

// Run decomposes goal and persists the result. Replies whose task
// references do not resolve are rejected like schema violations.
func (d *Decomposer) Run(ctx context.Context, goal string) (*schema.TaskDecompositionResult, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		goal = DefaultGoal
	}

	tpl, err := d.Templates.Load(prompt.TaskDecomposition)
	if err != nil {
		return nil, err
	}
	system := prompt.Render(tpl, map[string]string{"task_description": goal})

	result, err := exchange[schema.TaskDecompositionResult](ctx, d.Deps, DecomposeWorkflow, system, goal, schema.CheckIntegrity)
	if err != nil {
		return nil, err
	}

	d.logger().Info("goal decomposed",
		"stories", len(result.Stories),
		"tasks", len(result.Tasks()),
		"hours", result.ExecutionPlan.TotalEstimatedHours,
	)
	d.Presenter.Decomposition(result)
	return result, save(d.Deps, DecomposeWorkflow, outputOr(d.OutputPath, persist.DecomposeFile), result)
}
