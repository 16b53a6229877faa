package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/promptplay/internal/errors"
	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/prompt"
	"github.com/felixgeelhaar/promptplay/internal/schema"
)

// DispatchWorkflow labels the dispatch workflow.
const DispatchWorkflow = "dispatch"

// DecomposeFirst is suggested when there is no decomposition to dispatch.
const DecomposeFirst = "Run 'promptplay decompose' first to generate tasks"

// TaskBrief is the part of a task the dispatch prompt sees.
type TaskBrief struct {
	TaskID             string   `json:"task_id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Dependencies       []string `json:"dependencies"`
	AcceptanceCriteria string   `json:"acceptance_criteria"`
}

// Briefs projects every task of r in story order.
func Briefs(r *schema.TaskDecompositionResult) []TaskBrief {
	tasks := r.Tasks()
	briefs := make([]TaskBrief, 0, len(tasks))
	for _, t := range tasks {
		deps := t.Dependencies
		if deps == nil {
			deps = []string{}
		}
		briefs = append(briefs, TaskBrief{
			TaskID:             t.TaskID,
			Title:              t.Title,
			Description:        t.Description,
			Dependencies:       deps,
			AcceptanceCriteria: t.AcceptanceCriteria,
		})
	}
	return briefs
}

// Dispatcher assigns roles and autonomy levels to decomposed tasks.
type Dispatcher struct {
	Deps
	// OutputPath defaults to persist.DispatchFile.
	OutputPath string
}

// Run loads the decomposition at inputPath (persist.DecomposeFile when
// empty), dispatches its tasks and persists the result.
func (d *Dispatcher) Run(ctx context.Context, inputPath string) (*schema.DispatchResult, error) {
	inputPath = outputOr(inputPath, persist.DecomposeFile)

	var decomposition schema.TaskDecompositionResult
	if err := persist.ReadJSON(inputPath, &decomposition); err != nil {
		if errors.HasCode(err, errors.ErrCodeFileNotFound) {
			if pe, ok := errors.As(err); ok {
				pe.WithSuggestion(DecomposeFirst)
			}
		}
		return nil, err
	}

	briefs := Briefs(&decomposition)
	if len(briefs) == 0 {
		return nil, errors.New(errors.ErrCodeInputInvalid, fmt.Sprintf("no tasks found in %s", inputPath)).
			WithSuggestion("Run 'promptplay decompose' to generate tasks")
	}
	d.Presenter.Notice(fmt.Sprintf("Found %d tasks in %s", len(briefs), inputPath))

	tpl, err := d.Templates.Load(prompt.RoleDispatch)
	if err != nil {
		return nil, err
	}
	tasksJSON, err := persist.Marshal(briefs)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	system := prompt.Fill(tpl, "tasks_json", strings.TrimSpace(string(tasksJSON)))

	known := decomposition.TaskIDs()
	var missing []string
	check := func(r *schema.DispatchResult) error {
		var err error
		missing, err = r.CheckTaskIDs(known)
		return err
	}

	result, err := exchange[schema.DispatchResult](ctx, d.Deps, DispatchWorkflow, system, fmt.Sprintf("Dispatch roles for these %d tasks.", len(briefs)), check)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		d.logger().Warn("model did not dispatch every task", "missing", missing)
	}

	d.logger().Info("tasks dispatched", "dispatches", len(result.Dispatches))
	d.Presenter.Dispatch(result)
	return result, save(d.Deps, DispatchWorkflow, outputOr(d.OutputPath, persist.DispatchFile), result)
}
