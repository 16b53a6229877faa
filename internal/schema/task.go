package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusDone       TaskStatus = "done"
)

// OwnerType says whether a human or an AI agent owns a task.
type OwnerType string

const (
	OwnerHuman OwnerType = "human"
	OwnerAI    OwnerType = "ai"
)

// Estimate bounds for Task.EstimateHours.
const (
	MinEstimateHours = 1
	MaxEstimateHours = 8
)

// Epic is the goal being decomposed.
type Epic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Task is a single actionable work item.
type Task struct {
	TaskID             string     `json:"task_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Status             TaskStatus `json:"status"`
	Role               string     `json:"role"`
	OwnerType          OwnerType  `json:"owner_type"`
	Assignee           string     `json:"assignee"`
	EstimateHours      *float64   `json:"estimate_hours"`
	StoryPoints        *int       `json:"story_points"`
	Dependencies       []string   `json:"dependencies"`
	AcceptanceCriteria string     `json:"acceptance_criteria"`
	BlockerReason      *string    `json:"blocker_reason"`
	Artifacts          []string   `json:"artifacts"`
}

// Story groups the tasks of one deliverable.
type Story struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

// ExecutionPhase lists tasks that can run in parallel.
type ExecutionPhase struct {
	Phase         int      `json:"phase"`
	ParallelTasks []string `json:"parallel_tasks"`
	Description   string   `json:"description"`
}

// ExecutionPlan orders the work.
type ExecutionPlan struct {
	Phases              []ExecutionPhase `json:"phases"`
	TotalEstimatedHours float64          `json:"total_estimated_hours"`
	CriticalPath        []string         `json:"critical_path"`
}

// TaskDecompositionResult is an epic broken into stories and tasks.
type TaskDecompositionResult struct {
	Epic          Epic          `json:"epic"`
	Reasoning     string        `json:"reasoning"`
	Stories       []Story       `json:"stories"`
	ExecutionPlan ExecutionPlan `json:"execution_plan"`
}

var taskSchema = object(
	[]string{"task_id", "title", "description", "role", "acceptance_criteria"},
	map[string]*openapi3.Schema{
		"task_id":             str(),
		"title":               str(),
		"description":         str(),
		"status":              enum(string(StatusTodo), string(StatusInProgress), string(StatusBlocked), string(StatusDone)),
		"role":                str(),
		"owner_type":          enum(string(OwnerHuman), string(OwnerAI)),
		"assignee":            str(),
		"estimate_hours":      nullable(openapi3.NewFloat64Schema().WithMin(MinEstimateHours).WithMax(MaxEstimateHours)),
		"story_points":        nullable(openapi3.NewIntegerSchema()),
		"dependencies":        strList(),
		"acceptance_criteria": str(),
		"blocker_reason":      nullable(str()),
		"artifacts":           strList(),
	},
)

var decompositionSchema = object(
	[]string{"epic", "reasoning", "stories", "execution_plan"},
	map[string]*openapi3.Schema{
		"epic": object(
			[]string{"title", "description"},
			map[string]*openapi3.Schema{"title": str(), "description": str()},
		),
		"reasoning": str(),
		"stories": listOf(object(
			[]string{"id", "title", "tasks"},
			map[string]*openapi3.Schema{
				"id":    str(),
				"title": str(),
				"tasks": listOf(taskSchema),
			},
		)),
		"execution_plan": object(
			[]string{"phases", "total_estimated_hours", "critical_path"},
			map[string]*openapi3.Schema{
				"phases": listOf(object(
					[]string{"phase", "parallel_tasks", "description"},
					map[string]*openapi3.Schema{
						"phase":          openapi3.NewIntegerSchema(),
						"parallel_tasks": strList(),
						"description":    str(),
					},
				)),
				"total_estimated_hours": openapi3.NewFloat64Schema(),
				"critical_path":         strList(),
			},
		),
	},
)

// JSONSchema implements Structured.
func (r *TaskDecompositionResult) JSONSchema() *openapi3.Schema { return decompositionSchema }

// ApplyDefaults implements Defaulter.
func (r *TaskDecompositionResult) ApplyDefaults() {
	for i := range r.Stories {
		for j := range r.Stories[i].Tasks {
			t := &r.Stories[i].Tasks[j]
			if t.Status == "" {
				t.Status = StatusTodo
			}
			if t.OwnerType == "" {
				t.OwnerType = OwnerAI
			}
			if t.Dependencies == nil {
				t.Dependencies = []string{}
			}
			if t.Artifacts == nil {
				t.Artifacts = []string{}
			}
		}
	}
}

// Validate implements Structured. Task IDs must be unique across stories.
// Cross references are checked separately by CheckIntegrity.
func (r *TaskDecompositionResult) Validate() error {
	var v Violations
	seen := make(map[string]string)
	for _, story := range r.Stories {
		for _, task := range story.Tasks {
			if prev, dup := seen[task.TaskID]; dup {
				v.addf("task_id %q appears in %s and %s", task.TaskID, prev, story.ID)
				continue
			}
			seen[task.TaskID] = story.ID
		}
	}
	return v.err()
}

// Tasks returns every task in story order.
func (r *TaskDecompositionResult) Tasks() []Task {
	var tasks []Task
	for _, story := range r.Stories {
		tasks = append(tasks, story.Tasks...)
	}
	return tasks
}

// TaskIDs returns the set of task IDs in the result.
func (r *TaskDecompositionResult) TaskIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, story := range r.Stories {
		for _, task := range story.Tasks {
			ids[task.TaskID] = true
		}
	}
	return ids
}
