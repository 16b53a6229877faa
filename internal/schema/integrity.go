package schema

import (
	"fmt"
	"strings"
)

// IntegrityError lists broken cross references in a decomposition.
type IntegrityError struct {
	Problems []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("decomposition integrity: %s", strings.Join(e.Problems, "; "))
}

// CheckIntegrity verifies that every task reference points at a task in
// the same result and that dependencies do not form a cycle.
func CheckIntegrity(r *TaskDecompositionResult) error {
	ids := r.TaskIDs()
	var problems []string

	for _, task := range r.Tasks() {
		for _, dep := range task.Dependencies {
			switch {
			case dep == task.TaskID:
				problems = append(problems, fmt.Sprintf("task %s depends on itself", task.TaskID))
			case !ids[dep]:
				problems = append(problems, fmt.Sprintf("task %s depends on unknown task %q", task.TaskID, dep))
			}
		}
	}

	for _, phase := range r.ExecutionPlan.Phases {
		for _, id := range phase.ParallelTasks {
			if !ids[id] {
				problems = append(problems, fmt.Sprintf("execution phase %d lists unknown task %q", phase.Phase, id))
			}
		}
	}

	for _, id := range r.ExecutionPlan.CriticalPath {
		if !ids[id] {
			problems = append(problems, fmt.Sprintf("critical path lists unknown task %q", id))
		}
	}

	if cycle := findCycle(r.Tasks()); cycle != nil {
		problems = append(problems, fmt.Sprintf("circular dependency detected: %s", strings.Join(cycle, " -> ")))
	}

	if len(problems) > 0 {
		return &IntegrityError{Problems: problems}
	}
	return nil
}

// findCycle returns the first dependency cycle found, ignoring
// self-references and unknown IDs which are reported on their own.
func findCycle(tasks []Task) []string {
	graph := make(map[string][]string, len(tasks))
	for _, task := range tasks {
		graph[task.TaskID] = task.Dependencies
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	var visit func(id string, path []string) []string
	visit = func(id string, path []string) []string {
		visited[id] = true
		onStack[id] = true
		path = append(path, id)

		for _, dep := range graph[id] {
			if dep == id {
				continue
			}
			if _, known := graph[dep]; !known {
				continue
			}
			if onStack[dep] {
				return append(path, dep)
			}
			if !visited[dep] {
				if cycle := visit(dep, path); cycle != nil {
					return cycle
				}
			}
		}

		onStack[id] = false
		return nil
	}

	for _, task := range tasks {
		if !visited[task.TaskID] {
			if cycle := visit(task.TaskID, nil); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
