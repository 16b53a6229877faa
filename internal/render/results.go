package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/promptplay/internal/schema"
)

// ReadinessStatus returns the verdict shown for an issue score.
func ReadinessStatus(total int) string {
	switch {
	case total >= 7:
		return "Ready for development"
	case total >= 4:
		return "Needs improvement"
	default:
		return "Not ready"
	}
}

// Score prints an issue readiness score with its dimension breakdown.
func (r *Renderer) Score(result *schema.ScoreResult) {
	r.header("Issue Readiness Score", ruleWidth)

	total := result.TotalScore
	r.println()
	r.println("  ", r.styles.Heading.Render("Overall:"), " ",
		r.styles.level(total, 7, 4).Render(fmt.Sprintf("%s %d/10", Bar(total, 10), total)),
		" - ", ReadinessStatus(total))

	r.println()
	r.println("  ", r.styles.Heading.Render("Dimensions:"))
	for _, d := range result.Dimensions.Named() {
		style := r.styles.level(d.Score, schema.MaxDimensionScore, 1)
		r.println("    ", style.Render(Bar(d.Score, schema.MaxDimensionScore)),
			fmt.Sprintf(" %s: %d/%d - ", d.Name, d.Score, schema.MaxDimensionScore),
			r.styles.Muted.Render(d.Reason))
	}

	r.println()
	r.println("  ", r.styles.Heading.Render("Summary:"), " ", result.Summary)
}

var statusIcons = map[schema.TaskStatus]string{
	schema.StatusTodo:       "○",
	schema.StatusInProgress: "◉",
	schema.StatusBlocked:    "✕",
	schema.StatusDone:       "✓",
}

func (r *Renderer) statusIcon(s schema.TaskStatus) string {
	icon, ok := statusIcons[s]
	if !ok {
		return "○"
	}
	switch s {
	case schema.StatusInProgress:
		return r.styles.Warning.Render(icon)
	case schema.StatusBlocked:
		return r.styles.Error.Render(icon)
	case schema.StatusDone:
		return r.styles.Success.Render(icon)
	}
	return r.styles.Muted.Render(icon)
}

func orUnknown[T int | float64](v *T) string {
	if v == nil {
		return "?"
	}
	switch n := any(*v).(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	}
	return "?"
}

// Decomposition prints the story/task tree and the execution plan.
func (r *Renderer) Decomposition(result *schema.TaskDecompositionResult) {
	r.header("Task Decomposition", ruleWidth)

	r.println()
	r.println("  ", r.styles.Heading.Render("Epic:"), " ", result.Epic.Title)
	r.println("  ", r.styles.Muted.Render(result.Epic.Description))

	r.println()
	r.println("  ", r.styles.Heading.Render("Analysis:"))
	r.println("  ", r.styles.Muted.Render(preview(result.Reasoning, 300)))

	tree := r.styles.Accent
	for _, story := range result.Stories {
		r.println()
		r.println("  ", tree.Render("┌─ "+story.ID+": "+story.Title))
		for i, task := range story.Tasks {
			last := i == len(story.Tasks)-1
			branch, stem := "├─", "│ "
			if last {
				branch, stem = "└─", "  "
			}

			roleStyle := r.styles.Success
			if task.OwnerType == schema.OwnerHuman {
				roleStyle = r.styles.Warning
			}

			r.println("  ", tree.Render("│ "+branch), " ", r.statusIcon(task.Status), " ", task.TaskID, ": ", task.Title)
			r.println("  ", tree.Render("│ "+stem), "   ",
				r.styles.Muted.Render("Role: "), roleStyle.Render(task.Role),
				r.styles.Muted.Render(fmt.Sprintf(" (%s) | Est: %sh | SP: %s", task.OwnerType, orUnknown(task.EstimateHours), orUnknown(task.StoryPoints))))
			if len(task.Dependencies) > 0 {
				r.println("  ", tree.Render("│ "+stem), "   ", r.styles.Muted.Render("Deps: "+strings.Join(task.Dependencies, ", ")))
			}
			if task.BlockerReason != nil && *task.BlockerReason != "" {
				r.println("  ", tree.Render("│ "+stem), "   ", r.styles.Error.Render("Blocked: "+*task.BlockerReason))
			}
		}
	}

	plan := result.ExecutionPlan
	r.println()
	r.println("  ", r.styles.Heading.Render("Execution Plan:"))
	for _, phase := range plan.Phases {
		r.println(fmt.Sprintf("    Phase %d: %s", phase.Phase, phase.Description))
		r.println("    ", r.styles.Muted.Render("Parallel: ["+strings.Join(phase.ParallelTasks, ", ")+"]"))
	}

	r.println()
	r.println("  ", r.styles.Heading.Render("Total Estimated Hours:"), " ", strconv.FormatFloat(plan.TotalEstimatedHours, 'f', -1, 64), "h")
	r.println("  ", r.styles.Heading.Render("Critical Path:"), " ", strings.Join(plan.CriticalPath, " → "))
}

var roleColors = map[string]lipgloss.Color{
	schema.RoleJuniorDeveloper: lipgloss.Color("46"),
	schema.RoleSeniorDeveloper: lipgloss.Color("86"),
	schema.RoleProductOwner:    lipgloss.Color("201"),
	schema.RoleScrumMaster:     lipgloss.Color("226"),
	schema.RoleReviewer:        lipgloss.Color("196"),
}

var autonomyIcons = map[schema.AutonomyLevel]string{
	schema.AutonomyAutonomous: "⚡",
	schema.AutonomySupervised: "👁",
	schema.AutonomyManual:     "✋",
}

// Dispatch prints each task's role, autonomy and delegation score.
func (r *Renderer) Dispatch(result *schema.DispatchResult) {
	width := ruleWidth + 10
	r.header("Role Dispatch Results", width)

	var ai, human int
	for _, d := range result.Dispatches {
		if d.OwnerType == schema.OwnerHuman {
			human++
		} else {
			ai++
		}
	}
	r.println()
	r.println("  ", r.styles.Muted.Render(fmt.Sprintf("Tasks: %d total | AI: %d | Human: %d", len(result.Dispatches), ai, human)))

	for _, d := range result.Dispatches {
		roleStyle := r.styles.Muted
		if c, ok := roleColors[d.RecommendedRole]; ok {
			roleStyle = r.styles.Heading.Foreground(c)
		}
		icon := autonomyIcons[d.AutonomyLevel]
		if icon == "" {
			icon = "?"
		}

		var bars []string
		for _, s := range []schema.DimensionScore{d.Scoring.Complexity, d.Scoring.Risk, d.Scoring.HumanJudgment} {
			// Low delegation scores are good news here.
			style := r.styles.level(schema.MaxDimensionScore-s.Score, schema.MaxDimensionScore, 1)
			bars = append(bars, style.Render(Bar(s.Score, schema.MaxDimensionScore)))
		}

		r.println()
		r.println("  ", r.styles.Heading.Render(d.TaskID), ": ", roleStyle.Render(d.RecommendedRole), " ", icon, " ", string(d.AutonomyLevel))
		r.println(fmt.Sprintf("    Score: [%s] %d/%d (%s)", strings.Join(bars, " "), d.TotalScore, schema.MaxDispatchScore, d.OwnerType))
		r.println("    ", r.styles.Muted.Render(d.Reasoning))
	}

	r.println()
	r.println("  ", r.styles.Heading.Render("Summary:"), " ", result.Summary)
}
