package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/felixgeelhaar/promptplay/internal/brainstorm"
	"github.com/felixgeelhaar/promptplay/internal/schema"
)

// Renderer writes formatted output to a terminal or any writer. Color is
// used only when the writer is a terminal that supports it.
type Renderer struct {
	w      io.Writer
	styles Styles
}

// New creates a renderer for w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w, styles: NewStyles(newLipglossRenderer(w))}
}

func (r *Renderer) println(parts ...string) {
	fmt.Fprintln(r.w, strings.Join(parts, ""))
}

func (r *Renderer) rule(char string, width int) string {
	return r.styles.Rule.Render(strings.Repeat(char, width))
}

func (r *Renderer) header(title string, width int) {
	r.println()
	r.println(r.rule("═", width))
	r.println("  ", r.styles.Title.Render(title))
	r.println(r.rule("═", width))
}

func (r *Renderer) list(label string, items []string) {
	r.println("  ", r.styles.Heading.Render(label+":"))
	for _, item := range items {
		r.println("    - ", item)
	}
}

// Notice prints an informational line.
func (r *Renderer) Notice(msg string) {
	r.println()
	r.println("  ", r.styles.Muted.Render(msg))
}

// Saved reports where a result was written.
func (r *Renderer) Saved(path string) {
	r.println()
	r.println("  ", r.styles.Muted.Render("Structured output saved to: "+path))
	r.println()
}

// Rejected reports a reply that failed extraction in a single-turn workflow.
func (r *Renderer) Rejected(workflow, excerpt string, err error) {
	r.println()
	r.println(r.styles.Error.Render("Error: Failed to parse " + workflow + " response"))
	r.println("  ", r.styles.Muted.Render(err.Error()))
	r.println()
	r.println(r.styles.Muted.Render(excerpt))
}

// Banner implements brainstorm.View.
func (r *Renderer) Banner(sessionID, seed string) {
	r.header("Brainstorm Playground", ruleWidth)
	r.println("  ", r.styles.Muted.Render("Session: "+sessionID))
	if seed = strings.TrimSpace(seed); seed != "" {
		r.println("  ", r.styles.Muted.Render("Context: "+preview(seed, 100)))
	}
	r.println("  ", r.styles.Muted.Render("Type q, quit or exit at any prompt to leave."))
}

// Turn implements brainstorm.View.
func (r *Renderer) Turn(turn *schema.BrainstormTurn) {
	r.phase(turn.Phase)
	r.clarity(turn.Scoring)

	if turn.Context != "" {
		r.println()
		r.println("  ", r.styles.Muted.Render(turn.Context))
	}

	r.println()
	r.println("  ", r.styles.Heading.Render(turn.Question))
	r.println()
	for i, opt := range turn.Options {
		r.println("  ", r.styles.Accent.Render(fmt.Sprintf("%d.", i+1)), " ", r.styles.Heading.Render(opt.Label))
		if opt.Description != "" {
			r.println("     ", r.styles.Muted.Render(opt.Description))
		}
	}
	r.println("  ", r.styles.Accent.Render(fmt.Sprintf("%d.", len(turn.Options)+1)), " ", r.styles.Heading.Render("Other"), " - Provide your own response")
	r.println()
}

// Invalid implements brainstorm.View.
func (r *Renderer) Invalid(raw string, err error) {
	r.println()
	r.println(r.styles.Warning.Render("Raw response:"))
	r.println(raw)
	r.println("  ", r.styles.Muted.Render(err.Error()))
	r.println()
}

// Complete implements brainstorm.View.
func (r *Renderer) Complete(turn *schema.BrainstormTurn, savedTo string) {
	r.println()
	r.println(r.styles.Success.Render(strings.Repeat("═", ruleWidth)))
	r.println("  ", r.styles.Success.Bold(true).Render("Brainstorm Complete!"))
	r.println(r.styles.Success.Render(strings.Repeat("═", ruleWidth)))

	if s := turn.Summary; s != nil {
		r.println()
		r.println("  ", r.styles.Heading.Render("Task Overview:"), " ", s.TaskOverview)
		r.println("  ", r.styles.Heading.Render("Background:"), " ", s.Background)
		r.list("Core Features", s.CoreFeatures)
		r.list("Technical Requirements", s.TechnicalRequirements)
		r.println("  ", r.styles.Heading.Render("Testing Plan:"), " ", s.TestingPlan)
		r.list("Success Criteria", s.SuccessCriteria)
	}

	if turn.GeneratedPrompt != "" {
		r.println()
		r.println(r.rule("─", ruleWidth))
		r.println("  ", r.styles.Heading.Render("Generated Prompt:"))
		r.println(r.rule("─", ruleWidth))
		r.println(turn.GeneratedPrompt)
		r.println(r.rule("─", ruleWidth))
	}

	r.clarity(turn.Scoring)
	if savedTo != "" {
		r.Saved(savedTo)
	}
}

// Abandoned implements brainstorm.View.
func (r *Renderer) Abandoned() {
	r.println()
	r.println("  ", r.styles.Muted.Render("Session abandoned."))
}

func (r *Renderer) phase(current int) {
	names := brainstorm.PhaseNames()
	parts := make([]string, 0, len(names))
	for i, name := range names {
		p := i + 1
		switch {
		case p == current:
			parts = append(parts, r.styles.Success.Render("["+name+"]"))
		case p < current:
			parts = append(parts, r.styles.Muted.Render("["+name+"]"))
		default:
			parts = append(parts, r.styles.Muted.Render(" "+name+" "))
		}
	}
	r.println()
	r.println(r.rule("─", ruleWidth))
	r.println("  Phase: ", strings.Join(parts, " → "))
}

// ClarityStatus returns the label shown next to a brainstorm clarity score.
func ClarityStatus(total int) string {
	switch {
	case total >= 7:
		return "Ready!"
	case total >= 4:
		return "Getting there..."
	default:
		return "Needs more clarity"
	}
}

func (r *Renderer) clarity(s *schema.BrainstormScoring) {
	if s == nil {
		return
	}
	style := r.styles.level(s.Total, 7, 4)
	r.println()
	r.println("  ", r.styles.Muted.Render("Clarity Score: "),
		style.Render(fmt.Sprintf("%s %d/%d", Bar(s.Total, schema.MaxClarity), s.Total, schema.MaxClarity)),
		" ", ClarityStatus(s.Total))
	r.println("  ", r.styles.Muted.Render(fmt.Sprintf("Goal %d/%d | Criteria %d/%d | Scope %d/%d | Constraints %d/%d",
		s.TaskGoal, schema.MaxTaskGoal,
		s.CompletionCriteria, schema.MaxCompletionCriteria,
		s.Scope, schema.MaxScope,
		s.Constraints, schema.MaxConstraints)))

	weak := s.LowScoreDimensions
	if len(weak) == 0 {
		weak = s.LowDimensions()
	}
	if len(weak) > 0 {
		r.println("  ", r.styles.Warning.Render("Weak areas: "+strings.Join(weak, ", ")))
	}
}

func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
