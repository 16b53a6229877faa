// Package render draws workflow results and brainstorm turns on a terminal.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains lipgloss styles for terminal output
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Rule    lipgloss.Style
}

// NewStyles returns the default styles bound to r's color profile.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Heading: r.NewStyle().
			Bold(true),
		Label: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Accent: r.NewStyle().
			Foreground(lipgloss.Color("86")), // Cyan
		Error: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: r.NewStyle().
			Foreground(lipgloss.Color("46")), // Green
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("226")), // Yellow
		Rule: r.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// ruleWidth is the width of horizontal separators.
const ruleWidth = 60

// Bar draws value filled cells out of max.
func Bar(value, max int) string {
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	return strings.Repeat("█", value) + strings.Repeat("░", max-value)
}

// level picks the style for a value against two thresholds.
func (s Styles) level(value, good, fair int) lipgloss.Style {
	switch {
	case value >= good:
		return s.Success
	case value >= fair:
		return s.Warning
	default:
		return s.Error
	}
}

func newLipglossRenderer(w io.Writer) *lipgloss.Renderer {
	return lipgloss.NewRenderer(w)
}
