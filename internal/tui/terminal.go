// Package tui holds the interactive terminal pieces: a spinner shown while
// a chat call blocks and a form-based option picker for brainstorm turns.
package tui

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ShouldAnimate reports whether animations may be drawn on f. CI runners
// and dumb terminals get plain output.
func ShouldAnimate(f *os.File) bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "BUILDKITE"} {
		if os.Getenv(v) != "" {
			return false
		}
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(f)
}
