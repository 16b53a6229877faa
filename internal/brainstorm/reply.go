package brainstorm

import (
	"strconv"
	"strings"

	"github.com/felixgeelhaar/promptplay/internal/schema"
)

// Reply is the user's answer to one turn.
type Reply struct {
	// Indices are zero-based positions in the turn's options.
	Indices []int
	// Other is free text supplied instead of, or in addition to, options.
	Other string
	// Quit ends the session without writing a result.
	Quit bool
}

// QuitReply is returned by prompters when the user leaves.
var QuitReply = Reply{Quit: true}

// IsQuit reports whether input is one of the quit words.
func IsQuit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

// Selection is the parsed form of a line of option input.
type Selection struct {
	Indices []int
	// WantsOther is set when the "Other" entry (number n+1) was picked.
	WantsOther bool
	// FreeText holds the whole input when any token was not a listed number.
	FreeText string
}

// ParseSelection interprets comma-separated input against n options.
// Numbers 1..n select options, n+1 asks for custom text, and any other
// token turns the whole input into free text. Selections made before
// that token are kept.
func ParseSelection(input string, n int) Selection {
	input = strings.TrimSpace(input)
	var sel Selection
	if input == "" {
		return sel
	}

	for _, part := range strings.Split(input, ",") {
		num, err := strconv.Atoi(strings.TrimSpace(part))
		switch {
		case err == nil && num == n+1:
			sel.WantsOther = true
		case err == nil && num >= 1 && num <= n:
			sel.Indices = append(sel.Indices, num-1)
		default:
			sel.FreeText = input
			sel.WantsOther = false
			return sel
		}
	}
	return sel
}

// FormatAnswer renders a reply as the user message sent to the model.
func FormatAnswer(indices []int, other string, options []schema.BrainstormOption) string {
	var lines []string
	for _, i := range indices {
		if i < 0 || i >= len(options) {
			continue
		}
		lines = append(lines, "Selected: "+options[i].Label+" ("+options[i].Value+")")
	}
	if other = strings.TrimSpace(other); other != "" {
		lines = append(lines, "Other: "+other)
	}
	if len(lines) == 0 {
		return "No selection"
	}
	return strings.Join(lines, "\n")
}
