package tui

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/felixgeelhaar/promptplay/internal/brainstorm"
	"github.com/felixgeelhaar/promptplay/internal/schema"
)

// Picker answers brainstorm turns with huh forms: a multi-select over the
// options plus an "Other" entry that reveals a text input.
type Picker struct {
	// Accessible switches huh to its screen-reader friendly mode.
	Accessible bool
}

var _ brainstorm.Prompter = (*Picker)(nil)

// OptionLabels returns the entries shown for turn, "Other" last.
func OptionLabels(turn *schema.BrainstormTurn) []string {
	labels := make([]string, 0, len(turn.Options)+1)
	for _, opt := range turn.Options {
		label := opt.Label
		if opt.Description != "" {
			label += " - " + opt.Description
		}
		labels = append(labels, label)
	}
	return append(labels, "Other - Provide your own response")
}

// ReplyFrom turns picked entries and typed text into a reply. The entry
// at index len(turn.Options) is "Other".
func ReplyFrom(turn *schema.BrainstormTurn, picked []int, other string) brainstorm.Reply {
	if brainstorm.IsQuit(other) {
		return brainstorm.QuitReply
	}

	n := len(turn.Options)
	reply := brainstorm.Reply{}
	for _, i := range picked {
		if i >= 0 && i < n {
			reply.Indices = append(reply.Indices, i)
		}
	}
	if slices.Contains(picked, n) {
		reply.Other = strings.TrimSpace(other)
	}
	return reply
}

// Choose implements brainstorm.Prompter.
func (p *Picker) Choose(ctx context.Context, turn *schema.BrainstormTurn) (brainstorm.Reply, error) {
	labels := OptionLabels(turn)
	options := make([]huh.Option[int], len(labels))
	for i, l := range labels {
		options[i] = huh.NewOption(l, i)
	}
	otherIdx := len(turn.Options)

	var picked []int
	var other string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title(turn.Question).
				Options(options...).
				Value(&picked),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Your custom response").
				Value(&other),
		).WithHideFunc(func() bool { return !slices.Contains(picked, otherIdx) }),
	).WithAccessible(p.Accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return brainstorm.QuitReply, nil
		}
		return brainstorm.Reply{}, fmt.Errorf("option picker: %w", err)
	}
	return ReplyFrom(turn, picked, other), nil
}

// Respond implements brainstorm.Prompter.
func (p *Picker) Respond(ctx context.Context) (brainstorm.Reply, error) {
	var text string
	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Your response").
			Value(&text),
	)).WithAccessible(p.Accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return brainstorm.QuitReply, nil
		}
		return brainstorm.Reply{}, fmt.Errorf("response prompt: %w", err)
	}
	if brainstorm.IsQuit(text) {
		return brainstorm.QuitReply, nil
	}
	return brainstorm.Reply{Other: strings.TrimSpace(text)}, nil
}
