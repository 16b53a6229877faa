package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/promptplay/internal/brainstorm"
	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/prompt"
	"github.com/felixgeelhaar/promptplay/internal/render"
	"github.com/felixgeelhaar/promptplay/internal/tui"
)

type brainstormOptions struct {
	input      inputFlags
	output     string
	transcript string
	tui        bool
}

func newBrainstormCmd(a *app) *cobra.Command {
	var o brainstormOptions

	c := &cobra.Command{
		Use:   "brainstorm",
		Short: "Refine an idea through guided multiple-choice questions",
		Long: `Start an interactive session that walks through four phases (Context,
Explore, Solution, Testing). Each turn offers numbered options; answer with
numbers (1,3), free text, or "q" to quit. When the model reports a clear
enough picture the generated prompt is shown and saved.`,
		Example: `  promptplay brainstorm
  promptplay brainstorm -t "A habit tracker for teams"
  promptplay brainstorm -f idea.md --transcript session.json --tui`,
		Args: cobra.NoArgs,
		RunE: a.action("brainstorm", func(ctx context.Context, cmd *cobra.Command) error {
			return a.runBrainstorm(ctx, cmd, o)
		}),
	}

	f := c.Flags()
	f.StringVarP(&o.input.file, "file", "f", "", "read the starting idea from a file")
	f.StringVarP(&o.input.text, "text", "t", "", "starting idea")
	f.StringVarP(&o.output, "output", "o", persist.BrainstormFile, "where to save the final turn")
	f.StringVar(&o.transcript, "transcript", "", "also save the full conversation to this file")
	f.BoolVar(&o.tui, "tui", false, "pick options with an interactive form")
	c.MarkFlagsMutuallyExclusive("file", "text")

	return c
}

func (a *app) runBrainstorm(ctx context.Context, cmd *cobra.Command, o brainstormOptions) error {
	seed, err := o.input.read()
	if err != nil {
		return err
	}

	client, err := a.openClient(ctx, cmd)
	if err != nil {
		return err
	}
	store, err := a.templates()
	if err != nil {
		return err
	}
	system, err := store.Load(prompt.Brainstorm)
	if err != nil {
		return err
	}

	session := brainstorm.NewSession(brainstorm.Config{
		Client:         client,
		SystemPrompt:   system,
		Prompter:       a.prompter(cmd, o.tui),
		View:           render.New(cmd.OutOrStdout()),
		OutputPath:     o.output,
		TranscriptPath: o.transcript,
		Logger:         a.logger,
		Metrics:        a.metrics,
	})

	result, err := session.Run(ctx, strings.TrimSpace(seed))
	if err != nil {
		return err
	}
	a.logger.Debug("brainstorm result",
		"session_id", result.SessionID,
		"outcome", result.Outcome.String(),
		"messages", len(result.Transcript))
	return nil
}

func (a *app) prompter(cmd *cobra.Command, useTUI bool) brainstorm.Prompter {
	if useTUI {
		if f, ok := cmd.InOrStdin().(*os.File); ok && tui.IsTerminal(f) {
			return &tui.Picker{Accessible: os.Getenv("ACCESSIBLE") != ""}
		}
		a.logger.Warn("--tui needs an interactive terminal, using line input")
	}
	return brainstorm.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}
