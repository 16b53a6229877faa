package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/promptplay/internal/errors"
	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/runner"
)

func newScoreCmd(a *app) *cobra.Command {
	var (
		input  inputFlags
		output string
	)

	c := &cobra.Command{
		Use:   "score",
		Short: "Rate an issue description for development readiness",
		Long: `Score an issue on five dimensions (runtime target, delivery form, control
scheme, business rules, acceptance criteria), each 0-2, for a total out of 10.`,
		Example: `  promptplay score -f issue.md
  promptplay score -t "Add a dark mode toggle to settings"`,
		Args: cobra.NoArgs,
		RunE: a.action("score", func(ctx context.Context, cmd *cobra.Command) error {
			issue, err := input.read()
			if err != nil {
				return err
			}
			if strings.TrimSpace(issue) == "" {
				return errors.NewInputMissingError("issue text")
			}

			deps, err := a.deps(ctx, cmd)
			if err != nil {
				return err
			}
			_, err = (&runner.Scorer{Deps: deps, OutputPath: output}).Run(ctx, issue)
			return err
		}),
	}

	f := c.Flags()
	f.StringVarP(&input.file, "file", "f", "", "read the issue from a file")
	f.StringVarP(&input.text, "text", "t", "", "issue text")
	f.StringVarP(&output, "output", "o", persist.ScoreFile, "where to save the score")
	c.MarkFlagsMutuallyExclusive("file", "text")

	return c
}
