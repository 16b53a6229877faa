package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/runner"
)

func newDecomposeCmd(a *app) *cobra.Command {
	var (
		input  inputFlags
		output string
	)

	c := &cobra.Command{
		Use:   "decompose",
		Short: "Break a goal into stories, tasks and an execution plan",
		Long: `Decompose a goal into an epic with stories and tasks, each with an
estimate, dependencies and acceptance criteria, plus a phased execution
plan. Without input a sample goal is used.`,
		Example: `  promptplay decompose -t "Add OAuth login"
  promptplay decompose -f goal.md -o plan.json`,
		Args: cobra.NoArgs,
		RunE: a.action("decompose", func(ctx context.Context, cmd *cobra.Command) error {
			goal, err := input.read()
			if err != nil {
				return err
			}
			deps, err := a.deps(ctx, cmd)
			if err != nil {
				return err
			}
			_, err = (&runner.Decomposer{Deps: deps, OutputPath: output}).Run(ctx, goal)
			return err
		}),
	}

	f := c.Flags()
	f.StringVarP(&input.file, "file", "f", "", "read the goal from a file")
	f.StringVarP(&input.text, "text", "t", "", "goal text")
	f.StringVarP(&output, "output", "o", persist.DecomposeFile, "where to save the decomposition")
	c.MarkFlagsMutuallyExclusive("file", "text")

	return c
}
