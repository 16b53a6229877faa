package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/promptplay/internal/errors"
	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/runner"
)

func newDispatchCmd(a *app) *cobra.Command {
	var input, output string

	c := &cobra.Command{
		Use:   "dispatch",
		Short: "Assign roles and autonomy levels to decomposed tasks",
		Long: `Read the tasks of a decomposition and score each on complexity, risk and
human judgment. Totals 0-4 go to an AI agent, 5-6 to a human.`,
		Example: `  promptplay decompose -t "Add OAuth login" && promptplay dispatch
  promptplay dispatch -f plan.json -o roles.json`,
		Args: cobra.NoArgs,
		RunE: a.action("dispatch", func(ctx context.Context, cmd *cobra.Command) error {
			// The input is checked before provider resolution so a fresh
			// checkout learns to run decompose first.
			if _, err := os.Stat(input); os.IsNotExist(err) {
				return errors.NewFileNotFoundError(input).WithSuggestion(runner.DecomposeFirst)
			}
			deps, err := a.deps(ctx, cmd)
			if err != nil {
				return err
			}
			_, err = (&runner.Dispatcher{Deps: deps, OutputPath: output}).Run(ctx, input)
			return err
		}),
	}

	f := c.Flags()
	f.StringVarP(&input, "file", "f", persist.DecomposeFile, "decomposition to dispatch")
	f.StringVarP(&output, "output", "o", persist.DispatchFile, "where to save the dispatch")

	return c
}
