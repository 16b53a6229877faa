package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/render"
)

func newPromptsCmd(a *app) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "prompts",
		Short: "List the available prompt templates",
		Long: `List built-in templates and any overrides found in the prompts directory.
A file <name>.md in that directory replaces the built-in of the same name.`,
		Args: cobra.NoArgs,
		RunE: a.action("prompts", func(_ context.Context, cmd *cobra.Command) error {
			store, err := a.templates()
			if err != nil {
				return err
			}
			infos, err := store.List()
			if err != nil {
				return err
			}

			if asJSON {
				data, err := persist.Marshal(infos)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			render.New(cmd.OutOrStdout()).Prompts(infos)
			return nil
		}),
	}

	c.Flags().BoolVar(&asJSON, "json", false, "output as JSON with source and digest")
	return c
}
