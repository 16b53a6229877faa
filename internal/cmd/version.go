package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/promptplay/internal/persist"
	"github.com/felixgeelhaar/promptplay/internal/version"
)

func newVersionCmd() *cobra.Command {
	var verbose, asJSON bool

	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print version information including version number, git commit,
build date, Go version, and platform.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()
			out := cmd.OutOrStdout()

			if asJSON {
				data, err := persist.Marshal(info)
				if err != nil {
					return fmt.Errorf("failed to marshal version info: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			if verbose {
				fmt.Fprintln(out, info.String())
				return nil
			}

			fmt.Fprintf(out, "promptplay %s\n", info.Short())
			return nil
		},
	}

	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed version information")
	c.Flags().BoolVar(&asJSON, "json", false, "output version information as JSON")
	return c
}
