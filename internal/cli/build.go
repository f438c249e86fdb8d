package cli

import (
	"github.com/spf13/cobra"

	"github.com/ojet-labs/ojet/internal/tasks"
)

func newBuildCommand(e *env) *cobra.Command {
	var opts tasks.Options

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the application into its staging folder",
		Long: `Stage the application sources and rewrite index.html.

With --release and a bundler recorded in oraclejetconfig.json, the
bundler produces a single bundle and index.html loads only that bundle.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.runner()
			if err != nil {
				return err
			}
			return r.Execute(cmd.Context(), tasks.Task{Name: tasks.NameBuild, Options: opts})
		},
	}

	cmd.Flags().BoolVar(&opts.Release, "release", false, "Build in release mode")
	return cmd
}
