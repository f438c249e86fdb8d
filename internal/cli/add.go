package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ojet-labs/ojet/internal/bundler"
	"github.com/ojet-labs/ojet/internal/tasks"
)

func newAddCommand(e *env) *cobra.Command {
	var opts tasks.Options

	cmd := &cobra.Command{
		Use:   "add <bundler>",
		Short: "Add a bundler to the application",
		Long: `Add the bundler's packages to devDependencies, record it in
oraclejetconfig.json, and run npm install.

Supported bundlers: ` + strings.Join(bundler.Names(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: bundler.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.runner()
			if err != nil {
				return err
			}
			return r.Execute(cmd.Context(), tasks.Task{
				Name:       tasks.NameAdd,
				Parameters: args,
				Options:    opts,
			})
		},
	}

	cmd.Flags().BoolVar(&opts.SkipInstall, "skip-install", false, "Do not run npm install")
	return cmd
}
