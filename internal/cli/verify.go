package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ojet-labs/ojet/internal/harness"
)

func newVerifyCommand(e *env) *cobra.Command {
	var opts harness.SuiteOptions

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run the acceptance checks against a VDOM application",
		Long: `Check the scaffold, create a component, build in debug and release
mode, add webpack, and check the bundle output. Every check runs even when
an earlier one fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.runner()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Verifying %s:\n", r.AppDir)
			report := harness.Run(cmd.Context(), harness.VDOMSuite(r.AppDir, r, opts))
			report.Write(out)
			return report.Err()
		},
	}

	cmd.Flags().BoolVar(&opts.SkipScaffold, "skip-scaffold", false, "Skip creating a component and adding webpack")
	cmd.Flags().BoolVar(&opts.SkipBuild, "skip-build", false, "Skip the debug and release builds before adding webpack")
	cmd.Flags().BoolVar(&opts.SkipInstall, "skip-install", false, "Do not run npm install when adding webpack")
	return cmd
}
