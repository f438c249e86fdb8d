package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ojet-labs/ojet/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long: fmt.Sprintf(`Read and write settings stored at %s.

Keys: %s, %s, %s`, config.FilePath(), config.KeyRegistry, config.KeyTemplatesPackage, config.KeyLogLevel),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, value := args[0], args[1]
				if err := config.Set(key, value); err != nil {
					return fmt.Errorf("setting config key %q: %w", key, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Get a configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
				return nil
			},
		},
	)
	return cmd
}
