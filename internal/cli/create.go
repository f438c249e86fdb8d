package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ojet-labs/ojet/internal/scaffold"
	"github.com/ojet-labs/ojet/internal/tasks"
)

func newCreateCommand(e *env) *cobra.Command {
	var opts tasks.Options

	cmd := &cobra.Command{
		Use:   "create <app>",
		Short: "Create an application from a template",
		Long: `Create a new application in <cwd>/<app>.

--template accepts a URL of a zip or tar.gz archive, a local directory or
archive, or a template name with an optional type:

  blank, blank-ts, basic, basic-ts, navbar, navbar-ts, navdrawer, navdrawer-ts
  <name>:web, <name>:hybrid

Examples:
  ojet create my-app --template basic:web
  ojet create my-app --template ./starters/vdom
  ojet create my-app --template https://example.com/starter.zip`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.runner()
			if err != nil {
				return err
			}
			return r.Execute(cmd.Context(), tasks.Task{
				Name:       tasks.NameCreate,
				Parameters: args,
				Options:    opts,
			})
		},
	}

	cmd.Flags().StringVar(&opts.Template, "template", "", "Template URL, path, or name[:type] (default: blank)")
	cmd.Flags().StringVar(&opts.Namespace, "namespace", tasks.DefaultNamespace, "Generator namespace; hybrid namespaces default to hybrid templates")
	cmd.Flags().BoolVar(&opts.TypeScript, "typescript", false, "Use the TypeScript variant of a named template")

	cmd.AddCommand(newCreateComponentCommand(e))
	return cmd
}

// ─── create component ──────────────────────────────────────────────

func newCreateComponentCommand(e *env) *cobra.Command {
	var opts tasks.Options

	cmd := &cobra.Command{
		Use:   "component <name>",
		Short: "Create a component in the current application",
		Long: `Create a component under the application's components folder.

The name must be lowercase and contain a hyphen. VDOM applications get a
vcomponent by default, other applications a composite component.

Examples:
  ojet create component vcomp-1
  ojet create component my-card --kind composite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := e.runner()
			if err != nil {
				return err
			}
			return r.Execute(cmd.Context(), tasks.Task{
				Name:       tasks.NameCreate,
				Scope:      tasks.ScopeComponent,
				Parameters: args,
				Options:    opts,
			})
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "Component kind: "+strings.Join(scaffold.KindNames(), ", "))
	return cmd
}
