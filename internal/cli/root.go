package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ojet-labs/ojet/internal/branding"
	"github.com/ojet-labs/ojet/internal/build"
	"github.com/ojet-labs/ojet/internal/config"
	"github.com/ojet-labs/ojet/internal/fetch"
	"github.com/ojet-labs/ojet/internal/logger"
	"github.com/ojet-labs/ojet/internal/npm"
	"github.com/ojet-labs/ojet/internal/tasks"
	"github.com/ojet-labs/ojet/internal/template"
	"github.com/ojet-labs/ojet/internal/template/handler"
)

type buildInfo struct {
	version string
	commit  string
	date    string
}

// env is the state shared by every command of one invocation.
type env struct {
	build    buildInfo
	cwd      string
	logLevel string
	log      *zerolog.Logger

	// builder and installer replace the real ones when set.
	builder   *build.Builder
	installer tasks.Installer
}

// appDir returns the absolute working directory.
func (e *env) appDir() (string, error) {
	dir, err := filepath.Abs(e.cwd)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", e.cwd, err)
	}
	return dir, nil
}

// runner builds a tasks.Runner for the working directory.
func (e *env) runner() (*tasks.Runner, error) {
	dir, err := e.appDir()
	if err != nil {
		return nil, err
	}

	fetcher := fetch.New(fetch.WithLogger(e.log))
	client := npm.New(
		npm.WithRegistry(config.Registry()),
		npm.WithFetcher(fetcher),
		npm.WithLogger(e.log),
	)
	resolver := template.NewResolver(config.TemplatesPackage())

	builder := e.builder
	if builder == nil {
		builder = &build.Builder{Logger: e.log}
	}

	return &tasks.Runner{
		AppDir:     dir,
		Logger:     e.log,
		Dispatcher: handler.NewDispatcher(resolver, fetcher, client, e.log),
		Builder:    builder,
		Installer:  e.installer,
	}, nil
}

func newRootCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` creates web applications from templates, adds components
and bundlers to them, builds them, and verifies the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Load()
			level := e.logLevel
			if !cmd.Flags().Changed("log-level") {
				level = config.LogLevel()
			}
			e.log = logger.New(
				logger.WithLevel(level),
				logger.WithOutput(cmd.ErrOrStderr()),
			)
		},
	}

	cmd.PersistentFlags().StringVar(&e.cwd, "cwd", ".", "Application directory (parent directory for create)")
	cmd.PersistentFlags().StringVar(&e.logLevel, "log-level", logger.DefaultLogLevel, "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newCreateCommand(e),
		newBuildCommand(e),
		newAddCommand(e),
		newVerifyCommand(e),
		newConfigCommand(),
		newVersionCommand(e),
	)
	return cmd
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	return run(os.Args[1:], os.Stdout, os.Stderr, buildInfo{version: version, commit: commit, date: date})
}

// run executes args and prints any error to stderr.
func run(args []string, stdout, stderr io.Writer, info buildInfo) error {
	return runEnv(&env{build: info}, args, stdout, stderr)
}

func runEnv(e *env, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCommand(e)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
