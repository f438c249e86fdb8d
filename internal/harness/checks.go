package harness

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"

	"github.com/ojet-labs/ojet/internal/appconfig"
	"github.com/ojet-labs/ojet/internal/tasks"
)

// LegacyLoader matches the script tag that bootstraps require.js.
var LegacyLoader = regexp.MustCompile(`require/require\.js'></script>`)

// ExpectedConfig is the shape ConfigShape asserts on oraclejetconfig.json.
type ExpectedConfig struct {
	Architecture string
	// Source maps paths.source keys to their required values.
	Source map[string]string
}

// VDOMConfig is the shape of a VDOM application config.
func VDOMConfig() ExpectedConfig {
	return ExpectedConfig{
		Architecture: appconfig.ArchitectureVDOM,
		Source: map[string]string{
			"javascript":         ".",
			"typescript":         ".",
			"styles":             "styles",
			"components":         "components",
			"exchangeComponents": "exchange_components",
		},
	}
}

// ConfigShape checks the architecture marker and source folder entries of
// oraclejetconfig.json.
func ConfigShape(appDir string, want ExpectedConfig) Check {
	return Check{
		Name: fmt.Sprintf("%s has %s architecture and custom folder entries", appconfig.ConfigFile, want.Architecture),
		Run: func(context.Context) error {
			cfg, err := appconfig.LoadConfig(appDir)
			if err != nil {
				return err
			}
			if cfg.Architecture != want.Architecture {
				return fmt.Errorf("architecture is %q, want %q", cfg.Architecture, want.Architecture)
			}
			got := sourceEntries(cfg.Paths.Source)
			var errs []error
			for _, key := range sortedKeys(want.Source) {
				if got[key] != want.Source[key] {
					errs = append(errs, fmt.Errorf("paths.source.%s is %q, want %q", key, got[key], want.Source[key]))
				}
			}
			return errors.Join(errs...)
		},
	}
}

// PathMappingWithout checks that path_mapping.json exists and does not
// define field.
func PathMappingWithout(appDir, field string) Check {
	return Check{
		Name: fmt.Sprintf("%s has no %s", appconfig.PathMappingFile, field),
		Run: func(context.Context) error {
			doc, err := appconfig.LoadPathMapping(appDir)
			if err != nil {
				return err
			}
			if _, ok := doc[field]; ok {
				return fmt.Errorf("%s defines %s", appconfig.PathMappingFile, field)
			}
			return nil
		},
	}
}

// ComponentCreated runs "create component name" and checks that the
// component's .tsx file exists.
func ComponentCreated(exec Executor, appDir, name string) Check {
	return Check{
		Name: fmt.Sprintf("create component %s", name),
		Run: func(ctx context.Context) error {
			err := exec.Execute(ctx, tasks.Task{
				Name:       tasks.NameCreate,
				Scope:      tasks.ScopeComponent,
				Parameters: []string{name},
			})
			if err != nil {
				return fmt.Errorf("creating component: %w", err)
			}
			paths, _, err := appconfig.LoadPaths(appDir)
			if err != nil {
				return err
			}
			return fileExists(paths.ComponentFile(name))
		},
	}
}

// TaskSucceeds runs task and fails when it returns an error.
func TaskSucceeds(exec Executor, name string, task tasks.Task) Check {
	return Check{
		Name: name,
		Run: func(ctx context.Context) error {
			return exec.Execute(ctx, task)
		},
	}
}

// DevDependencies checks that package.json lists every name in
// devDependencies.
func DevDependencies(appDir string, names []string) Check {
	return Check{
		Name: "devDependencies include bundler packages",
		Run: func(context.Context) error {
			pkg, err := appconfig.LoadPackage(appDir)
			if err != nil {
				return err
			}
			var missing []string
			for _, n := range names {
				if !pkg.HasDevDependency(n) {
					missing = append(missing, n)
				}
			}
			if len(missing) > 0 {
				return fmt.Errorf("%s not installed", missing)
			}
			return nil
		},
	}
}

// BundlerRecorded checks the bundler and bundleName entries of
// oraclejetconfig.json.
func BundlerRecorded(appDir, bundler, bundleName string) Check {
	return Check{
		Name: fmt.Sprintf("%s records bundler %s", appconfig.ConfigFile, bundler),
		Run: func(context.Context) error {
			cfg, err := appconfig.LoadConfig(appDir)
			if err != nil {
				return err
			}
			var errs []error
			if cfg.Bundler != bundler {
				errs = append(errs, fmt.Errorf("bundler is %q, want %q", cfg.Bundler, bundler))
			}
			if cfg.BundleName != bundleName {
				errs = append(errs, fmt.Errorf("bundleName is %q, want %q", cfg.BundleName, bundleName))
			}
			return errors.Join(errs...)
		},
	}
}

// BundleExists checks that the configured bundle file is in the staging
// folder.
func BundleExists(appDir string) Check {
	return Check{
		Name: "bundle file exists",
		Run: func(context.Context) error {
			paths, _, err := appconfig.LoadPaths(appDir)
			if err != nil {
				return err
			}
			return fileExists(paths.BundleJS)
		},
	}
}

// IndexDoesNotLoad checks that the staged index.html has no match for
// pattern.
func IndexDoesNotLoad(appDir string, pattern *regexp.Regexp) Check {
	return Check{
		Name: "index.html does not load require.js",
		Run: func(context.Context) error {
			paths, _, err := appconfig.LoadPaths(appDir)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(paths.IndexHTML)
			if err != nil {
				return fmt.Errorf("reading %s: %w", paths.IndexHTML, err)
			}
			if pattern.Match(data) {
				return fmt.Errorf("%s loads %s", paths.IndexHTML, pattern)
			}
			return nil
		},
	}
}

// Skip returns a check that always reports as skipped.
func Skip(name string) Check {
	return Check{
		Name: name,
		Run:  func(context.Context) error { return ErrSkipped },
	}
}

func sourceEntries(s appconfig.SourcePaths) map[string]string {
	return map[string]string{
		"common":             s.Common,
		"web":                s.Web,
		"hybrid":             s.Hybrid,
		"javascript":         s.JavaScript,
		"typescript":         s.TypeScript,
		"styles":             s.Styles,
		"components":         s.Components,
		"exchangeComponents": s.ExchangeComponents,
		"themes":             s.Themes,
	}
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}

func fileExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s does not exist", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
