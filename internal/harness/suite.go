package harness

import (
	"github.com/ojet-labs/ojet/internal/appconfig"
	"github.com/ojet-labs/ojet/internal/bundler"
	"github.com/ojet-labs/ojet/internal/tasks"
)

// VDOMComponent is the component VDOMSuite creates.
const VDOMComponent = "vcomp-1"

// SuiteOptions turns off the parts of a suite that invoke tasks.
type SuiteOptions struct {
	// SkipScaffold skips the checks that create files: create component
	// and add webpack. The inspections that follow them still run.
	SkipScaffold bool
	// SkipBuild skips the debug and release builds that precede the
	// webpack checks.
	SkipBuild bool
	// SkipInstall is passed to add webpack.
	SkipInstall bool
}

// VDOMSuite returns the checks for a VDOM application in run order.
func VDOMSuite(appDir string, exec Executor, opts SuiteOptions) []Check {
	checks := []Check{
		PathMappingWithout(appDir, "baseUrl"),
		ConfigShape(appDir, VDOMConfig()),
	}

	checks = append(checks, scaffoldOnly(opts, ComponentCreated(exec, appDir, VDOMComponent)))

	checks = append(checks,
		buildOnly(opts, TaskSucceeds(exec, "build", tasks.Task{Name: tasks.NameBuild})),
		buildOnly(opts, TaskSucceeds(exec, "build --release", tasks.Task{
			Name:    tasks.NameBuild,
			Options: tasks.Options{Release: true},
		})),
	)

	checks = append(checks,
		scaffoldOnly(opts, TaskSucceeds(exec, "add webpack", tasks.Task{
			Name:       tasks.NameAdd,
			Parameters: []string{bundler.NameWebpack},
			Options:    tasks.Options{SkipInstall: opts.SkipInstall},
		})),
		DevDependencies(appDir, bundler.DependencyNames(bundler.NameWebpack)),
		BundlerRecorded(appDir, bundler.NameWebpack, appconfig.DefaultBundleName),
		TaskSucceeds(exec, "build with webpack", tasks.Task{Name: tasks.NameBuild}),
		TaskSucceeds(exec, "build --release with webpack", tasks.Task{
			Name:    tasks.NameBuild,
			Options: tasks.Options{Release: true},
		}),
		BundleExists(appDir),
		IndexDoesNotLoad(appDir, LegacyLoader),
	)
	return checks
}

func scaffoldOnly(opts SuiteOptions, c Check) Check {
	if opts.SkipScaffold {
		return Skip(c.Name)
	}
	return c
}

func buildOnly(opts SuiteOptions, c Check) Check {
	if opts.SkipBuild {
		return Skip(c.Name)
	}
	return c
}
