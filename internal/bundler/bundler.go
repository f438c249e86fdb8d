package bundler

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/ojet-labs/ojet/internal/appconfig"
)

// Supported bundler identifiers.
const (
	NameWebpack = "webpack"
)

// Bundler produces a single bundle file in the staging folder.
type Bundler interface {
	Bundle(ctx context.Context, req Request) error
}

// Request describes one bundling run.
type Request struct {
	AppDir     string
	Paths      appconfig.Paths
	BundleName string
}

// BundlePath returns the absolute path of the bundle the run must produce.
func (r Request) BundlePath() string {
	return r.Paths.BundleJS
}

// Output captures the result of an external bundler process.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// webpackDependencies are added to devDependencies by "add webpack".
var webpackDependencies = map[string]string{
	"webpack":                     "^5.52.0",
	"webpack-cli":                 "^4.8.0",
	"webpack-dev-server":          "^4.2.1",
	"style-loader":                "^3.2.1",
	"css-loader":                  "^6.2.0",
	"ts-loader":                   "^9.2.5",
	"raw-text-loader":             "^1.0.0",
	"noop-loader":                 "^1.0.0",
	"html-webpack-plugin":         "^5.3.2",
	"html-replace-webpack-plugin": "^2.6.0",
	"copy-webpack-plugin":         "^9.0.1",
	"@prefresh/webpack":           "^3.3.2",
	"@prefresh/babel-plugin":      "^0.4.1",
	"webpack-merge":               "^5.8.0",
	"compression-webpack-plugin":  "^9.0.0",
	"mini-css-extract-plugin":     "^2.3.0",
	"zip-webpack-plugin":          "^4.0.1",
}

// Names returns the supported bundler names.
func Names() []string {
	return []string{NameWebpack}
}

// Supported reports whether name is a known bundler.
func Supported(name string) bool {
	return slices.Contains(Names(), name)
}

// Dependencies returns the devDependencies a bundler needs, keyed by package
// name. The result is a copy.
func Dependencies(name string) (map[string]string, error) {
	switch name {
	case NameWebpack:
		return maps.Clone(webpackDependencies), nil
	default:
		return nil, unsupportedError(name)
	}
}

// DependencyNames returns the sorted package names of Dependencies(name).
func DependencyNames(name string) []string {
	deps, err := Dependencies(name)
	if err != nil {
		return nil
	}
	return slices.Sorted(maps.Keys(deps))
}

// Dispatch returns the Bundler for name. Unknown names get a bundler whose
// Bundle always fails.
func Dispatch(name string) Bundler {
	switch name {
	case NameWebpack:
		return &WebpackBundler{}
	default:
		return &unknownBundler{name: name}
	}
}

// unknownBundler is returned when the bundler name is not recognized.
type unknownBundler struct {
	name string
}

func (u *unknownBundler) Bundle(_ context.Context, _ Request) error {
	return unsupportedError(u.name)
}

func unsupportedError(name string) error {
	return fmt.Errorf("unknown bundler %q: supported bundlers are %q", name, Names())
}
