// Package branding provides compile-time identity values for the CLI.
//
// The values come from branding.yaml, embedded at build time. Hard defaults
// apply when a key is missing from the file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	HomeDir          string `yaml:"home_dir"`
	EnvPrefix        string `yaml:"env_prefix"`
	TemplatesPackage string `yaml:"templates_package"`
	NPMRegistry      string `yaml:"npm_registry"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:          "ojet",
			DisplayName:      "OJet",
			Description:      "Scaffold, build, and verify template-based web applications",
			HomeDir:          ".ojet",
			EnvPrefix:        "OJET",
			TemplatesPackage: "@oracle/oraclejet-templates@~9.1.0",
			NPMRegistry:      "https://registry.npmjs.org",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "ojet").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".ojet").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "OJET").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// TemplatesPackage returns the npm coordinate (name@range) that named
// templates are fetched from.
func TemplatesPackage() string { load(); return defaults.TemplatesPackage }

// NPMRegistry returns the default npm registry base URL.
func NPMRegistry() string { load(); return defaults.NPMRegistry }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("REGISTRY") → "OJET_REGISTRY".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
