package appconfig

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// File names at the application root.
const (
	ConfigFile      = "oraclejetconfig.json"
	PackageFile     = "package.json"
	PathMappingFile = "path_mapping.json"
)

// Architecture values.
const (
	ArchitectureMVVM = "mvvm"
	ArchitectureVDOM = "vdom"
)

// DefaultBundleName is the bundle file written by a bundler when the config
// does not name one.
const DefaultBundleName = "bundle.js"

// Config mirrors oraclejetconfig.json.
type Config struct {
	Architecture string      `json:"architecture,omitempty"`
	Paths        PathsConfig `json:"paths"`
	Bundler      string      `json:"bundler,omitempty"`
	BundleName   string      `json:"bundleName,omitempty"`

	raw map[string]any
}

// PathsConfig holds the source and staging folder names.
type PathsConfig struct {
	Source  SourcePaths  `json:"source"`
	Staging StagingPaths `json:"staging"`
}

// SourcePaths names the source folders. Common and ExchangeComponents are
// relative to the app root; every other entry is relative to Common.
type SourcePaths struct {
	Common             string `json:"common,omitempty"`
	Web                string `json:"web,omitempty"`
	Hybrid             string `json:"hybrid,omitempty"`
	JavaScript         string `json:"javascript,omitempty"`
	TypeScript         string `json:"typescript,omitempty"`
	Styles             string `json:"styles,omitempty"`
	Components         string `json:"components,omitempty"`
	ExchangeComponents string `json:"exchangeComponents,omitempty"`
	Themes             string `json:"themes,omitempty"`
}

// StagingPaths names the build output folders, relative to the app root.
type StagingPaths struct {
	Web    string `json:"web,omitempty"`
	Hybrid string `json:"hybrid,omitempty"`
	Themes string `json:"themes,omitempty"`
}

// DefaultSourcePaths are applied to any source entry a template leaves empty.
var DefaultSourcePaths = SourcePaths{
	Common:             "src",
	Web:                "src-web",
	Hybrid:             "src-hybrid",
	JavaScript:         "js",
	TypeScript:         "ts",
	Styles:             "css",
	Components:         "jet-composites",
	ExchangeComponents: "exchange_components",
	Themes:             "themes",
}

// DefaultStagingPaths are applied to any staging entry a template leaves empty.
var DefaultStagingPaths = StagingPaths{
	Web:    "web",
	Hybrid: "hybrid/www",
	Themes: "themes",
}

// DefaultConfig returns a config with every path populated.
func DefaultConfig() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills empty path entries and reports whether anything changed.
func (c *Config) ApplyDefaults() bool {
	changed := false
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
			changed = true
		}
	}

	s, d := &c.Paths.Source, DefaultSourcePaths
	fill(&s.Common, d.Common)
	fill(&s.Web, d.Web)
	fill(&s.Hybrid, d.Hybrid)
	fill(&s.JavaScript, d.JavaScript)
	fill(&s.TypeScript, d.TypeScript)
	fill(&s.Styles, d.Styles)
	fill(&s.Components, d.Components)
	fill(&s.ExchangeComponents, d.ExchangeComponents)
	fill(&s.Themes, d.Themes)

	st, sd := &c.Paths.Staging, DefaultStagingPaths
	fill(&st.Web, sd.Web)
	fill(&st.Hybrid, sd.Hybrid)
	fill(&st.Themes, sd.Themes)

	return changed
}

// EffectiveBundleName returns BundleName or the default.
func (c *Config) EffectiveBundleName() string {
	if c.BundleName != "" {
		return c.BundleName
	}
	return DefaultBundleName
}

// ConfigPath returns the path to oraclejetconfig.json in appDir.
func ConfigPath(appDir string) string {
	return filepath.Join(appDir, ConfigFile)
}

// LoadConfig reads oraclejetconfig.json from appDir. Empty path entries are
// left empty; call ApplyDefaults to fill them.
func LoadConfig(appDir string) (*Config, error) {
	var c Config
	raw, err := readDocument(ConfigPath(appDir), &c)
	if err != nil {
		return nil, err
	}
	c.raw = raw
	return &c, nil
}

// LoadOrDefaultConfig reads oraclejetconfig.json, or returns DefaultConfig
// when the file does not exist.
func LoadOrDefaultConfig(appDir string) (*Config, error) {
	c, err := LoadConfig(appDir)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return c, err
}

// SaveConfig writes c to oraclejetconfig.json in appDir.
func SaveConfig(appDir string, c *Config) error {
	return writeDocument(ConfigPath(appDir), c.raw, c)
}
