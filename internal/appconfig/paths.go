package appconfig

import "path/filepath"

// IndexFile is the application entry document.
const IndexFile = "index.html"

// Paths holds absolute locations derived from an application's config.
type Paths struct {
	AppDir             string
	Source             string // <app>/<common>
	JavaScript         string // <source>/<javascript>
	TypeScript         string // <source>/<typescript>
	Styles             string
	Components         string // <source>/<typescript>/<components>
	ExchangeComponents string
	Staging            string // <app>/<staging.web>
	SourceIndexHTML    string
	IndexHTML          string // staged index.html
	BundleJS           string // <staging>/<bundleName>
}

// ResolvePaths computes Paths for appDir. Empty entries in cfg fall back to
// the defaults without modifying cfg.
func ResolvePaths(appDir string, cfg *Config) Paths {
	c := *cfg
	c.ApplyDefaults()
	s := c.Paths.Source

	source := filepath.Join(appDir, s.Common)
	staging := filepath.Join(appDir, c.Paths.Staging.Web)
	ts := filepath.Join(source, s.TypeScript)

	return Paths{
		AppDir:             appDir,
		Source:             source,
		JavaScript:         filepath.Join(source, s.JavaScript),
		TypeScript:         ts,
		Styles:             filepath.Join(source, s.Styles),
		Components:         filepath.Join(ts, s.Components),
		ExchangeComponents: filepath.Join(appDir, s.ExchangeComponents),
		Staging:            staging,
		SourceIndexHTML:    filepath.Join(source, IndexFile),
		IndexHTML:          filepath.Join(staging, IndexFile),
		BundleJS:           filepath.Join(staging, c.EffectiveBundleName()),
	}
}

// ComponentFile returns the path of the .tsx file for a VDOM component.
func (p Paths) ComponentFile(name string) string {
	return filepath.Join(p.Components, name, name+".tsx")
}

// LoadPaths loads the config in appDir and resolves its paths.
func LoadPaths(appDir string) (Paths, *Config, error) {
	cfg, err := LoadOrDefaultConfig(appDir)
	if err != nil {
		return Paths{}, nil, err
	}
	return ResolvePaths(appDir, cfg), cfg, nil
}
