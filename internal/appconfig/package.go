package appconfig

import (
	"path/filepath"
	"sort"
)

// Package mirrors the parts of package.json the CLI reads or edits.
type Package struct {
	Name            string            `json:"name,omitempty"`
	Version         string            `json:"version,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`

	raw map[string]any
}

// PackagePath returns the path to package.json in appDir.
func PackagePath(appDir string) string {
	return filepath.Join(appDir, PackageFile)
}

// LoadPackage reads package.json from appDir.
func LoadPackage(appDir string) (*Package, error) {
	var p Package
	raw, err := readDocument(PackagePath(appDir), &p)
	if err != nil {
		return nil, err
	}
	p.raw = raw
	return &p, nil
}

// SavePackage writes p to package.json in appDir.
func SavePackage(appDir string, p *Package) error {
	return writeDocument(PackagePath(appDir), p.raw, p)
}

// AddDevDependencies adds every dependency not already present in
// devDependencies and returns the added names, sorted. Existing version
// ranges are kept.
func (p *Package) AddDevDependencies(deps map[string]string) []string {
	if p.DevDependencies == nil {
		p.DevDependencies = make(map[string]string, len(deps))
	}
	var added []string
	for name, version := range deps {
		if _, ok := p.DevDependencies[name]; ok {
			continue
		}
		p.DevDependencies[name] = version
		added = append(added, name)
	}
	sort.Strings(added)
	return added
}

// HasDevDependency reports whether name is listed in devDependencies.
func (p *Package) HasDevDependency(name string) bool {
	_, ok := p.DevDependencies[name]
	return ok
}
