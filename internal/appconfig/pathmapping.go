package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PathMappingPath returns the path to path_mapping.json in appDir.
func PathMappingPath(appDir string) string {
	return filepath.Join(appDir, PathMappingFile)
}

// LoadPathMapping reads path_mapping.json as a generic document.
func LoadPathMapping(appDir string) (map[string]any, error) {
	path := PathMappingPath(appDir)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}
