package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
)

// readDocument decodes path into typed and also returns the raw document so
// that unmodelled fields survive a later writeDocument.
func readDocument(path string, typed any) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := json.Unmarshal(data, typed); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return raw, nil
}

// writeDocument overlays typed onto raw and writes the result as indented JSON.
func writeDocument(path string, raw map[string]any, typed any) error {
	data, err := json.Marshal(typed)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	var overlay map[string]any
	if err := json.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}

	merged := mergeMaps(raw, overlay)
	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// mergeMaps returns base with overlay applied. Nested objects merge
// recursively; any other overlay value replaces the base value.
func mergeMaps(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		om, ok := v.(map[string]any)
		if !ok {
			out[k] = v
			continue
		}
		if bm, ok := out[k].(map[string]any); ok {
			out[k] = mergeMaps(bm, om)
		} else {
			out[k] = om
		}
	}
	return out
}
