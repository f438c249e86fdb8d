package template

import (
	"fmt"
	"os"
	"strings"

	"github.com/ojet-labs/ojet/internal/appconfig"
)

// Finalize runs after any handler. destDir must hold at least one entry, and
// its oraclejetconfig.json is created or completed with default paths, then
// checked against the config schema.
func Finalize(destDir string) error {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return fmt.Errorf("reading template output %s: %w", destDir, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("template produced no files in %s", destDir)
	}

	cfg, err := appconfig.LoadOrDefaultConfig(destDir)
	if err != nil {
		return err
	}
	_, statErr := os.Stat(appconfig.ConfigPath(destDir))
	if cfg.ApplyDefaults() || statErr != nil {
		if err := appconfig.SaveConfig(destDir, cfg); err != nil {
			return fmt.Errorf("writing %s: %w", appconfig.ConfigFile, err)
		}
	}

	result, err := appconfig.ValidateFile(destDir)
	if err != nil {
		return err
	}
	if !result.Valid {
		issues := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			issues = append(issues, issue.String())
		}
		return fmt.Errorf("template %s is invalid: %s", appconfig.ConfigFile, strings.Join(issues, "; "))
	}
	return nil
}
