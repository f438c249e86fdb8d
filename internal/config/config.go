package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ojet-labs/ojet/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
	cacheDir = "cache"
)

// Known configuration keys.
const (
	KeyRegistry         = "registry"
	KeyTemplatesPackage = "templates_package"
	KeyLogLevel         = "log_level"
)

// Dir returns the path to the config directory (~/.ojet/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.ojet/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// CacheDir returns the directory downloaded template tarballs are kept in.
func CacheDir() string {
	return filepath.Join(Dir(), cacheDir)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyRegistry, branding.NPMRegistry())
	viper.SetDefault(KeyTemplatesPackage, branding.TemplatesPackage())
	viper.SetDefault(KeyLogLevel, "info")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Registry returns the npm registry base URL.
func Registry() string { return Get(KeyRegistry) }

// TemplatesPackage returns the name@range coordinate of the templates package.
func TemplatesPackage() string { return Get(KeyTemplatesPackage) }

// LogLevel returns the configured log level.
func LogLevel() string { return Get(KeyLogLevel) }

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
