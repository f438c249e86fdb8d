package appconfig

import (
	_ "embed"

	"github.com/ojet-labs/ojet/internal/schema"
)

//go:embed schema/oraclejetconfig.schema.json
var configSchema []byte

var configValidator = schema.New("oraclejetconfig.schema.json", configSchema)

// Validate checks raw oraclejetconfig.json bytes against the embedded schema.
func Validate(data []byte) (*schema.Result, error) {
	return configValidator.Validate(data)
}

// ValidateFile validates the oraclejetconfig.json in appDir.
func ValidateFile(appDir string) (*schema.Result, error) {
	return configValidator.ValidateFile(ConfigPath(appDir))
}
