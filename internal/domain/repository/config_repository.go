package repository

import (
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration.
type ConfigRepository interface {
	// LoadConfigFile reads a TOML, YAML or JSON config file by extension.
	LoadConfigFile(filePath string) (*types.Config, error)

	// Resolve merges defaults, an optional config file, FAA_* environment
	// variables and command-line arguments, then validates the documented
	// bounds. Out-of-range values fail with a ConfigError.
	Resolve(args types.CLIArgs) (*types.Config, error)
}
