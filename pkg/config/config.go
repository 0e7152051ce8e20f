// Package config holds the server's runtime tunables: CLI-flag
// defaults overlaid, optionally, by a YAML file (grounded on the
// policy engine's yaml.v3 usage elsewhere in this codebase).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full set of knobs surfaced on cmd/inferd's flags.
type Config struct {
	Port               int    `yaml:"port"`
	ReadTimeoutMillis  int    `yaml:"read_timeout_millis"`
	WriteTimeoutMillis int    `yaml:"write_timeout_millis"`
	Workers            int    `yaml:"workers"`
	LogLevel           string `yaml:"log_level"`
	ModelDir           string `yaml:"model_dir"`
}

// Default returns the baseline configuration applied before flags and
// any YAML overlay are considered.
func Default() Config {
	return Config{
		Port:               8080,
		ReadTimeoutMillis:  30000,
		WriteTimeoutMillis: 30000,
		Workers:            4,
		LogLevel:           "info",
		ModelDir:           "./models",
	}
}

// LoadYAML overlays the fields present in the YAML file at path onto
// cfg; fields absent from the file are left untouched. A zero-value
// path is a no-op.
func LoadYAML(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}
