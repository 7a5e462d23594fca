// Package config loads the JSON configuration controlling metadata
// plugins, filter tests and preprocessing.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Data DataConfig `json:"data"`
}

type DataConfig struct {
	Metadata      MetadataConfig      `json:"metadata"`
	Tests         []TestConfig        `json:"tests"`
	Preprocessing PreprocessingConfig `json:"preprocessing"`
}

// MetadataConfig declares which metadata functions run and in which
// order. Functions is an array, not a map: later entries may overwrite
// keys produced by earlier ones, so declaration order matters.
type MetadataConfig struct {
	Functions []MetadataFunctionConfig `json:"functions"`
}

type MetadataFunctionConfig struct {
	Name string       `json:"name"`
	Run  bool         `json:"run"`
	Args MetadataArgs `json:"args"`
}

// MetadataArgs carries the per-function arguments. Each function reads
// only the fields it needs.
type MetadataArgs struct {
	ComposerNames []string `json:"composer_names,omitempty"`
	FormNames     []string `json:"form_names,omitempty"`
	MaestroPath   string   `json:"maestro_path,omitempty"`
	TableName     string   `json:"table_name,omitempty"`
	Region        string   `json:"region,omitempty"`
	Endpoint      string   `json:"endpoint,omitempty"`
}

type TestConfig struct {
	Name string     `json:"name"`
	Run  bool       `json:"run"`
	Args FilterArgs `json:"args"`
}

// FilterArgs carries the per-test policy arguments.
type FilterArgs struct {
	Max          int     `json:"max,omitempty"`
	MaxPerSecond float64 `json:"max_per_second,omitempty"`
	MinPerSecond float64 `json:"min_per_second,omitempty"`
	MinSeconds   float64 `json:"min_seconds,omitempty"`
}

type PreprocessingConfig struct {
	// RemoveInstruments maps instrument group names to whether channels
	// currently playing that group should be deleted.
	RemoveInstruments map[string]bool `json:"remove_instruments"`
}

// Load reads and decodes a config file. Unknown fields are rejected since
// they indicate a typo rather than data.
func Load(path string) (*Config, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(dat))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %v: %w", path, err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is present:
// no metadata functions, no tests, nothing removed.
func Default() *Config {
	return &Config{}
}
