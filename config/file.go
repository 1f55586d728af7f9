package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileVersion is the only supported config file version.
const FileVersion = 1

type fileConfig struct {
	Version int    `yaml:"version"`
	Config  Config `yaml:",inline"`
}

// overlayFile decodes the YAML file at path over c. Keys absent from the
// file keep their current values; unknown keys are rejected.
func (c *Config) overlayFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	fc := fileConfig{Config: *c}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if fc.Version != FileVersion {
		return fmt.Errorf("%w: unsupported config file version: %d", ErrInvalid, fc.Version)
	}

	*c = fc.Config
	return nil
}
