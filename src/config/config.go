package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config is given.
const DefaultFile = ".lintrc.yml"

// SchemaVersion is the only supported config version.
const SchemaVersion = 1

// Config is the lintrc tool configuration. It is separate from the lint
// descriptors it checks.
type Config struct {
	Version int `yaml:"version"`

	// Descriptor pins the descriptor file instead of discovering it.
	Descriptor string `yaml:"descriptor,omitempty"`

	// Catalogs are YAML files extending the built-in catalog, applied in
	// order.
	Catalogs []string `yaml:"catalogs,omitempty"`

	// Plugins maps plugin names to installed versions. Rules added after
	// the installed version are unknown.
	Plugins map[string]string `yaml:"plugins,omitempty"`

	Scan  ScanConfig  `yaml:"scan"`
	Badge BadgeConfig `yaml:"badge"`
}

// Load reads configuration from a YAML file. An empty path means
// DefaultFile. A missing file yields the defaults; unknown keys are an
// error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected
// and an empty document yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	return &Config{
		Version: SchemaVersion,
		Plugins: map[string]string{},
		Scan:    DefaultScanConfig(),
		Badge:   DefaultBadgeConfig(),
	}
}
