package config

// Level controls how much of a tree the scan command walks.
type Level string

const (
	LevelChanged Level = "changed"
	LevelFull    Level = "full"
)

// ScanConfig holds scan-specific configuration.
type ScanConfig struct {
	Level        Level    `yaml:"level"`
	Extensions   []string `yaml:"extensions,omitempty"`
	TargetBranch string   `yaml:"target_branch,omitempty"`
	Concurrency  int      `yaml:"concurrency,omitempty"`
}

// DefaultScanConfig scans everything with the built-in extensions.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{Level: LevelFull}
}
