package config

// BadgeConfig holds badge generation configuration.
type BadgeConfig struct {
	Label    string  `yaml:"label"`
	Font     string  `yaml:"font"`                // built-in font name
	FontSize float64 `yaml:"font_size"`           // points
	FontFile string  `yaml:"font_file,omitempty"` // TTF/OTF path, overrides Font
	Output   string  `yaml:"output"`
}

// DefaultBadgeConfig returns the badge defaults.
func DefaultBadgeConfig() BadgeConfig {
	return BadgeConfig{
		Label:    "eslint",
		Font:     "go-regular",
		FontSize: 11,
		Output:   ".lintrc/badges/eslint.svg",
	}
}
