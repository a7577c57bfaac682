package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	warnings, err := Validate(cfg)
	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lintrc.yml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
descriptor: web/.eslintrc.cjs
plugins:
  vue: 9.10.0
scan:
  level: changed
  extensions: [.vue, .ts]
badge:
  label: lint
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "web/.eslintrc.cjs", cfg.Descriptor)
	require.Equal(t, LevelChanged, cfg.Scan.Level)
	require.Equal(t, []string{".vue", ".ts"}, cfg.Scan.Extensions)
	require.Equal(t, "lint", cfg.Badge.Label)
	require.Equal(t, "go-regular", cfg.Badge.Font, "unset keys keep defaults")
	require.Equal(t, map[string]string{"vue": "9.10.0"}, cfg.Plugins)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("scan: [unclosed"))
	require.ErrorContains(t, err, "parsing config")
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("plugin:\n  vue: 9.0.0\n"))
	require.ErrorContains(t, err, "field plugin not found")

	_, err = Parse([]byte("scan:\n  levle: changed\n"))
	require.ErrorContains(t, err, "field levle not found")
}

func TestParseEmptyGivesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		errs     []string
		warnings []string
	}{
		{
			name:   "version",
			mutate: func(c *Config) { c.Version = 2 },
			errs:   []string{"version: must be 1, got 2"},
		},
		{
			name:   "descriptor format",
			mutate: func(c *Config) { c.Descriptor = "eslint.config.mjs" },
			errs:   []string{`descriptor: unsupported descriptor file "eslint.config.mjs"`},
		},
		{
			name:   "catalogs",
			mutate: func(c *Config) { c.Catalogs = []string{"a.yml", "./a.yml", "b.json", ""} },
			errs:   []string{`catalogs[2]: "b.json" is not a YAML file`, "catalogs[3]: path is required"},
			warnings: []string{
				`catalogs[1]: "./a.yml" is listed twice`,
			},
		},
		{
			name:   "plugin version",
			mutate: func(c *Config) { c.Plugins = map[string]string{"vue": "nine"} },
			errs:   []string{`plugins.vue: invalid version "nine"`},
		},
		{
			name: "scan",
			mutate: func(c *Config) {
				c.Scan = ScanConfig{Level: "some", Extensions: []string{"js", " "}, Concurrency: -1}
			},
			errs: []string{
				`scan.level: unknown level "some" (supported: changed, full)`,
				"scan.extensions[1]: empty extension",
				"scan.concurrency: must not be negative, got -1",
			},
			warnings: []string{`scan.extensions[0]: "js" has no leading dot, treated as ".js"`},
		},
		{
			name: "badge",
			mutate: func(c *Config) {
				c.Badge = BadgeConfig{Font: "papyrus", FontSize: 100, Output: "badge.png"}
			},
			errs: []string{
				`badge.font: unknown built-in font "papyrus" (available: go-bold, go-mono, go-regular)`,
				"badge.font_size: must be between 0 and 72, got 100",
			},
			warnings: []string{`badge.output: "badge.png" does not end in .svg`},
		},
		{
			name: "font file overrides font",
			mutate: func(c *Config) {
				c.Badge.Font = "go-mono"
				c.Badge.FontFile = "brand.ttf"
			},
			warnings: []string{"badge: font_file overrides font"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			warnings, err := Validate(cfg)
			if len(tt.errs) == 0 {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				require.Equal(t, tt.errs, strings.Split(err.Error(), "\n"))
			}
			if len(tt.warnings) == 0 {
				require.Empty(t, warnings)
			} else {
				require.Equal(t, tt.warnings, warnings)
			}
		})
	}
}

func TestCatalogAppliesFilesAndVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.yml")
	require.NoError(t, os.WriteFile(path, []byte(`plugins:
  - name: acme
    version: 1.0.0
    rules:
      - id: no-foo
`), 0o644))

	cfg := Defaults()
	cfg.Catalogs = []string{path}
	cfg.Plugins = map[string]string{"eslint-plugin-vue": "9.5.0"}

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	_, ok := cat.Plugin("acme")
	require.True(t, ok)
	require.Equal(t, "9.5.0", cat.InstalledVersion("vue").String())

	cfg.Plugins = map[string]string{"nope": "1.0.0"}
	_, err = cfg.Catalog()
	require.ErrorContains(t, err, "plugins.nope")
}
