package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/sofmeright/lintrc/src/badge"
	"github.com/sofmeright/lintrc/src/descriptor"
)

// Validate checks a loaded Config. Soft issues come back as warnings;
// every hard problem is joined into err.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	if cfg.Version != SchemaVersion {
		errs = append(errs, fmt.Sprintf("version: must be %d, got %d", SchemaVersion, cfg.Version))
	}

	// ── Descriptor and catalogs ──────────────────────────────────────────

	if cfg.Descriptor != "" {
		if _, err := descriptor.DetectFormat(cfg.Descriptor); err != nil {
			errs = append(errs, fmt.Sprintf("descriptor: %v", err))
		}
	}

	seen := make(map[string]bool, len(cfg.Catalogs))
	for i, path := range cfg.Catalogs {
		field := fmt.Sprintf("catalogs[%d]", i)
		switch ext := strings.ToLower(filepath.Ext(path)); {
		case path == "":
			errs = append(errs, field+": path is required")
			continue
		case ext != ".yml" && ext != ".yaml":
			errs = append(errs, fmt.Sprintf("%s: %q is not a YAML file", field, path))
		}
		clean := filepath.Clean(path)
		if seen[clean] {
			warnings = append(warnings, fmt.Sprintf("%s: %q is listed twice", field, path))
		}
		seen[clean] = true
	}

	// ── Plugins ──────────────────────────────────────────────────────────

	names := make([]string, 0, len(cfg.Plugins))
	for name := range cfg.Plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := semver.NewVersion(cfg.Plugins[name]); err != nil {
			errs = append(errs, fmt.Sprintf("plugins.%s: invalid version %q", name, cfg.Plugins[name]))
		}
	}

	// ── Scan ─────────────────────────────────────────────────────────────

	switch cfg.Scan.Level {
	case LevelChanged, LevelFull:
	case "":
		warnings = append(warnings, fmt.Sprintf("scan.level: empty, using %q", LevelFull))
	default:
		errs = append(errs, fmt.Sprintf("scan.level: unknown level %q (supported: changed, full)", cfg.Scan.Level))
	}
	for i, ext := range cfg.Scan.Extensions {
		switch {
		case strings.TrimSpace(ext) == "" || ext == ".":
			errs = append(errs, fmt.Sprintf("scan.extensions[%d]: empty extension", i))
		case !strings.HasPrefix(ext, "."):
			warnings = append(warnings, fmt.Sprintf("scan.extensions[%d]: %q has no leading dot, treated as %q", i, ext, "."+ext))
		}
	}
	if cfg.Scan.Concurrency < 0 {
		errs = append(errs, fmt.Sprintf("scan.concurrency: must not be negative, got %d", cfg.Scan.Concurrency))
	}

	// ── Badge ────────────────────────────────────────────────────────────

	b := cfg.Badge
	if b.FontFile != "" && b.Font != "" && b.Font != badge.DefaultFont {
		warnings = append(warnings, "badge: font_file overrides font")
	}
	if b.FontFile == "" && b.Font != "" && !contains(badge.FontNames(), b.Font) {
		errs = append(errs, fmt.Sprintf("badge.font: unknown built-in font %q (available: %s)", b.Font, strings.Join(badge.FontNames(), ", ")))
	}
	if b.FontSize < 0 || b.FontSize > 72 {
		errs = append(errs, fmt.Sprintf("badge.font_size: must be between 0 and 72, got %g", b.FontSize))
	}
	if b.Output != "" && !strings.EqualFold(filepath.Ext(b.Output), ".svg") {
		warnings = append(warnings, fmt.Sprintf("badge.output: %q does not end in .svg", b.Output))
	}

	if len(errs) > 0 {
		return warnings, errors.New(strings.Join(errs, "\n"))
	}
	return warnings, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
