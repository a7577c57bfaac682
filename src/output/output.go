package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sofmeright/lintrc/src/descriptor"
	"github.com/sofmeright/lintrc/src/resolve"
	"github.com/sofmeright/lintrc/src/scan"
)

// Colors for terminal output.
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorCyan    = "\033[36m"
	colorGray    = "\033[90m"
	colorBold    = "\033[1m"
	colorDimCyan = "\033[2;36m"
)

func colorize(text, code string, color bool) string {
	if !color {
		return text
	}
	return code + text + colorReset
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor reports whether colored output should be used. NO_COLOR and
// TERM=dumb turn it off; a terminal or CI turns it on.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal() || IsCI()
}

// severityTag returns a fixed-width severity label.
func severityTag(s descriptor.Severity, color bool) string {
	switch s {
	case descriptor.SeverityError:
		return colorize("error", colorRed, color)
	case descriptor.SeverityWarn:
		return colorize("warn ", colorYellow, color)
	default:
		return colorize("off  ", colorGray, color)
	}
}

// RuleTable writes one row per resolved rule: id, severity, options and
// the layer that set it.
func RuleTable(sec *Section, rs *resolve.RuleSet, color bool) {
	ids := rs.RuleIDs()
	if len(ids) == 0 {
		sec.Row("%s", Dimmed("no rules", color))
		return
	}
	width := 4
	for _, id := range ids {
		if len(id) > width {
			width = len(id)
		}
	}
	sec.Row("%-*s  %-5s  %s", width, "rule", "sev", Dimmed("source", color))
	for _, id := range ids {
		r := rs.Rules[id]
		line := fmt.Sprintf("%-*s  %s  %s", width, id, severityTag(r.Severity, color), Dimmed(rs.Sources[id], color))
		if opts := formatOptions(r.Options); opts != "" {
			line += "  " + opts
		}
		sec.Row("%s", line)
	}
}

func formatOptions(opts []any) string {
	if len(opts) == 0 {
		return ""
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return fmt.Sprint(opts)
	}
	return string(data)
}

// RuleSetContext summarises a rule set as key-value pairs for
// ContextBlock.
func RuleSetContext(rs *resolve.RuleSet) []KV {
	warn, errs := rs.Enabled()
	ecma := "-"
	if rs.ParserOptions.EcmaVersion != 0 {
		ecma = rs.ParserOptions.EcmaVersion.String()
	}
	return []KV{
		{"parser", orDash(rs.Parser)},
		{"ecma", ecma},
		{"source", orDash(rs.ParserOptions.SourceType)},
		{"rules", fmt.Sprintf("%d (%d error, %d warn)", len(rs.Rules), errs, warn)},
		{"env", orDash(strings.Join(rs.Environments(), ", "))},
		{"plugins", orDash(strings.Join(rs.Plugins, ", "))},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Problems writes validation errors and warnings, errors first. Errors
// that are not validation errors are written as a single line.
func Problems(sec *Section, err error, warnings []resolve.Warning, color bool) {
	var list descriptor.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &list):
		for _, e := range list {
			sec.Row("  %s  %-20s %s", colorize("error", colorRed, color), e.Err, problemText(e.Field, e.Msg))
		}
	default:
		sec.Row("  %s  %s", colorize("error", colorRed, color), err)
	}
	for _, w := range warnings {
		sec.Row("  %s  %s", colorize("warn ", colorYellow, color), w)
	}
}

func problemText(field, msg string) string {
	switch {
	case field == "":
		return msg
	case msg == "":
		return field
	}
	return field + ": " + msg
}

// CountProblems returns the number of errors carried by err.
func CountProblems(err error) int {
	if err == nil {
		return 0
	}
	var list descriptor.ValidationErrors
	if errors.As(err, &list) {
		return len(list)
	}
	return 1
}

// CheckSummaryLine returns "N descriptors: X errors, Y warnings".
func CheckSummaryLine(files, errs, warnings int, color bool) string {
	var parts []string
	if errs > 0 {
		parts = append(parts, colorize(plural(errs, "error"), colorRed, color))
	}
	if warnings > 0 {
		parts = append(parts, colorize(plural(warnings, "warning"), colorYellow, color))
	}
	summary := "no problems"
	if len(parts) > 0 {
		summary = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s: %s", colorize(plural(files, "descriptor"), colorBold, color), summary)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// ScanTable writes the excluded paths of a scan report with the pattern
// that matched each, then the included files when showIncluded is set.
func ScanTable(sec *Section, r *scan.Report, showIncluded, color bool) {
	for _, x := range r.Excluded {
		p := x.Path
		if x.IsDir {
			p += "/"
		}
		sec.Row("  %s  %-40s %s", colorize("excluded", colorGray, color), p, Dimmed(x.Pattern.String(), color))
	}
	if !showIncluded {
		return
	}
	for _, f := range r.Included {
		detail := fmt.Sprintf("%d rules (%d error, %d warn)", f.Rules, f.Error, f.Warn)
		if f.Scoped {
			detail += " " + colorize("override", colorCyan, color)
		}
		sec.Row("  %s  %-40s %s", colorize("included", colorGreen, color), f.Path, detail)
	}
}

// ScanSummaryLine returns the one-line totals of a scan report.
func ScanSummaryLine(r *scan.Report) string {
	line := fmt.Sprintf("%d included, %d excluded, %d skipped", len(r.Included), len(r.Excluded), r.Skipped)
	if r.Unchanged > 0 {
		line += fmt.Sprintf(", %d unchanged", r.Unchanged)
	}
	return line
}

// RowStatus writes a row with a label, an optional detail and a status
// icon.
func RowStatus(sec *Section, label, detail, status string, color bool) {
	if detail == "" {
		sec.Row("%s %s", label, StatusIcon(status, color))
		return
	}
	sec.Row("%s: %s %s", label, detail, StatusIcon(status, color))
}
