package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const sectionWidth = 61 // inner width between │ and line end

// Section renders a framed block of output:
//
//	── Name ─────────────────── 12ms ──
//	│ row
//	├──────────────────────────────────
//	└──────────────────────────────────
type Section struct {
	w     io.Writer
	name  string
	color bool
}

// NewSection writes the section header. A non-zero elapsed time is shown
// right-aligned in the header.
func NewSection(w io.Writer, name string, elapsed time.Duration, color bool) *Section {
	s := &Section{w: w, name: name, color: color}
	s.header(elapsed)
	return s
}

// Row writes a line inside the frame.
func (s *Section) Row(format string, args ...any) {
	fmt.Fprintf(s.w, "    │ %s\n", fmt.Sprintf(format, args...))
}

// Separator writes a divider.
func (s *Section) Separator() { s.rule("├") }

// Close writes the footer.
func (s *Section) Close() { s.rule("└") }

func (s *Section) rule(corner string) {
	fmt.Fprintf(s.w, "    %s%s\n", corner, strings.Repeat("─", sectionWidth))
}

func (s *Section) header(elapsed time.Duration) {
	label := "── " + s.name + " "
	suffix := "──"
	if elapsed > 0 {
		suffix = " " + formatElapsed(elapsed) + " ──"
	}
	fill := sectionWidth + 4 - len([]rune(label)) - len([]rune(suffix))
	if fill < 1 {
		fill = 1
	}
	line := label + strings.Repeat("─", fill) + suffix
	if s.color {
		line = colorDimCyan + line + colorReset
	}
	fmt.Fprintf(s.w, "\n    %s\n", line)
}

// StatusIcon returns the icon for "success", "failed" or anything else
// (skipped).
func StatusIcon(status string, color bool) string {
	icon, code := "⊘", colorYellow
	switch status {
	case "success":
		icon, code = "✓", colorGreen
	case "failed":
		icon, code = "✗", colorRed
	}
	if !color {
		return icon
	}
	return code + icon + colorReset
}

// Dimmed greys out text when color is enabled.
func Dimmed(text string, color bool) string {
	if !color {
		return text
	}
	return colorGray + text + colorReset
}

// KV is one entry of a context block.
type KV struct {
	Key   string
	Value string
}

// ContextBlock prints key-value pairs two per line.
func ContextBlock(w io.Writer, kv []KV) {
	if len(kv) == 0 {
		return
	}
	fmt.Fprintln(w)
	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			fmt.Fprintf(w, "    %-12s%-20s%-12s%s\n", kv[i].Key, kv[i].Value, kv[i+1].Key, kv[i+1].Value)
			continue
		}
		fmt.Fprintf(w, "    %-12s%s\n", kv[i].Key, kv[i].Value)
	}
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	return fmt.Sprintf("%dm%.1fs", mins, d.Seconds()-float64(mins*60))
}

// SummaryRow writes "name icon detail" inside a section.
func SummaryRow(w io.Writer, name, status, detail string, color bool) {
	fmt.Fprintf(w, "    │ %-24s%s  %s\n", name, StatusIcon(status, color), detail)
}

// SummaryTotal writes the closing total line of a summary.
func SummaryTotal(w io.Writer, elapsed time.Duration, status string, color bool) {
	fmt.Fprintf(w, "    │ %-24s%28s   %s\n", "total", formatElapsed(elapsed), StatusIcon(status, color))
}
