package badge

import (
	"fmt"

	"github.com/sofmeright/lintrc/src/resolve"
)

// Status colors.
const (
	ColorPassed  = "#4c1"
	ColorWarning = "#dfb317"
	ColorFailed  = "#e05d44"
)

// Engine renders badges with one font.
type Engine struct {
	metrics *FontMetrics
}

// New returns an engine measuring text with metrics.
func New(metrics *FontMetrics) *Engine {
	return &Engine{metrics: metrics}
}

// Badge is the content of one badge.
type Badge struct {
	Label string // left side
	Value string // right side
	Color string // right side fill, e.g. "#4c1"
}

// Generate renders b as a shields.io-style flat SVG.
func (e *Engine) Generate(b Badge) string {
	return e.renderSVG(b)
}

// StatusColor maps "passed", "warning" and "failed" to a fill color.
// Unknown statuses render as passed.
func StatusColor(status string) string {
	switch status {
	case "warning":
		return ColorWarning
	case "failed", "critical":
		return ColorFailed
	default:
		return ColorPassed
	}
}

// ForRuleSet summarises a resolved configuration: the number of enabled
// rules, split by severity. Deprecation warnings turn the badge yellow.
func ForRuleSet(label string, rs *resolve.RuleSet, warnings []resolve.Warning) Badge {
	warn, errs := rs.Enabled()
	status := "passed"
	if len(warnings) > 0 {
		status = "warning"
	}
	return Badge{
		Label: label,
		Value: fmt.Sprintf("%d rules | %d error %d warn", warn+errs, errs, warn),
		Color: StatusColor(status),
	}
}

// ForInvalid is the badge shown when the descriptor does not load.
func ForInvalid(label string, problems int) Badge {
	return Badge{
		Label: label,
		Value: fmt.Sprintf("invalid | %d problems", problems),
		Color: ColorFailed,
	}
}
