package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sofmeright/lintrc/src/badge"
	"github.com/sofmeright/lintrc/src/config"
	"github.com/sofmeright/lintrc/src/output"
)

var (
	badgeOutput string
	badgeLabel  string
)

var badgeCmd = &cobra.Command{
	Use:   "badge [path]",
	Short: "Generate an SVG badge for the resolved configuration",
	Long: `Generate a badge showing how many rules the resolved configuration
enables. A descriptor that fails to load produces a red "invalid" badge
and the command fails after writing it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBadge,
}

func init() {
	badgeCmd.Flags().StringVarP(&badgeOutput, "output", "o", "", "output file path (default: badge.output from config)")
	badgeCmd.Flags().StringVar(&badgeLabel, "label", "", "badge label (default: badge.label from config)")

	rootCmd.AddCommand(badgeCmd)
}

func runBadge(cmd *cobra.Command, args []string) error {
	eng, err := buildBadgeEngine(cfg.Badge)
	if err != nil {
		return err
	}
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	label := firstNonEmpty(badgeLabel, cfg.Badge.Label, "eslint")
	path := firstNonEmpty(badgeOutput, cfg.Badge.Output, config.DefaultBadgeConfig().Output)

	t, loadErr := loadTarget(targetPath(args), cat)
	var b badge.Badge
	if loadErr != nil {
		b = badge.ForInvalid(label, output.CountProblems(loadErr))
	} else {
		b = badge.ForRuleSet(label, t.RuleSet, t.Warnings)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating badge directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(eng.Generate(b)), 0o644); err != nil {
		return fmt.Errorf("writing badge: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  badge → %s (%s)\n", path, b.Value)
	return loadErr
}

func buildBadgeEngine(bc config.BadgeConfig) (*badge.Engine, error) {
	var (
		metrics *badge.FontMetrics
		err     error
	)
	if bc.FontFile != "" {
		metrics, err = badge.LoadFontFile(bc.FontFile, bc.FontSize)
	} else {
		metrics, err = badge.LoadBuiltinFont(firstNonEmpty(bc.Font, badge.DefaultFont), bc.FontSize)
	}
	if err != nil {
		return nil, fmt.Errorf("loading badge font: %w", err)
	}
	return badge.New(metrics), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
