package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/lintrc/src/config"
	"github.com/sofmeright/lintrc/src/output"
	"github.com/sofmeright/lintrc/src/scan"
)

var (
	scanChanged      bool
	scanAll          bool
	scanExtensions   []string
	scanShowIncluded bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Show which files the resolved configuration covers",
	Long: `Walk a directory the way a linter would and report which paths
the resolved ignore patterns exclude, and how many rules apply to every
file that would be analysed.

With --changed (or scan.level: changed) only files changed relative to
the target branch are analysed. Outside a git repository every file is.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanChanged, "changed", false, "analyse only changed files")
	scanCmd.Flags().BoolVar(&scanAll, "all", false, "analyse all files, overriding scan.level")
	scanCmd.Flags().StringSliceVar(&scanExtensions, "ext", nil, "file extensions to analyse (comma-separated)")
	scanCmd.Flags().BoolVar(&scanShowIncluded, "show-included", false, "list included files with their rule counts")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	descPath := dir
	if len(args) == 0 && cfg.Descriptor != "" {
		descPath = cfg.Descriptor
	}
	t, err := loadTarget(descPath, cat)
	if err != nil {
		return err
	}

	exts := scanExtensions
	if len(exts) == 0 {
		exts = cfg.Scan.Extensions
	}
	engine := &scan.Engine{
		RuleSet:     t.RuleSet,
		RootDir:     dir,
		Extensions:  exts,
		Concurrency: cfg.Scan.Concurrency,
		Verbose:     verbose,
	}

	// CLI flag > config > full
	level := cfg.Scan.Level
	if scanChanged {
		level = config.LevelChanged
	}
	if scanAll {
		level = config.LevelFull
	}
	if level == config.LevelChanged {
		delta := &scan.Delta{RootDir: dir, TargetBranch: cfg.Scan.TargetBranch, Verbose: verbose}
		changed, err := delta.ChangedFiles(cmd.Context())
		if err != nil {
			logf("delta: %v, falling back to full scan", err)
		}
		engine.Changed = changed
	}

	start := time.Now()
	report, err := engine.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := cmd.OutOrStdout()
	color := output.UseColor()
	output.SectionStart(w, "lintrc_scan", "Scan")
	sec := output.NewSection(w, fmt.Sprintf("Scan %s", dir), elapsed, color)
	output.ScanTable(sec, report, scanShowIncluded, color)
	sec.Separator()
	sec.Row("%s", output.ScanSummaryLine(report))
	sec.Close()
	output.SectionEnd(w, "lintrc_scan")
	return nil
}
