package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sofmeright/lintrc/src/output"
)

var checkNoReport bool

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Validate descriptors",
	Long: `Load and validate descriptors against the catalog.

A file path is checked on its own and must set env, parser and rules.
A directory is checked through the cascade: its descriptor and those of
its ancestors up to the first one with root: true.

Every problem is reported, not just the first. Deprecated rules are
warnings and do not fail the check. In CI (CI=true) a JUnit report is
written to ` + output.ReportDir + `/check.xml.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkNoReport, "no-report", false, "do not write the JUnit report in CI")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 {
		paths = []string{targetPath(nil)}
	}

	w := cmd.OutOrStdout()
	color := output.UseColor()
	output.CIHeader(w)

	start := time.Now()
	results := make([]output.CheckResult, 0, len(paths))
	for _, path := range paths {
		t0 := time.Now()
		t, err := loadTarget(path, cat)
		r := output.CheckResult{Path: path, Err: err, Elapsed: time.Since(t0)}
		if t != nil {
			r.Path = t.Path
			r.Warnings = t.Warnings
		}
		logf("check: %s in %s", r.Path, r.Elapsed)
		results = append(results, r)
	}
	elapsed := time.Since(start)

	if output.IsCI() && !checkNoReport {
		if err := output.WriteCheckJUnit(output.ReportDir, results, elapsed); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write junit report: %v\n", err)
		}
	}

	var problems, warnings int
	output.SectionStart(w, "lintrc_check", "Check")
	sec := output.NewSection(w, "Check", elapsed, color)
	for _, r := range results {
		n := output.CountProblems(r.Err)
		problems += n
		warnings += len(r.Warnings)
		status := "success"
		if n > 0 {
			status = "failed"
		}
		output.SummaryRow(w, r.Path, status, fmt.Sprintf("%d errors, %d warnings", n, len(r.Warnings)), color)
	}
	sec.Separator()
	sec.Row("%s", output.CheckSummaryLine(len(results), problems, warnings, color))
	sec.Close()
	output.SectionEnd(w, "lintrc_check")

	for _, r := range results {
		if r.Err == nil && len(r.Warnings) == 0 {
			continue
		}
		output.SectionStart(w, "lintrc_problems", "Problems")
		psec := output.NewSection(w, r.Path, 0, color)
		output.Problems(psec, r.Err, r.Warnings, color)
		psec.Close()
		output.SectionEnd(w, "lintrc_problems")
	}

	if problems > 0 {
		return fmt.Errorf("check failed: %d problems", problems)
	}
	return nil
}
