package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofmeright/lintrc/src/descriptor"
	"github.com/sofmeright/lintrc/src/output"
)

var (
	resolveFile   string
	resolveFormat string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [path]",
	Short: "Print the effective configuration",
	Long: `Resolve a descriptor, its presets, plugins and cascade into the
effective configuration.

--file applies the override blocks matching that file, relative to the
root-most descriptor's directory. Formats other than table print the
result as a flat descriptor with no extends or overrides.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveFile, "file", "", "resolve for this file (applies matching overrides)")
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "table", "output format: table, json, yaml, toml or cjs")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	t, err := loadTarget(targetPath(args), cat)
	if err != nil {
		return err
	}
	rs := t.RuleSet
	if resolveFile != "" {
		rs = rs.ForFile(resolveFile)
	}

	w := cmd.OutOrStdout()
	if resolveFormat != "table" {
		data, err := descriptor.Encode(descriptor.Export(rs.Descriptor()), descriptor.Format(resolveFormat))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	color := output.UseColor()
	output.ContextBlock(w, append([]output.KV{{Key: "descriptor", Value: t.Path}}, output.RuleSetContext(rs)...))

	output.SectionStartCollapsed(w, "lintrc_layers", "Layers")
	lsec := output.NewSection(w, "Layers", 0, color)
	for i, l := range rs.Layers() {
		lsec.Row("%2d  %s", i+1, l)
	}
	lsec.Close()
	output.SectionEnd(w, "lintrc_layers")

	title := "Rules"
	if resolveFile != "" {
		title = fmt.Sprintf("Rules for %s", resolveFile)
	}
	output.SectionStart(w, "lintrc_rules", title)
	sec := output.NewSection(w, title, 0, color)
	output.RuleTable(sec, rs, color)
	if len(t.Warnings) > 0 {
		sec.Separator()
		output.Problems(sec, nil, t.Warnings, color)
	}
	sec.Close()
	output.SectionEnd(w, "lintrc_rules")
	return nil
}
