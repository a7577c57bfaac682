package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sofmeright/lintrc/src/catalog"
	"github.com/sofmeright/lintrc/src/output"
)

var catalogPlugin string

var catalogCmd = &cobra.Command{
	Use:       "catalog [envs|parsers|plugins|presets|rules]",
	Short:     "List known environments, parsers, plugins, presets and rules",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"envs", "parsers", "plugins", "presets", "rules"},
	RunE:      runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogPlugin, "plugin", "", `with rules: only this plugin's rules ("core" for built-in rules)`)

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	color := output.UseColor()

	if len(args) == 0 {
		sec := output.NewSection(w, "Catalog", 0, color)
		sec.Row("%-14s%d", "environments", len(cat.Environments()))
		sec.Row("%-14s%d", "parsers", len(cat.Parsers()))
		sec.Row("%-14s%d", "plugins", len(cat.Plugins()))
		sec.Row("%-14s%d", "presets", len(cat.Presets()))
		sec.Row("%-14s%d", "rules", len(cat.Rules("")))
		sec.Close()
		return nil
	}

	var rows []string
	switch args[0] {
	case "envs":
		for _, e := range cat.Environments() {
			rows = append(rows, fmt.Sprintf("%-32s %3d globals  %s", e.Name, len(e.Globals), output.Dimmed(envDetail(e), color)))
		}
	case "parsers":
		for _, p := range cat.Parsers() {
			rows = append(rows, fmt.Sprintf("%-32s %s", p.ID, output.Dimmed(p.Description, color)))
		}
	case "plugins":
		for _, p := range cat.Plugins() {
			version := "-"
			if v := cat.InstalledVersion(p.Name); v != nil {
				version = v.String()
			}
			rows = append(rows, fmt.Sprintf("%-24s %-10s %4d rules  %s", p.Name, version, len(cat.Rules(p.Name)), output.Dimmed(p.Package, color)))
		}
	case "presets":
		for _, p := range cat.Presets() {
			rows = append(rows, fmt.Sprintf("%-48s %s", p.ID, output.Dimmed(catalog.Describe(p), color)))
		}
	case "rules":
		for _, r := range cat.Rules(catalogPlugin) {
			rows = append(rows, fmt.Sprintf("%-48s %s", r.ID, output.Dimmed(ruleDetail(r), color)))
		}
	}

	sec := output.NewSection(w, strings.ToUpper(args[0][:1])+args[0][1:], 0, color)
	for _, r := range rows {
		sec.Row("%s", r)
	}
	sec.Separator()
	sec.Row("%d %s", len(rows), args[0])
	sec.Close()
	return nil
}

func envDetail(e catalog.Environment) string {
	var parts []string
	if e.EcmaVersion != 0 {
		parts = append(parts, "ecmaVersion "+e.EcmaVersion.String())
	}
	if e.Plugin != "" {
		parts = append(parts, "plugin "+e.Plugin)
	}
	return strings.Join(parts, ", ")
}

func ruleDetail(r catalog.Rule) string {
	var parts []string
	if r.Since != nil {
		parts = append(parts, "since "+r.Since.String())
	}
	if r.Deprecated {
		s := "deprecated"
		if len(r.ReplacedBy) > 0 {
			s += ", use " + strings.Join(r.ReplacedBy, " or ")
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
