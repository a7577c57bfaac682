package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sofmeright/lintrc/src/descriptor"
)

var (
	convertTo     string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert <src>",
	Short: "Convert a descriptor to another format",
	Long: `Read a descriptor in any supported format and write it as JSON,
YAML, TOML or a CommonJS module. Only the shape is checked; names are
not looked up in the catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "json", "target format: json, yaml, toml or cjs")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "write to this path instead of stdout")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	d, err := descriptor.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	data, err := descriptor.Encode(descriptor.Export(d), descriptor.Format(convertTo))
	if err != nil {
		return err
	}
	if convertOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(convertOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", convertOutput, err)
	}
	logf("convert: %s → %s", args[0], convertOutput)
	return nil
}
