package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2riing/vibe-promptgen/pkg/formatter"
	"github.com/2riing/vibe-promptgen/pkg/validator"
)

var (
	valFile    string
	valImports []string
	valFormat  string
)

func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a project file against the required-field rules",
		Long: `Report required-field errors and unfilled optional fields. The command exits
non-zero when any required rule fails, so it can gate CI.

Examples:
  promptgen validate -f project.yaml
  promptgen validate -f project.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}

	cmd.Flags().StringVarP(&valFile, "file", "f", "project.yaml", "Project file (YAML or JSON)")
	cmd.Flags().StringSliceVar(&valImports, "import", []string{}, "Documents merged over the project file, in order")
	cmd.Flags().StringVarP(&valFormat, "output", "o", "human", "Output format (human, json, yaml)")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	in, err := loadProject(valFile, valImports)
	if err != nil {
		return err
	}
	report := validator.Validate(in)
	if err := formatter.DisplayReport(os.Stdout, report, valFormat); err != nil {
		return err
	}
	if report.HasErrors() {
		return fmt.Errorf("%d required field(s) failed validation", len(report.Errors))
	}
	return nil
}
