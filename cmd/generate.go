package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2riing/vibe-promptgen/pkg/formatter"
	"github.com/2riing/vibe-promptgen/pkg/prompts"
)

var (
	genFile    string
	genImports []string
	genOut     string
	genFormat  string
)

func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the process-definition prompt from a project file",
		Long: `Render the master prompt from a project file. Missing inputs never fail the
command: they are marked "[결정 필요: NAME]" and listed in appendix A.

Examples:
  # Print the prompt with a summary of errors and decisions
  promptgen generate -f project.yaml

  # Layer a team profile over the project and write plain Markdown
  promptgen generate -f project.yaml --import team.yaml -o prompt.md

  # Machine-readable result
  promptgen generate -f project.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().StringVarP(&genFile, "file", "f", "project.yaml", "Project file (YAML or JSON)")
	cmd.Flags().StringSliceVar(&genImports, "import", []string{}, "Documents merged over the project file, in order")
	cmd.Flags().StringVarP(&genOut, "out", "o", "", "Write the prompt to this file instead of stdout")
	cmd.Flags().StringVar(&genFormat, "output", "human", "Output format (human, markdown, json, yaml)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	in, err := loadProject(genFile, genImports)
	if err != nil {
		return err
	}
	result := prompts.Generate(in)

	if genOut == "" {
		return formatter.DisplayResult(os.Stdout, result, genFormat)
	}

	if err := os.WriteFile(genOut, []byte(result.PromptText+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", genOut, err)
	}
	printSuccess(fmt.Sprintf("Prompt written to %s", genOut))
	if n := len(result.Errors); n > 0 {
		printError(fmt.Sprintf("%d required field(s) need attention", n))
	}
	if n := len(result.DecisionNeeded); n > 0 {
		fmt.Printf("📝 %d decision(s) needed\n", n)
	}
	return nil
}
