package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2riing/vibe-promptgen/pkg/model"
)

var schemaOut string

func NewSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the project file",
		Long: `Print a JSON Schema describing project files, for editor completion and
validation of YAML or JSON project documents.

Examples:
  promptgen schema -o project.schema.json`,
		Args: cobra.NoArgs,
		RunE: runSchema,
	}

	cmd.Flags().StringVarP(&schemaOut, "out", "o", "", "Write the schema to this file instead of stdout")

	return cmd
}

func runSchema(cmd *cobra.Command, args []string) error {
	data, err := json.MarshalIndent(model.Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	data = append(data, '\n')

	if schemaOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(schemaOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", schemaOut, err)
	}
	printSuccess(fmt.Sprintf("Schema written to %s", schemaOut))
	return nil
}
