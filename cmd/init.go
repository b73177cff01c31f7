package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2riing/vibe-promptgen/pkg/model"
	"github.com/2riing/vibe-promptgen/pkg/project"
)

var (
	initSample bool
	initOut    string
	initForce  bool
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter project file",
		Long: `Write a project file pre-filled with the default policies. With --sample the
file holds a complete example project instead. The format follows the file
extension (.yaml, .yml or .json).

Examples:
  promptgen init
  promptgen init --sample -o sample.json`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().BoolVar(&initSample, "sample", false, "Write the complete sample project")
	cmd.Flags().StringVarP(&initOut, "out", "o", "project.yaml", "File to write")
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initOut); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initOut)
	}

	in := model.Defaults()
	if initSample {
		in = model.Sample()
	}
	if err := project.WriteFile(initOut, in); err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Project file written to %s", initOut))
	return nil
}
