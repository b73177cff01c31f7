package main

import (
	"fmt"
	"os"

	"github.com/2riing/vibe-promptgen/cmd"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "promptgen",
		Short: "Development process definition prompt generator",
		Long: `promptgen turns a short project form into a master prompt that asks a coding
assistant to define the team's development process: CLAUDE.md rules, issue,
PR, ADR and release templates, test plans and quality gates.

It can also suggest a technology stack for a project idea and ask an LLM for
a first draft of the documents.`,
		SilenceUsage: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		cmd.NewInitCmd(),
		cmd.NewGenerateCmd(),
		cmd.NewValidateCmd(),
		cmd.NewRecommendCmd(),
		cmd.NewDraftCmd(),
		cmd.NewWatchCmd(),
		cmd.NewSchemaCmd(),
		cmd.NewServeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("promptgen version %s\n", version)
		},
	}
}
