package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/2riing/vibe-promptgen/pkg/prompts"
	"github.com/2riing/vibe-promptgen/pkg/watcher"
)

var (
	watchFile     string
	watchImports  []string
	watchOut      string
	watchDebounce time.Duration
)

func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the prompt whenever the project file changes",
		Long: `Generate the prompt once, then again every time the project file or one of
its imports is saved. Stop with Ctrl+C.

Examples:
  promptgen watch -f project.yaml -o prompt.md`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchFile, "file", "f", "project.yaml", "Project file (YAML or JSON)")
	cmd.Flags().StringSliceVar(&watchImports, "import", []string{}, "Documents merged over the project file, in order")
	cmd.Flags().StringVarP(&watchOut, "out", "o", "prompt.md", "File the prompt is written to")
	cmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "Quiet period before regenerating")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	_, logger := env()

	files := append([]string{watchFile}, watchImports...)
	w, err := watcher.New(files, watchDebounce, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	regenerate := func() {
		in, err := loadProject(watchFile, watchImports)
		if err != nil {
			printError(err.Error())
			return
		}
		result := prompts.Generate(in)
		if err := os.WriteFile(watchOut, []byte(result.PromptText+"\n"), 0644); err != nil {
			printError(fmt.Sprintf("failed to write %s: %v", watchOut, err))
			return
		}
		printSuccess(fmt.Sprintf("%s  %s regenerated (%d errors, %d decisions)",
			time.Now().Format("15:04:05"), watchOut, len(result.Errors), len(result.DecisionNeeded)))
	}

	printHeader("👀 Watching for changes", fmt.Sprintf("Files: %v", files), fmt.Sprintf("Output: %s", watchOut))
	regenerate()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx, regenerate)
}
