package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2riing/vibe-promptgen/pkg/formatter"
	"github.com/2riing/vibe-promptgen/pkg/model"
	"github.com/2riing/vibe-promptgen/pkg/project"
	"github.com/2riing/vibe-promptgen/pkg/recommender"
)

var (
	recApply  string
	recFormat string
)

func NewRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend [IDEA]",
		Short: "Suggest a technology stack for a project idea",
		Long: `Rank the built-in technology catalog against a free-text idea using
sentence embeddings and print the top 8.

With --apply the result is written into tech.tech_stack of the given project
file. When no IDEA argument is given, doc_meta.idea of that file is used.

The embedding backend is chosen with PROMPTGEN_EMBEDDER: ollama (default,
all-minilm), gemini, or hash for an offline word-overlap fallback. The first
call may download a model.

--apply rewrites only tech.tech_stack; comments and other keys in the file
are kept.

Examples:
  promptgen recommend "여러 사용자가 동시에 편집하는 실시간 협업 웹 문서 에디터"
  promptgen recommend --apply project.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRecommend,
	}

	cmd.Flags().StringVar(&recApply, "apply", "", "Write the result into tech.tech_stack of this project file")
	cmd.Flags().StringVarP(&recFormat, "output", "o", "human", "Output format (human, markdown, json, yaml)")

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, logger := env()

	idea := ""
	if len(args) == 1 {
		idea = args[0]
	}
	if strings.TrimSpace(idea) == "" && recApply != "" {
		in, err := project.NewImporter(logger).Load(recApply)
		if err != nil {
			return err
		}
		idea = in.DocMeta.Idea
	}
	if strings.TrimSpace(idea) == "" {
		return fmt.Errorf("no project idea given: pass it as an argument or set doc_meta.idea in the --apply file")
	}

	rec, err := newRecommender(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := newSpinner(" Preparing embedding model...")
	s.Start()
	techs, err := rec.Recommend(ctx, idea, func(p float64) {
		s.Lock()
		s.Suffix = progressLabel(p)
		s.Unlock()
	})
	s.Stop()
	if err != nil {
		var loadErr *recommender.ModelLoadError
		if errors.As(err, &loadErr) {
			printError("Embedding model could not be loaded")
		}
		return fmt.Errorf("recommendation failed: %w", err)
	}
	printSuccess("Analysis complete")

	if recApply != "" {
		if err := project.SetField(recApply, "tech.tech_stack", string(model.JoinStack(techs))); err != nil {
			return err
		}
		printSuccess(fmt.Sprintf("tech.tech_stack updated in %s", recApply))
	}

	return formatter.DisplayTechs(os.Stdout, techs, recFormat)
}

// progressLabel is the spinner suffix for a load progress report. Once the
// model is loaded the remaining work is inference.
func progressLabel(percent float64) string {
	if percent < 100 {
		return fmt.Sprintf(" Loading embedding model... %.0f%%", percent)
	}
	return " Analyzing project idea..."
}
