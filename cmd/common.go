package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/2riing/vibe-promptgen/pkg/config"
	"github.com/2riing/vibe-promptgen/pkg/embedding"
	"github.com/2riing/vibe-promptgen/pkg/model"
	"github.com/2riing/vibe-promptgen/pkg/project"
	"github.com/2riing/vibe-promptgen/pkg/recommender"
)

var (
	envOnce sync.Once
	envCfg  *config.Config
	envLog  *logrus.Logger
)

// env loads .env and the environment once per process.
func env() (*config.Config, *logrus.Logger) {
	envOnce.Do(func() {
		envCfg = config.Load()
		envLog = config.NewLogger(envCfg.LogLevel)
	})
	return envCfg, envLog
}

// loadProject reads file onto the defaults, then merges each import in
// order.
func loadProject(file string, imports []string) (model.ProjectInput, error) {
	_, logger := env()
	im := project.NewImporter(logger)

	in, err := im.Load(file)
	if err != nil {
		return in, err
	}
	for _, path := range imports {
		in, err = im.ImportFile(in, path)
		if err != nil {
			return in, err
		}
	}
	return in, nil
}

func newRecommender(cfg *config.Config, logger *logrus.Logger) (*recommender.Recommender, error) {
	e, err := embedding.New(embedding.Options{
		Backend:   cfg.Embedder.Backend,
		Model:     cfg.Embedder.Model,
		OllamaURL: cfg.Embedder.OllamaURL,
		APIKey:    cfg.Embedder.GeminiKey,
	})
	if err != nil {
		return nil, err
	}

	var opts []recommender.Option
	if cfg.Embedder.BridgeFile != "" {
		rules, err := recommender.LoadBridge(cfg.Embedder.BridgeFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, recommender.WithBridge(rules))
	}
	return recommender.New(e, logger, cfg.Embedder.QueryCache, opts...)
}

func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = suffix
	return s
}

func printHeader(title string, lines ...string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Println()
	cyan.Println(title)
	for _, l := range lines {
		fmt.Println(l)
	}
	fmt.Println()
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	red.Printf("✗ %s\n", msg)
}
