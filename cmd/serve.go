package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/2riing/vibe-promptgen/pkg/draft"
	"github.com/2riing/vibe-promptgen/pkg/project"
	"github.com/2riing/vibe-promptgen/pkg/server"
)

var serveAddr string

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for the web form",
		Long: `Serve the generate, validate, import, recommend and draft operations over
HTTP. Recommendation progress is also streamed on a websocket at
/api/recommend/ws.

Examples:
  promptgen serve
  PROMPTGEN_EMBEDDER=ollama promptgen serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address; defaults to PROMPTGEN_ADDR or :8080")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger := env()

	addr := serveAddr
	if addr == "" {
		addr = cfg.Addr
	}

	rec, err := newRecommender(cfg, logger)
	if err != nil {
		return err
	}
	srv := server.New(addr, project.NewImporter(logger), rec, draft.NewService(logger), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printHeader("🚀 Prompt generator API", "Listening on "+addr)
	return srv.Start(ctx)
}
