package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/2riing/vibe-promptgen/pkg/draft"
	"github.com/2riing/vibe-promptgen/pkg/llm"
	"github.com/2riing/vibe-promptgen/pkg/prompts"
)

var (
	draftFile        string
	draftImports     []string
	draftProvider    string
	draftModel       string
	draftAPIKey      string
	draftTemperature float64
	draftMaxTokens   int
	draftDryRun      bool
	draftOut         string
	draftTimeout     time.Duration
)

func NewDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Ask an LLM to draft the process documents from the generated prompt",
		Long: `Generate the master prompt from a project file and send it to an LLM
provider, which returns a first draft of the process documents.

The API key is taken from --api-key or from the provider's environment
variable (OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY). The key is never
logged or stored.

Examples:
  # Draft with OpenAI (default provider)
  promptgen draft -f project.yaml

  # Draft with Claude and save the result
  promptgen draft -f project.yaml --provider anthropic -o process.md

  # Show what would be sent without calling the provider
  promptgen draft -f project.yaml --dry-run`,
		Args: cobra.NoArgs,
		RunE: runDraft,
	}

	cmd.Flags().StringVarP(&draftFile, "file", "f", "project.yaml", "Project file (YAML or JSON)")
	cmd.Flags().StringSliceVar(&draftImports, "import", []string{}, "Documents merged over the project file, in order")
	cmd.Flags().StringVar(&draftProvider, "provider", "", "LLM provider (openai, anthropic, gemini); defaults to LLM_PROVIDER or openai")
	cmd.Flags().StringVar(&draftModel, "model", "", "Model name; defaults to the provider's default")
	cmd.Flags().StringVar(&draftAPIKey, "api-key", "", "Provider API key; defaults to the provider's environment variable")
	cmd.Flags().Float64Var(&draftTemperature, "temperature", draft.DefaultTemperature, "Sampling temperature")
	cmd.Flags().IntVar(&draftMaxTokens, "max-tokens", draft.DefaultMaxTokens, "Maximum tokens in the reply")
	cmd.Flags().BoolVar(&draftDryRun, "dry-run", false, "Print the request summary without calling the provider")
	cmd.Flags().StringVarP(&draftOut, "out", "o", "", "Write the draft to this file instead of stdout")
	cmd.Flags().DurationVar(&draftTimeout, "timeout", 5*time.Minute, "Timeout for the provider call")

	return cmd
}

func runDraft(cmd *cobra.Command, args []string) error {
	cfg, logger := env()

	in, err := loadProject(draftFile, draftImports)
	if err != nil {
		return err
	}
	result := prompts.Generate(in)
	if n := len(result.Errors); n > 0 {
		printError(fmt.Sprintf("%d required field(s) are missing; the draft will contain decision markers", n))
	}

	provider := draftProvider
	if provider == "" {
		provider = cfg.LLM.Provider
	}
	if provider == "" {
		provider = string(llm.ProviderOpenAI)
	}

	req := draft.Request{
		PromptText: result.PromptText,
		Provider:   provider,
		Model:      draftModel,
		APIKey:     draftAPIKey,
		DryRun:     draftDryRun,
	}
	if p, err := llm.ParseProvider(provider); err == nil {
		if req.APIKey == "" {
			req.APIKey = cfg.LLM.APIKey(string(p))
		}
		if req.Model == "" {
			req.Model = cfg.LLM.Model(string(p))
		}
	}
	if cmd.Flags().Changed("temperature") {
		req.Temperature = &draftTemperature
	}
	if cmd.Flags().Changed("max-tokens") {
		req.MaxTokens = &draftMaxTokens
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), draftTimeout)
	defer cancel()

	s := newSpinner(fmt.Sprintf(" Drafting with %s...", provider))
	if !draftDryRun {
		s.Start()
	}
	resp := draft.NewService(logger).Draft(ctx, req)
	s.Stop()

	if !resp.OK() {
		return errors.New(resp.Error)
	}

	if draftOut == "" {
		fmt.Println(resp.Content)
		return nil
	}
	if err := os.WriteFile(draftOut, []byte(resp.Content+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", draftOut, err)
	}
	printSuccess(fmt.Sprintf("Draft written to %s (model %s, %d in / %d out tokens)",
		draftOut, resp.Model, resp.InputTokens, resp.OutputTokens))
	return nil
}
