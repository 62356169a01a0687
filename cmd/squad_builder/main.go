// Package main provides the entry point for the squad builder CLI and HTTP API server.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pikard86/ai-squad-builder/internal/config"
	"github.com/pikard86/ai-squad-builder/internal/llm"
	"github.com/pikard86/ai-squad-builder/internal/scouting"
	"github.com/pikard86/ai-squad-builder/internal/session"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "squad_builder",
	Short:         "AI Squad Builder",
	Long:          "Squad Builder scores resumes into player cards with Gemini and arranges them into engineering team formations.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if !verbose && cmd.Name() != "serve" {
			log.SetOutput(io.Discard)
		} else {
			log.SetOutput(os.Stderr)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")
}

// newScouter builds the model-backed scouter. Tests replace it.
var newScouter = func(ctx context.Context, cfg config.Config) (session.Scouter, func(), error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return scouting.New(client), func() { _ = client.Close() }, nil
}

// resolveConfig layers flags over the config file, the environment and the defaults.
func resolveConfig(flags config.Config) (config.Config, error) {
	merged := flags
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		merged = merged.MergeWithDefaults(*fileCfg)
	}
	merged = merged.MergeWithDefaults(config.FromEnv())
	merged = merged.MergeWithDefaults(config.Defaults())
	merged.Verbose = merged.Verbose || verbose

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
