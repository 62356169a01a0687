package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pikard86/ai-squad-builder/internal/config"
	"github.com/pikard86/ai-squad-builder/internal/ingestion"
	"github.com/pikard86/ai-squad-builder/internal/observability"
	"github.com/pikard86/ai-squad-builder/internal/types"
)

var (
	scoutJSON        bool
	scoutConcurrency int
)

var scoutCmd = &cobra.Command{
	Use:   "scout FILE...",
	Short: "Score resumes into player cards",
	Long: `Scores each resume (PDF, DOCX or text) into a player card. Files are scored concurrently.
With --json the cards are printed as a roster file that "arrange" accepts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScout,
}

func init() {
	scoutCmd.Flags().BoolVar(&scoutJSON, "json", false, "Print the cards as a JSON roster")
	scoutCmd.Flags().IntVar(&scoutConcurrency, "concurrency", 0, "Resumes scored in parallel (default 3)")
	rootCmd.AddCommand(scoutCmd)
}

func runScout(cmd *cobra.Command, paths []string) error {
	cfg, err := resolveConfig(config.Config{Concurrency: scoutConcurrency})
	if err != nil {
		return err
	}

	// Fail on unreadable input before spending any model calls.
	docs := make([]*ingestion.Document, len(paths))
	for i, path := range paths {
		if docs[i], err = ingestion.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	scout, closeScout, err := newScouter(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeScout()

	cards := make([]types.Candidate, len(docs))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			log.Printf("[scout] scoring %s (%s)", doc.Name, doc.Kind)
			cand, err := scout.ScoreResume(ctx, doc)
			if err != nil {
				return fmt.Errorf("failed to score %s: %w", doc.Name, err)
			}
			cards[i] = *cand
			log.Printf("[scout] %s -> %s, OVR %d", doc.Name, cand.Name, cand.Overall)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if scoutJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}
	printer := observability.NewPrinter(cmd.OutOrStdout())
	for _, c := range cards {
		printer.PrintCandidate(c)
	}
	return nil
}
