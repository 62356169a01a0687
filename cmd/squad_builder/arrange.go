package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pikard86/ai-squad-builder/internal/config"
	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/lineup"
	"github.com/pikard86/ai-squad-builder/internal/observability"
	"github.com/pikard86/ai-squad-builder/internal/roster"
	"github.com/pikard86/ai-squad-builder/internal/schemas"
	"github.com/pikard86/ai-squad-builder/internal/session"
	"github.com/pikard86/ai-squad-builder/internal/types"
)

var (
	arrangeRoster    string
	arrangeFormation string
	arrangeAnalyze   bool
)

var arrangeCmd = &cobra.Command{
	Use:   "arrange",
	Short: "Arrange a roster file into a formation",
	Long:  "Loads scored cards from a roster JSON file, asks the model for the best lineup in the formation, and prints the resulting board.",
	RunE:  runArrange,
}

func init() {
	arrangeCmd.Flags().StringVarP(&arrangeRoster, "roster", "r", "", "Path to roster JSON file (required)")
	arrangeCmd.Flags().StringVarP(&arrangeFormation, "formation", "f", "", "Formation id (default cross-functional)")
	arrangeCmd.Flags().BoolVar(&arrangeAnalyze, "analyze", false, "Evaluate the arranged squad's synergy")

	if err := arrangeCmd.MarkFlagRequired("roster"); err != nil {
		panic(fmt.Sprintf("failed to mark roster flag as required: %v", err))
	}

	rootCmd.AddCommand(arrangeCmd)
}

func runArrange(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Config{Formation: arrangeFormation})
	if err != nil {
		return err
	}
	f, err := formation.Lookup(cfg.Formation)
	if err != nil {
		return err
	}

	r, err := loadRoster(arrangeRoster)
	if err != nil {
		return err
	}

	scout, closeScout, err := newScouter(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeScout()

	ctrl := session.New(lineup.New(r, f), scout, nil)
	printer := observability.NewPrinter(cmd.OutOrStdout())

	report, err := ctrl.Arrange(cmd.Context())
	if err != nil {
		return fmt.Errorf("arrangement failed: %w", err)
	}
	printer.PrintReconcile(report)

	if arrangeAnalyze {
		if _, err := ctrl.Analyze(cmd.Context()); err != nil {
			return fmt.Errorf("synergy evaluation failed: %w", err)
		}
	}
	printer.PrintSquad(ctrl.Snapshot().Snapshot)
	return nil
}

// loadRoster validates a roster file against its schema and loads it in file order.
func loadRoster(path string) (*roster.Roster, error) {
	if err := schemas.ValidateFile(schemas.Roster, path); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			return nil, fmt.Errorf("invalid roster file %s: %w", path, err)
		}
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var cards []types.Candidate
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse roster file %s: %w", path, err)
	}

	r := roster.New()
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("invalid candidate %q: %w", c.ID, err)
		}
		if err := r.Add(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}
