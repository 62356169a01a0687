package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/observability"
)

var formationsJSON bool

var formationsCmd = &cobra.Command{
	Use:   "formations",
	Short: "List the available formations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if formationsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(formation.Catalog())
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintFormations(formation.Catalog())
		return nil
	},
}

func init() {
	formationsCmd.Flags().BoolVar(&formationsJSON, "json", false, "Print the catalog as JSON")
	rootCmd.AddCommand(formationsCmd)
}
