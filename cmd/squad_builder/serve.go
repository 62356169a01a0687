package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pikard86/ai-squad-builder/internal/config"
	"github.com/pikard86/ai-squad-builder/internal/formation"
	"github.com/pikard86/ai-squad-builder/internal/lineup"
	"github.com/pikard86/ai-squad-builder/internal/metrics"
	"github.com/pikard86/ai-squad-builder/internal/roster"
	"github.com/pikard86/ai-squad-builder/internal/server"
	"github.com/pikard86/ai-squad-builder/internal/session"
)

var (
	servePort      int
	serveFormation string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the squad board, the roster and resume scouting as REST endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080, or $PORT)")
	serveCmd.Flags().StringVar(&serveFormation, "formation", "", "Formation the squad starts with")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Config{Port: servePort, Formation: serveFormation})
	if err != nil {
		return err
	}

	f, err := formation.Lookup(cfg.Formation)
	if err != nil {
		return err
	}

	scout, closeScout, err := newScouter(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer closeScout()

	m := metrics.NewManager()
	ctrl := session.New(lineup.New(roster.New(), f), scout, m)
	srv := server.New(ctrl, m, server.Config{Port: cfg.Port, CORSOrigin: cfg.CORSOrigin})

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Squad builder API on :%d (formation %s)\n", cfg.Port, f.ID)
	return srv.Start()
}
