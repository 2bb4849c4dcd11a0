package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/api"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagHTTPAddr string
	flagNoDB     bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve chunk layouts over HTTP",
	Long: `Start an HTTP service that lays out chunks on request.

Endpoints:
  GET /health
  GET /api/v1/catalog
  GET /api/v1/chunks/{index}?seed=<int64>&level=<int>
  GET /api/v1/runs?preset=<name>&limit=<n>
  GET /api/v1/runs/{id}

When level is omitted the chunk gets the level a run would give it under
the loaded config and --preset.

Examples:
  runner api
  runner api --addr :9000 --preset hard
  curl 'localhost:8080/api/v1/chunks/3?seed=42'`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":8080", "HTTP listen address (host:port)")
	apiCmd.Flags().BoolVar(&flagNoDB, "no-db", false, "Do not open the run database")
}

func runAPI(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("runner-api", false)
	if err != nil {
		return err
	}
	defer closeLog()

	var store *storage.Store
	if !flagNoDB {
		store = openStoreOrWarn(logger)
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.NewServer(cfg, store, logger).ListenAndServe(ctx, flagHTTPAddr)
}
