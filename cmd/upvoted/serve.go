// Serve command for the upvoted CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/upvote/internal/httpserver"
	"github.com/mesh-intelligence/upvote/pkg/types"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the voting HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, dataDir, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "serve:", err)
			os.Exit(exitSysError)
		}
		defer store.Close()

		cfg := types.Config{
			DataDir:     dataDir,
			Port:        resolvePort(),
			CORSOrigins: configOrigins,
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "serve:", err)
			os.Exit(exitUserError)
		}

		srv := httpserver.NewServer(cfg, store)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		slog.Info("server started", "port", cfg.EffectivePort(), "data_dir", dataDir)

		select {
		case err := <-errCh:
			if err != nil {
				fmt.Fprintln(os.Stderr, "serve:", err)
				os.Exit(exitSysError)
			}
		case <-ctx.Done():
			slog.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Fprintln(os.Stderr, "serve: shutdown:", err)
				os.Exit(exitSysError)
			}
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "HTTP listen port (default: 8080)")
}
