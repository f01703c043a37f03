package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timecop/internal/api"
	"timecop/internal/clickup"
	"timecop/internal/logger"
	"timecop/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the audit HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(true)

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening run history database: %w", err)
	}
	defer store.Close()

	client := clickup.NewClient(cmd.Context(), cfg.ClickUp)
	router := api.NewRouter(cfg, client, store)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "team_id", cfg.ClickUp.TeamID)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
