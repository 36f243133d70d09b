/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tunelens/internal/analytics"
	"tunelens/internal/config"
	"tunelens/internal/history"
	"tunelens/internal/httpapi"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analytics HTTP API",
	Long: `Start an HTTP server exposing the analytics aggregation.

Endpoints:
  POST /api/analytics - run an aggregation; the JSON payload may carry
                        client_id, client_secret, and artist, each
                        falling back to configured defaults
  GET  /health        - health check`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	serveCmd.Flags().String("log-file", "", "Log file path (default: stderr)")
	serveCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.ListenAddr
	}

	logFile, _ := cmd.Flags().GetString("log-file")
	logLevel, _ := cmd.Flags().GetString("log-level")
	logger := setupLogger(logFile, logLevel)

	runner := analytics.NewRunner(cfg.Spotify.Market, cfg.Spotify.SearchStrategy, logger)

	// History recording is optional; the server runs without it
	var recorder httpapi.Recorder
	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.HistoryDB).Msg("History disabled: failed to open database")
		} else {
			defer store.Close()
			recorder = store
		}
	}

	server := httpapi.New(runner, recorder, httpapi.Config{
		DefaultClientID:     cfg.Spotify.ClientID,
		DefaultClientSecret: cfg.Spotify.ClientSecret,
		DefaultArtist:       cfg.DefaultArtist,
	}, logger)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Graceful shutdown failed")
		}

		// Second signal forces immediate exit
		<-sigChan
		logger.Warn().Msg("Received second signal, forcing exit")
		os.Exit(1)
	}()

	logger.Info().Str("addr", addr).Msg("Starting analytics server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info().Msg("Server stopped")
	return nil
}
