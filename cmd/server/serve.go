package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nashra-news-api/internal/api"
	"github.com/nashra-news-api/internal/database"
	"github.com/nashra-news-api/internal/gateway"
	"github.com/nashra-news-api/internal/market"
	"github.com/nashra-news-api/internal/repository"
	"github.com/nashra-news-api/internal/seed"
	"github.com/nashra-news-api/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	log.Info().Msg("Starting NASHRA news API server...")

	// Load seed catalogue
	data, err := seed.Load(cfg.Feed.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}
	catalog := service.NewCatalog(data)
	log.Info().
		Int("articles", catalog.Articles.Count()).
		Int("authors", catalog.Authors.Count()).
		Msg("Seed catalogue loaded")

	// Initialize storage
	var db *database.DB
	if cfg.Storage.Driver != "memory" {
		db, err = database.New(&cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := db.RunMigrations(cfg.Storage.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	// Initialize repositories
	repos := repository.New(repository.NewKV(db), log)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize text generation gateway
	gw, err := gateway.New(ctx, cfg.AI, log)
	if err != nil {
		return fmt.Errorf("failed to initialize text generation gateway: %w", err)
	}

	// Market ticker refreshes in the background
	var source gateway.MarketSource
	if cfg.Market.Enabled {
		source = gw.MarketSource()
		if source == nil {
			log.Info().Str("ai_provider", cfg.AI.Provider).Msg("Market refresh disabled, provider has no market data")
		}
	}
	ticker := market.NewRefresher(source, data.Market, cfg.Market.RefreshInterval, log)
	ticker.Start(ctx)

	// Initialize services
	services := service.NewServices(repos, catalog, gw, ticker, cfg, log)
	services.Sessions.StartSweeper(ctx)

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("storage", cfg.Storage.Driver).Str("ai_provider", cfg.AI.Provider).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop background work
	ticker.Stop()
	services.Sessions.StopSweeper()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
