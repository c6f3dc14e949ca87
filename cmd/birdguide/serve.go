package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/vytor/birdguide/internal/api"
	"github.com/vytor/birdguide/internal/auth"
	"github.com/vytor/birdguide/internal/config"
	"github.com/vytor/birdguide/internal/db"
	"github.com/vytor/birdguide/internal/identity"
	"github.com/vytor/birdguide/internal/logger"
	"github.com/vytor/birdguide/internal/metrics"
	"github.com/vytor/birdguide/internal/repository/sqlrepo"
	"github.com/vytor/birdguide/internal/scheduler"
	"github.com/vytor/birdguide/internal/services"
	"github.com/vytor/birdguide/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func serveCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*cfg)
		},
	}
}

func serve(cfg config.Config) error {
	log := logger.Default()

	log.Info("===========================================")
	log.Info("BirdGuide Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("default_locale=%s", cfg.DefaultLocale)
	log.Debug("species_cache_ttl=%v", cfg.SpeciesCacheTTL)
	log.Debug("session_ttl=%v", cfg.SessionTTL)
	log.Debug("session_sweep_interval=%v", cfg.SessionSweepInterval)
	log.Debug("identity_provider=%t", cfg.Auth0.Domain != "")

	database, err := db.Open(cfg.DBDriver, cfg.DBDSN, cfg.DBMaxOpenConns)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	var idp identity.Client
	if cfg.Auth0.Domain != "" {
		idp = identity.NewAuth0Client(cfg.Auth0)
	}

	store := sqlrepo.NewStore(database)
	repos := store.Repositories()
	flashcardService := services.NewFlashcardService(store, repos, m)

	srv := &api.Server{
		SpeciesService:   services.NewSpeciesService(repos.Species, cfg.DefaultLocale, cfg.SpeciesCacheTTL),
		FlashcardService: flashcardService,
		UserService:      services.NewUserService(repos.Users, idp, cfg.DefaultLocale),
		Verifier:         verifier,
		DB:               database,
		Metrics:          m,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewPool(1, 4)
	pool.Start(ctx)

	sched := scheduler.New(pool)
	if err := sched.Every(cfg.SessionSweepInterval, &worker.ExpireSessionsJob{
		Sessions: flashcardService,
		TTL:      cfg.SessionTTL,
	}); err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}
	sched.Start()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-serverErr:
		log.Error("HTTP server error: %v", err)
		sched.Stop()
		pool.Stop()
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	sched.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	pool.Stop()

	log.Info("===========================================")
	log.Info("BirdGuide Server Stopped")
	log.Info("===========================================")
	return nil
}
