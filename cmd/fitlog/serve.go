package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fitness-tracker/internal/api"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/seed"
	"alcyxob/fitness-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer store.shutdown()

	if cfg.Storage.SeedDemo {
		seeded, err := seed.SeedIfEmpty(ctx, store.tables, seed.DefaultData())
		if err != nil {
			return err
		}
		if seeded {
			log.Info("empty store filled with demo data")
		}
	}

	deps := api.Dependencies{VideoURLExpiry: cfg.Video.URLExpiry}

	// --- Metrics ---
	tables := store.tables
	if cfg.Metrics.Enabled {
		reg := metrics.SetupPrometheus()
		deps.Metrics = metrics.NewManager("fitlog", "server", reg)
		deps.Registry = reg
		tables = metrics.InstrumentStore(tables, deps.Metrics)
	}

	// --- Video storage ---
	if cfg.Video.Enabled {
		videos, err := storage.NewS3Storage(ctx, cfg.Video)
		if err != nil {
			return err
		}
		deps.Videos = videos
	}

	ctrls := newControllers(tables)
	deps.Exercises = ctrls.exercises
	deps.Trainings = ctrls.trainings
	deps.Workouts = ctrls.workouts
	deps.Progression = ctrls.progression

	// --- Gin Engine ---
	if log.GetLevel() < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, deps)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down server...")

	// The server has 5 seconds to finish the requests it is currently handling
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return err
	}

	log.Info("server exiting")
	return nil
}
