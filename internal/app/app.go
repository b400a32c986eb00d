// Package app wires the tracker components together and manages the
// application lifecycle.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/chrissnell/isstracker/internal/controllers/restserver"
	"github.com/chrissnell/isstracker/internal/ephemeris"
	"github.com/chrissnell/isstracker/internal/feed"
	"github.com/chrissnell/isstracker/internal/geocode"
	"github.com/chrissnell/isstracker/internal/log"
	"github.com/chrissnell/isstracker/internal/tracker"
	"github.com/chrissnell/isstracker/pkg/config"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fetcher := feed.NewFetcher(a.cfg.Feed.URL, time.Duration(a.cfg.Feed.TimeoutSeconds)*time.Second)

	var geocoder tracker.Geocoder
	if a.cfg.Geocoder.Disabled {
		log.Info("reverse geocoding is disabled by configuration")
	} else {
		geocoder = geocode.NewNominatim(
			a.cfg.Geocoder.BaseURL,
			a.cfg.Geocoder.UserAgent,
			time.Duration(a.cfg.Geocoder.TimeoutSeconds)*time.Second,
		)
	}

	service := tracker.NewService(ephemeris.NewStore(), tracker.WallClock{}, geocoder, a.logger)

	// Fetch and load the trajectory data once at startup. A failure here is
	// not fatal: the store starts empty and POST /post-data can recover.
	if raw, err := fetcher.Fetch(ctx); err != nil {
		log.Errorf("initial feed fetch failed: %v", err)
	} else if err := service.Load(raw); err != nil {
		log.Errorf("initial feed load failed: %v", err)
	}

	rest, err := restserver.NewController(ctx, &wg, a.cfg.REST, service, fetcher, a.logger)
	if err != nil {
		return err
	}
	if err := rest.StartController(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
