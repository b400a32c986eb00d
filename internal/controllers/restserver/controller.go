// Package restserver exposes the trajectory query façade over HTTP.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/chrissnell/isstracker/internal/log"
	"github.com/chrissnell/isstracker/internal/metrics"
	"github.com/chrissnell/isstracker/internal/tracker"
	"github.com/chrissnell/isstracker/pkg/config"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// FeedSource retrieves raw trajectory feed text, used by the reload endpoint.
type FeedSource interface {
	Fetch(ctx context.Context) (string, error)
}

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTData
	Server     http.Server
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTData, service *tracker.Service, feedSource FeedSource, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		logger:     logger,
	}

	// If a listen address was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Info("rest.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		rc.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if rc.Port == 0 {
		logger.Info("rest.port not provided; defaulting to 8080")
		rc.Port = 8080
	}

	ctrl.handlers = NewHandlers(service, feedSource, logger)

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(metrics.Middleware)

	router.HandleFunc("/", c.handlers.GetFullSeries).Methods(http.MethodGet)
	router.HandleFunc("/epochs", c.handlers.GetEpochs).Methods(http.MethodGet)
	router.HandleFunc("/epochs/{epoch}", c.handlers.GetStateVector).Methods(http.MethodGet)
	router.HandleFunc("/epochs/{epoch}/speed", c.handlers.GetSpeed).Methods(http.MethodGet)
	router.HandleFunc("/epochs/{epoch}/location", c.handlers.GetLocation).Methods(http.MethodGet)
	router.HandleFunc("/now", c.handlers.GetNow).Methods(http.MethodGet)
	router.HandleFunc("/header", c.handlers.GetHeader).Methods(http.MethodGet)
	router.HandleFunc("/metadata", c.handlers.GetMetadata).Methods(http.MethodGet)
	router.HandleFunc("/comment", c.handlers.GetComments).Methods(http.MethodGet)
	router.HandleFunc("/convert", c.handlers.ConvertUnits).Methods(http.MethodPut)
	router.HandleFunc("/post-data", c.handlers.ReloadData).Methods(http.MethodPost)
	router.HandleFunc("/delete-data", c.handlers.DeleteData).Methods(http.MethodDelete)
	router.HandleFunc("/help", c.handlers.GetHelp).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return router
}
