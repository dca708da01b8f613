// Package ui exposes the ingestion service over HTTP.
package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/PlumpMath/ExcelToDataSetReader/app"
	"github.com/PlumpMath/ExcelToDataSetReader/internal"
	"github.com/PlumpMath/ExcelToDataSetReader/ports"
)

// App represents the HTTP application
type App struct {
	router  *chi.Mux
	service *app.IngestService
	store   ports.DatasetStore
	log     *internal.Logger

	maxUploadBytes int64
}

// Config holds HTTP application configuration
type Config struct {
	Port           string
	MaxUploadBytes int64
}

// NewApp creates the HTTP application. The store may be nil, in which case
// upload responses carry the full dataset and nothing is persisted.
func NewApp(config Config, service *app.IngestService, store ports.DatasetStore) *App {
	a := &App{
		service:        service,
		store:          store,
		log:            internal.DefaultLogger,
		maxUploadBytes: config.MaxUploadBytes,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", a.handleHealth)
	r.Route("/api/datasets", func(r chi.Router) {
		r.Post("/", a.handleUpload)
		r.Get("/", a.handleList)
		r.Get("/{id}", a.handleGet)
		r.Post("/{id}/select", a.handleSelect)
		r.Get("/{id}/report", a.handleReport)
	})

	a.router = r
	return a
}

// Router returns the HTTP handler
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the configured port
func Start(config Config, a *App) error {
	addr := ":" + config.Port
	a.log.Info("listening on %s", addr)
	if err := http.ListenAndServe(addr, a.Router()); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
