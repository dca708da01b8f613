package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/PlumpMath/ExcelToDataSetReader/adapters/excel"
	"github.com/PlumpMath/ExcelToDataSetReader/adapters/postgres"
	"github.com/PlumpMath/ExcelToDataSetReader/app"
	"github.com/PlumpMath/ExcelToDataSetReader/internal/config"
	"github.com/PlumpMath/ExcelToDataSetReader/internal/errors"
	"github.com/PlumpMath/ExcelToDataSetReader/ports"
	"github.com/PlumpMath/ExcelToDataSetReader/ui"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	store, err := initStore(cfg)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}

	service := app.NewIngestService(excel.NewOpener())

	uiConfig := ui.Config{
		Port:           cfg.Server.Port,
		MaxUploadBytes: cfg.Ingest.MaxUploadBytes,
	}
	application := ui.NewApp(uiConfig, service, store)

	if err := ui.Start(uiConfig, application); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// initStore connects the dataset store when DATABASE_URL is configured;
// without it the server runs storeless.
func initStore(cfg *config.Config) (ports.DatasetStore, error) {
	if cfg.Database.URL == "" {
		log.Println("DATABASE_URL not set, running without dataset store")
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "failed to ensure schema")
	}
	return postgres.NewDatasetStore(db), nil
}
