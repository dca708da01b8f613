package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/PlumpMath/ExcelToDataSetReader/adapters/excel"
	"github.com/PlumpMath/ExcelToDataSetReader/app"
	"github.com/PlumpMath/ExcelToDataSetReader/internal/config"
	"github.com/PlumpMath/ExcelToDataSetReader/internal/profile"
	"github.com/PlumpMath/ExcelToDataSetReader/internal/report"
	"github.com/PlumpMath/ExcelToDataSetReader/ports"
)

func main() {
	var (
		tables  = flag.String("tables", "", "comma-separated table names to select (default: all)")
		asJSON  = flag.Bool("json", false, "print the full dataset as JSON instead of the report")
		showAll = flag.Bool("cells", false, "with -json, include cell data (default prints summaries)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] file.csv|file.xlsx ...\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	service := app.NewIngestService(excel.NewOpener())
	results := service.IngestFiles(context.Background(), paths, cfg.Ingest.BatchConcurrency)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			failed++
			continue
		}
		printRecord(res.Record, *tables, *asJSON, *showAll)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func printRecord(rec *ports.DatasetRecord, tables string, asJSON, withCells bool) {
	if tables != "" {
		names := strings.Split(tables, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		rec.Data = rec.Data.Select(names...)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if withCells {
			_ = enc.Encode(rec)
			return
		}
		type summary struct {
			Name   string   `json:"name"`
			Source string   `json:"source"`
			Tables []string `json:"tables"`
		}
		_ = enc.Encode(summary{Name: rec.Name, Source: rec.Source, Tables: rec.Data.TableNames()})
		return
	}

	profiles := profile.ProfileDataset(&rec.Data)
	fmt.Print(report.BuildMarkdown(rec, profiles))
}
