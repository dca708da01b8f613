// Package app wires the ingestion core to its collaborators: the workbook
// engine behind the WorkbookOpener port and the optional dataset store.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/PlumpMath/ExcelToDataSetReader/domain/core"
	"github.com/PlumpMath/ExcelToDataSetReader/domain/dataset"
	"github.com/PlumpMath/ExcelToDataSetReader/domain/ingest"
	"github.com/PlumpMath/ExcelToDataSetReader/internal"
	"github.com/PlumpMath/ExcelToDataSetReader/internal/errors"
	"github.com/PlumpMath/ExcelToDataSetReader/ports"
)

// SourceKind tells which ingestion path produced a dataset.
type SourceKind string

const (
	SourceDelimited SourceKind = "delimited"
	SourceWorkbook  SourceKind = "workbook"
)

// workbookExtensions maps file extensions to the spreadsheet path; everything
// else is treated as delimited text.
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
	".xlam": true,
}

// IngestService normalizes delimited text and spreadsheet workbooks into
// datasets. Each call owns its own engine session and releases it on every
// exit path; outputs are independent values with no shared state.
type IngestService struct {
	opener ports.WorkbookOpener
	log    *internal.Logger
}

// NewIngestService creates an ingest service over the given workbook opener.
func NewIngestService(opener ports.WorkbookOpener) *IngestService {
	return &IngestService{
		opener: opener,
		log:    internal.DefaultLogger,
	}
}

// IngestDelimited parses raw delimited-text bytes into a one-table dataset.
// The parsing heuristics never fail.
func (s *IngestService) IngestDelimited(_ context.Context, data []byte) (*dataset.Dataset, error) {
	start := time.Now()
	ds := ingest.ParseDelimited(data)
	if t, ok := ds.Table(ingest.DefaultTableName); ok {
		s.log.Debug("delimited ingestion: %d columns, %d rows in %s",
			len(t.Columns), len(t.Rows), time.Since(start))
	}
	return &ds, nil
}

// IngestWorkbook opens the workbook bytes through the engine, flattens every
// visible sheet in workbook order, and closes the session. Any engine failure
// is terminal for the call and the in-progress dataset is discarded.
func (s *IngestService) IngestWorkbook(ctx context.Context, data []byte) (*dataset.Dataset, error) {
	session, err := s.opener.Open(ctx, data)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			s.log.Warn("workbook session close failed: %v", cerr)
		}
	}()

	names, err := session.VisibleSheetNames()
	if err != nil {
		return nil, err
	}

	ds := &dataset.Dataset{}
	for _, name := range names {
		rng, err := session.UsedRange(name)
		if err != nil {
			return nil, err
		}
		table := ingest.FlattenSheet(name, rng)
		if err := ds.AddTable(table); err != nil {
			return nil, errors.Wrapf(err, "flattening sheet %q", name)
		}
	}
	s.log.Debug("workbook ingestion: %d visible sheets", len(names))
	return ds, nil
}

// IngestFile reads one file and routes it by extension: known workbook
// extensions go through the engine, everything else through the delimited
// parser.
func (s *IngestService) IngestFile(ctx context.Context, path string) (*ports.DatasetRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	kind := SourceDelimited
	if workbookExtensions[strings.ToLower(filepath.Ext(path))] {
		kind = SourceWorkbook
	}

	var ds *dataset.Dataset
	switch kind {
	case SourceWorkbook:
		ds, err = s.IngestWorkbook(ctx, data)
	default:
		ds, err = s.IngestDelimited(ctx, data)
	}
	if err != nil {
		return nil, err
	}

	return &ports.DatasetRecord{
		ID:        core.NewID(),
		Name:      filepath.Base(path),
		Source:    string(kind),
		Data:      *ds,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// BatchResult pairs one input path with its ingestion outcome.
type BatchResult struct {
	Path   string
	Record *ports.DatasetRecord
	Err    error
}

// IngestFiles ingests many files with bounded concurrency. Every file gets a
// fresh engine session, satisfying the one-session-per-reader contract, so
// running paths in parallel is safe. Per-file failures are reported in the
// results rather than aborting the batch.
func (s *IngestService) IngestFiles(ctx context.Context, paths []string, concurrency int) []BatchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]BatchResult, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			rec, err := s.IngestFile(ctx, path)
			mu.Lock()
			results[i] = BatchResult{Path: path, Record: rec, Err: err}
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes completion.
	_ = g.Wait()
	return results
}
