package ui

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/PlumpMath/ExcelToDataSetReader/app"
	"github.com/PlumpMath/ExcelToDataSetReader/domain/core"
	"github.com/PlumpMath/ExcelToDataSetReader/internal"
	"github.com/PlumpMath/ExcelToDataSetReader/internal/profile"
	"github.com/PlumpMath/ExcelToDataSetReader/internal/report"
	"github.com/PlumpMath/ExcelToDataSetReader/ports"
)

// datasetSummary is the upload/list response shape: table names and sizes
// without the full cell payload.
type datasetSummary struct {
	ID        core.ID        `json:"id"`
	Name      string         `json:"name"`
	Source    string         `json:"source"`
	Tables    []tableSummary `json:"tables"`
	CreatedAt time.Time      `json:"created_at"`
}

type tableSummary struct {
	Name    string `json:"name"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
}

func summarize(rec *ports.DatasetRecord) datasetSummary {
	s := datasetSummary{
		ID:        rec.ID,
		Name:      rec.Name,
		Source:    rec.Source,
		CreatedAt: rec.CreatedAt,
	}
	for i := range rec.Data.Tables {
		t := &rec.Data.Tables[i]
		s.Tables = append(s.Tables, tableSummary{
			Name:    t.Name,
			Columns: len(t.Columns),
			Rows:    len(t.Rows),
		})
	}
	return s
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload ingests one uploaded file, routed by its extension, and
// persists the result when a store is configured.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	rec, err := a.ingestUpload(r, header.Filename, data)
	if err != nil {
		a.log.Error("ingestion failed for %s: %v", header.Filename, err)
		respondError(w, engineStatus(err), err.Error())
		return
	}

	if a.store != nil {
		if err := a.store.Save(r.Context(), rec); err != nil {
			a.log.Error("failed to save dataset %s: %v", rec.ID, err)
			respondError(w, http.StatusInternalServerError, "failed to save dataset")
			return
		}
		respondJSON(w, http.StatusCreated, summarize(rec))
		return
	}
	// No store configured: the full dataset is the only copy the caller
	// will ever see.
	respondJSON(w, http.StatusCreated, rec)
}

func (a *App) ingestUpload(r *http.Request, filename string, data []byte) (*ports.DatasetRecord, error) {
	var rec ports.DatasetRecord

	kind := app.SourceDelimited
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm", ".xlam":
		kind = app.SourceWorkbook
	}

	if kind == app.SourceWorkbook {
		parsed, err := a.service.IngestWorkbook(r.Context(), data)
		if err != nil {
			return nil, err
		}
		rec.Data = *parsed
	} else {
		parsed, err := a.service.IngestDelimited(r.Context(), data)
		if err != nil {
			return nil, err
		}
		rec.Data = *parsed
	}

	rec.ID = core.NewID()
	rec.Name = filename
	rec.Source = string(kind)
	rec.CreatedAt = time.Now().UTC()
	return &rec, nil
}

func (a *App) handleList(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		respondError(w, http.StatusNotImplemented, "no dataset store configured")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	records, err := a.store.List(r.Context(), limit, offset)
	if err != nil {
		a.log.Error("failed to list datasets: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list datasets")
		return
	}
	summaries := make([]datasetSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, summarize(rec))
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (a *App) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.loadRecord(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// handleSelect filters a stored dataset down to the requested table names.
// Unmatched names are silently omitted; selection never fails.
func (a *App) handleSelect(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.loadRecord(w, r)
	if !ok {
		return
	}

	var req struct {
		Tables []string `json:"tables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid selection request")
		return
	}

	selected := rec.Data.Select(req.Tables...)
	respondJSON(w, http.StatusOK, selected)
}

func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.loadRecord(w, r)
	if !ok {
		return
	}

	profiles := profile.ProfileDataset(&rec.Data)
	md := report.BuildMarkdown(rec, profiles)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	page := markdown.ToHTML([]byte(md), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

func (a *App) loadRecord(w http.ResponseWriter, r *http.Request) (*ports.DatasetRecord, bool) {
	if a.store == nil {
		respondError(w, http.StatusNotImplemented, "no dataset store configured")
		return nil, false
	}
	id := core.ID(chi.URLParam(r, "id"))
	rec, err := a.store.GetByID(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			respondError(w, http.StatusNotFound, "dataset not found")
		} else {
			a.log.Error("failed to load dataset %s: %v", id, err)
			respondError(w, http.StatusInternalServerError, "failed to load dataset")
		}
		return nil, false
	}
	return rec, true
}

// engineStatus maps ingestion failures to HTTP statuses: engine faults from a
// bad upload read as client errors, everything else as a server fault.
func engineStatus(err error) int {
	if core.IsEngineError(err) {
		switch core.EngineKind(err) {
		case core.EngineIO, core.EngineDriverMissing:
			return http.StatusUnprocessableEntity
		case core.EngineAccessDenied:
			return http.StatusForbidden
		}
	}
	return http.StatusInternalServerError
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already out; nothing more to do than log.
		internal.DefaultLogger.Error("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
