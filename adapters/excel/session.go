// Package excel adapts the excelize workbook engine to the WorkbookSession
// capability interface the ingestion core consumes.
package excel

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/PlumpMath/ExcelToDataSetReader/domain/core"
	"github.com/PlumpMath/ExcelToDataSetReader/domain/dataset"
	"github.com/PlumpMath/ExcelToDataSetReader/domain/ingest"
	"github.com/PlumpMath/ExcelToDataSetReader/ports"
)

// Opener creates excelize-backed workbook sessions.
type Opener struct{}

// NewOpener creates a new workbook opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open parses the workbook bytes into a session. Failures are classified into
// the engine error taxonomy; the caller owns the returned session and must
// close it on every exit path.
func (o *Opener) Open(ctx context.Context, data []byte) (ports.WorkbookSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.NewEngineError(core.EngineUnavailable, err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, classifyEngineError(err)
	}
	return &session{file: f}, nil
}

// session wraps one opened excelize file. Not safe for concurrent use, per
// the one-active-workbook-per-reader contract.
type session struct {
	file *excelize.File
}

// VisibleSheetNames returns sheet names in workbook order, skipping every
// sheet whose visibility flag hides it from the user.
func (s *session) VisibleSheetNames() ([]string, error) {
	var names []string
	for _, name := range s.file.GetSheetList() {
		visible, err := s.file.GetSheetVisible(name)
		if err != nil {
			return nil, classifyEngineError(err)
		}
		if visible {
			names = append(names, name)
		}
	}
	return names, nil
}

// UsedRange reads the sheet's populated region as a weakly-typed matrix, or a
// single scalar when only one cell holds content.
func (s *session) UsedRange(sheet string) (ingest.SheetRange, error) {
	rows, err := s.file.GetRows(sheet)
	if err != nil {
		return ingest.SheetRange{}, classifyEngineError(err)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	if len(rows) == 1 && width == 1 {
		return ingest.ScalarRange(s.cellValue(sheet, 0, 0, rows[0][0])), nil
	}

	cells := make([][]dataset.Cell, len(rows))
	for r, row := range rows {
		line := make([]dataset.Cell, width)
		for c := 0; c < width; c++ {
			raw := ""
			if c < len(row) {
				raw = row[c]
			}
			line[c] = s.cellValue(sheet, r, c, raw)
		}
		cells[r] = line
	}
	return ingest.MatrixRange(cells), nil
}

// Close releases the underlying workbook.
func (s *session) Close() error {
	return s.file.Close()
}

// cellValue maps one formatted cell string to the weakly-typed union, using
// the sheet's native cell type to recognize numbers the way the engine
// resolved them.
func (s *session) cellValue(sheet string, row, col int, raw string) dataset.Cell {
	if raw == "" {
		return dataset.Cell{}
	}
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return dataset.TextCell(raw)
	}
	cellType, err := s.file.GetCellType(sheet, ref)
	if err != nil {
		return dataset.TextCell(raw)
	}
	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, perr := strconv.ParseFloat(raw, 64); perr == nil {
			return dataset.NumberCell(n)
		}
	}
	return dataset.TextCell(raw)
}

// classifyEngineError maps engine faults onto the fixed failure taxonomy.
// The mapping keys off error identity, never diagnostic-message text.
func classifyEngineError(err error) error {
	switch {
	case errors.Is(err, os.ErrPermission):
		return core.NewEngineError(core.EngineAccessDenied, err)
	case errors.Is(err, zip.ErrFormat), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return core.NewEngineError(core.EngineIO, err)
	case errors.Is(err, excelize.ErrWorkbookFileFormat):
		return core.NewEngineError(core.EngineDriverMissing, err)
	default:
		return core.NewEngineError(core.EngineUnclassified, err)
	}
}
