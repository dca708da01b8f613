package ports

import (
	"context"

	"github.com/PlumpMath/ExcelToDataSetReader/domain/ingest"
)

// WorkbookSession is one opened workbook held by the external spreadsheet
// engine. The core calls it in a fixed order: enumerate visible sheets, fetch
// the used range per sheet, close. A session is not safe for concurrent use;
// callers serialize access or hold one session per goroutine. Close must be
// reached on every exit path of the ingestion that owns the session.
type WorkbookSession interface {
	// VisibleSheetNames lists, in workbook order, only the sheets whose
	// visibility flag shows them to a user. Hidden sheets never appear.
	VisibleSheetNames() ([]string, error)

	// UsedRange fetches the minimal rectangular region containing any
	// content on the named sheet, as a row-major matrix of weakly-typed
	// values, or a single scalar for one-cell ranges.
	UsedRange(sheet string) (ingest.SheetRange, error)

	// Close releases the engine resources backing this session.
	Close() error
}

// WorkbookOpener creates engine sessions from raw workbook bytes. Failures
// carry a core.EngineError classifying the engine fault.
type WorkbookOpener interface {
	Open(ctx context.Context, data []byte) (WorkbookSession, error)
}
