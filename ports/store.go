package ports

import (
	"context"
	"time"

	"github.com/PlumpMath/ExcelToDataSetReader/domain/core"
	"github.com/PlumpMath/ExcelToDataSetReader/domain/dataset"
)

// DatasetRecord is a persisted ingestion result plus its provenance.
type DatasetRecord struct {
	ID        core.ID         `json:"id"`
	Name      string          `json:"name"`
	Source    string          `json:"source"` // "delimited" or "workbook"
	Data      dataset.Dataset `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// DatasetStore persists ingested datasets for later retrieval and selection.
type DatasetStore interface {
	Save(ctx context.Context, rec *DatasetRecord) error
	GetByID(ctx context.Context, id core.ID) (*DatasetRecord, error)
	List(ctx context.Context, limit, offset int) ([]*DatasetRecord, error)
	Delete(ctx context.Context, id core.ID) error
}
