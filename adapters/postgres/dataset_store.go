package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/PlumpMath/ExcelToDataSetReader/domain/core"
	"github.com/PlumpMath/ExcelToDataSetReader/ports"
)

// datasetStore implements the DatasetStore interface
type datasetStore struct {
	db *sqlx.DB
}

// NewDatasetStore creates a new dataset store
func NewDatasetStore(db *sqlx.DB) ports.DatasetStore {
	return &datasetStore{db: db}
}

// EnsureSchema creates the datasets table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS datasets (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		source     TEXT NOT NULL,
		data       JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create datasets schema: %w", err)
	}
	return nil
}

// Save inserts an ingested dataset with its tables marshaled as JSON
func (s *datasetStore) Save(ctx context.Context, rec *ports.DatasetRecord) error {
	dataJSON, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	query := `INSERT INTO datasets (id, name, source, data, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = s.db.ExecContext(ctx, query,
		rec.ID, rec.Name, rec.Source, dataJSON, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}
	return nil
}

// GetByID retrieves a dataset record by its ID
func (s *datasetStore) GetByID(ctx context.Context, id core.ID) (*ports.DatasetRecord, error) {
	query := `SELECT id, name, source, data, created_at
		FROM datasets WHERE id = $1`

	var rec ports.DatasetRecord
	var dataJSON []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.Name, &rec.Source, &dataJSON, &rec.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("dataset", id.String())
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	if err := json.Unmarshal(dataJSON, &rec.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}
	return &rec, nil
}

// List retrieves dataset records newest first
func (s *datasetStore) List(ctx context.Context, limit, offset int) ([]*ports.DatasetRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, name, source, data, created_at
		FROM datasets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var records []*ports.DatasetRecord
	for rows.Next() {
		var rec ports.DatasetRecord
		var dataJSON []byte
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Source, &dataJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		if err := json.Unmarshal(dataJSON, &rec.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Delete removes a dataset record
func (s *datasetStore) Delete(ctx context.Context, id core.ID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return core.NewNotFoundError("dataset", id.String())
	}
	return nil
}
