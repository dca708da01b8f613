package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PlumpMath/ExcelToDataSetReader/internal/errors"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DATABASE_URL", "MAX_UPLOAD_BYTES", "BATCH_CONCURRENCY"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, int64(64<<20), cfg.Ingest.MaxUploadBytes)
	assert.Equal(t, 4, cfg.Ingest.BatchConcurrency)
}

func TestLoadReadsEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/datasets")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("BATCH_CONCURRENCY", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/datasets", cfg.Database.URL)
	assert.Equal(t, int64(1<<20), cfg.Ingest.MaxUploadBytes)
	assert.Equal(t, 8, cfg.Ingest.BatchConcurrency)
}

func TestLoadRejectsBadConcurrency(t *testing.T) {
	clearConfigEnv(t)

	t.Setenv("BATCH_CONCURRENCY", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	t.Setenv("BATCH_CONCURRENCY", "not-a-number")
	_, err = Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadRejectsBadUploadLimit(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MAX_UPLOAD_BYTES", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
