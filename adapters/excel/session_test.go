package excel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/PlumpMath/ExcelToDataSetReader/app"
	"github.com/PlumpMath/ExcelToDataSetReader/domain/core"
	"github.com/PlumpMath/ExcelToDataSetReader/domain/dataset"
)

// buildWorkbook creates an in-memory xlsx with the given sheet cell values
// keyed by cell reference, hiding the named sheets.
func buildWorkbook(t *testing.T, sheets map[string]map[string]interface{}, hidden ...string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, cells := range sheets {
		if first && name != "Sheet1" {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		}
		if !first {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		first = false
		for ref, value := range cells {
			require.NoError(t, f.SetCellValue(name, ref, value))
		}
	}
	for _, name := range hidden {
		require.NoError(t, f.SetSheetVisible(name, false))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestOpenRejectsGarbage(t *testing.T) {
	opener := NewOpener()
	_, err := opener.Open(context.Background(), []byte("not a workbook"))
	require.Error(t, err)
	assert.True(t, core.IsEngineError(err))
}

func TestVisibleSheetNamesSkipsHiddenSheets(t *testing.T) {
	data := buildWorkbook(t, map[string]map[string]interface{}{
		"Visible": {"A1": "x"},
		"Secret":  {"A1": "y"},
	}, "Secret")

	opener := NewOpener()
	session, err := opener.Open(context.Background(), data)
	require.NoError(t, err)
	defer session.Close()

	names, err := session.VisibleSheetNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Visible"}, names)
}

func TestUsedRangeTypesCells(t *testing.T) {
	data := buildWorkbook(t, map[string]map[string]interface{}{
		"Sheet1": {
			"A1": "name", "B1": "qty",
			"A2": "widget", "B2": 2,
			"A3": "gadget", "B3": 3.5,
		},
	})

	opener := NewOpener()
	session, err := opener.Open(context.Background(), data)
	require.NoError(t, err)
	defer session.Close()

	rng, err := session.UsedRange("Sheet1")
	require.NoError(t, err)
	require.Nil(t, rng.Scalar)
	require.Len(t, rng.Cells, 3)

	assert.Equal(t, dataset.TextCell("name"), rng.Cells[0][0])
	assert.Equal(t, dataset.CellNumber, rng.Cells[1][1].Kind)
	assert.Equal(t, 2.0, rng.Cells[1][1].Number)
	assert.Equal(t, 3.5, rng.Cells[2][1].Number)
}

func TestUsedRangeSingleCellIsScalar(t *testing.T) {
	data := buildWorkbook(t, map[string]map[string]interface{}{
		"Sheet1": {"A1": "lonely"},
	})

	opener := NewOpener()
	session, err := opener.Open(context.Background(), data)
	require.NoError(t, err)
	defer session.Close()

	rng, err := session.UsedRange("Sheet1")
	require.NoError(t, err)
	require.NotNil(t, rng.Scalar)
	assert.Equal(t, "lonely", rng.Scalar.Text)
}

// End to end through the real adapter: a workbook with one hidden and one
// visible sheet yields a dataset with exactly the visible sheet's table.
func TestWorkbookIngestionSkipsHiddenSheets(t *testing.T) {
	data := buildWorkbook(t, map[string]map[string]interface{}{
		"Public": {
			"A1": "h1", "B1": "h2", "C1": "h3",
			"A2": 1, "B2": 2, "C2": 3,
			"A3": 4, "B3": 5, "C3": 6,
		},
		"Hidden": {"A1": "secret"},
	}, "Hidden")

	service := app.NewIngestService(NewOpener())
	ds, err := service.IngestWorkbook(context.Background(), data)

	require.NoError(t, err)
	require.Equal(t, []string{"Public"}, ds.TableNames())

	// The 3x3 used range flattens to 2x2 under the pinned boundary.
	table, _ := ds.Table("Public")
	assert.Equal(t, []string{"A", "B"}, table.ColumnNames())
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "h1", table.Cell(0, 0).Text)
	assert.Equal(t, 2.0, table.Cell(1, 1).Number)
}
