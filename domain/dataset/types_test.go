package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PlumpMath/ExcelToDataSetReader/domain/core"
)

func TestCellConstructors(t *testing.T) {
	assert.True(t, Cell{}.IsEmpty())
	assert.Equal(t, "x", TextCell("x").Text)
	assert.Equal(t, 2.5, NumberCell(2.5).Number)
	assert.False(t, TextCell("").IsEmpty(), "an explicit empty text cell is still text")
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", Cell{}.String())
	assert.Equal(t, "hi", TextCell("hi").String())
	assert.Equal(t, "1.5", NumberCell(1.5).String())
	assert.Equal(t, "3", NumberCell(3).String())
}

func TestCellJSONRoundTrip(t *testing.T) {
	row := Row{Cells: []Cell{TextCell("x"), NumberCell(1.5), {}}}
	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cells":["x",1.5,null]}`, string(data))

	var back Row
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, row, back)
}

func TestTableShortRowsReadEmpty(t *testing.T) {
	table := NewTable("t")
	table.AppendColumn("A")
	table.AppendColumn("B")
	table.AppendColumn("C")
	table.AppendRow([]Cell{TextCell("only")})

	assert.Equal(t, "only", table.Cell(0, 0).Text)
	assert.True(t, table.Cell(0, 1).IsEmpty())
	assert.True(t, table.Cell(0, 2).IsEmpty())
	// Out-of-range coordinates also read empty.
	assert.True(t, table.Cell(5, 0).IsEmpty())
	assert.True(t, table.Cell(0, -1).IsEmpty())
}

func TestDatasetRejectsDuplicateTableNames(t *testing.T) {
	var ds Dataset
	require.NoError(t, ds.AddTable(Table{Name: "Sheet1"}))
	err := ds.AddTable(Table{Name: "Sheet1"})
	assert.ErrorIs(t, err, core.ErrDuplicateTable)
	assert.Len(t, ds.Tables, 1)
}

func TestDatasetPreservesInsertionOrder(t *testing.T) {
	var ds Dataset
	for _, name := range []string{"z", "a", "m"} {
		require.NoError(t, ds.AddTable(Table{Name: name}))
	}
	assert.Equal(t, []string{"z", "a", "m"}, ds.TableNames())
}
