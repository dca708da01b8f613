package ingest

import (
	"github.com/PlumpMath/ExcelToDataSetReader/domain/dataset"
)

// SheetRange is one sheet's rectangular used range as the external engine
// reports it: a row-major matrix of weakly-typed values, or a single scalar
// when the used range degrades to one cell.
type SheetRange struct {
	// Scalar is set when the used range is a single cell.
	Scalar *dataset.Cell
	// Cells is the row-major matrix for rectangular ranges.
	Cells [][]dataset.Cell
}

// ScalarRange builds a single-cell range.
func ScalarRange(c dataset.Cell) SheetRange {
	return SheetRange{Scalar: &c}
}

// MatrixRange builds a rectangular range.
func MatrixRange(cells [][]dataset.Cell) SheetRange {
	return SheetRange{Cells: cells}
}

// FlattenSheet converts one sheet's used range into a table named after the
// sheet. Columns carry namer-generated names so spreadsheet tables stay
// column-name-compatible with delimited-text tables.
//
// For matrix ranges the last reported row and column are dropped. That
// reproduces the engine-facing boundary behavior observed in production
// (possibly compensation for a one-cell range-reporting quirk); it is pinned
// by a dimensions test and must not be changed without product sign-off.
func FlattenSheet(name string, rng SheetRange) dataset.Table {
	table := dataset.NewTable(name)

	if rng.Scalar != nil {
		table.AppendColumn(ColumnName(0))
		table.AppendRow([]dataset.Cell{*rng.Scalar})
		return *table
	}

	height := len(rng.Cells)
	width := 0
	if height > 0 {
		width = len(rng.Cells[0])
	}

	for c := 0; c < width-1; c++ {
		table.AppendColumn(ColumnName(c))
	}
	for r := 0; r < height-1; r++ {
		row := make([]dataset.Cell, 0, width-1)
		for c := 0; c < width-1 && c < len(rng.Cells[r]); c++ {
			row = append(row, rng.Cells[r][c])
		}
		table.AppendRow(row)
	}
	return *table
}
