// Package profile computes summary statistics over ingested tables: per-column
// kind counts and missing rates, numeric distribution summaries, and pairwise
// correlations between numeric columns.
package profile

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/PlumpMath/ExcelToDataSetReader/domain/dataset"
)

// ColumnProfile summarizes one column.
type ColumnProfile struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"` // "numeric", "text" or "empty"
	NonEmpty    int     `json:"non_empty"`
	Missing     int     `json:"missing"`
	MissingRate float64 `json:"missing_rate"`

	// Numeric columns only
	Min    float64 `json:"min,omitempty"`
	Max    float64 `json:"max,omitempty"`
	Mean   float64 `json:"mean,omitempty"`
	Median float64 `json:"median,omitempty"`
	StdDev float64 `json:"std_dev,omitempty"`
}

// Correlation is the Pearson correlation between two numeric columns over
// their pairwise-complete observations.
type Correlation struct {
	X string  `json:"x"`
	Y string  `json:"y"`
	R float64 `json:"r"`
	N int     `json:"n"`
}

// TableProfile summarizes one table.
type TableProfile struct {
	Table        string          `json:"table"`
	RowCount     int             `json:"row_count"`
	ColumnCount  int             `json:"column_count"`
	Columns      []ColumnProfile `json:"columns"`
	Correlations []Correlation   `json:"correlations,omitempty"`
}

// ProfileDataset profiles every table of a dataset in order.
func ProfileDataset(ds *dataset.Dataset) []TableProfile {
	profiles := make([]TableProfile, 0, len(ds.Tables))
	for i := range ds.Tables {
		profiles = append(profiles, ProfileTable(&ds.Tables[i]))
	}
	return profiles
}

// ProfileTable profiles a single table. Short rows count as missing in their
// unfilled trailing columns, matching how the table model reads them.
func ProfileTable(t *dataset.Table) TableProfile {
	profile := TableProfile{
		Table:       t.Name,
		RowCount:    len(t.Rows),
		ColumnCount: len(t.Columns),
	}

	numericValues := make(map[int][]float64)
	for c, col := range t.Columns {
		cp := ColumnProfile{Name: col.Name}
		numberCount := 0
		var numbers []float64

		for r := range t.Rows {
			cell := t.Cell(r, c)
			if cell.IsEmpty() {
				cp.Missing++
				continue
			}
			cp.NonEmpty++
			if cell.Kind == dataset.CellNumber {
				numberCount++
				numbers = append(numbers, cell.Number)
			}
		}

		if len(t.Rows) > 0 {
			cp.MissingRate = float64(cp.Missing) / float64(len(t.Rows))
		}
		cp.Kind = columnKind(cp.NonEmpty, numberCount)

		if cp.Kind == "numeric" {
			fillNumericSummary(&cp, numbers)
			numericValues[c] = numbers
		}
		profile.Columns = append(profile.Columns, cp)
	}

	profile.Correlations = correlations(t, numericValues)
	return profile
}

// columnKind classifies a column from its value mix: numeric when every
// non-empty value is a number, empty when nothing is filled at all.
func columnKind(nonEmpty, numberCount int) string {
	switch {
	case nonEmpty == 0:
		return "empty"
	case numberCount == nonEmpty:
		return "numeric"
	default:
		return "text"
	}
}

func fillNumericSummary(cp *ColumnProfile, numbers []float64) {
	if len(numbers) == 0 {
		return
	}
	// The stats helpers only fail on empty input, which is guarded above.
	cp.Min, _ = stats.Min(numbers)
	cp.Max, _ = stats.Max(numbers)
	cp.Mean, _ = stats.Mean(numbers)
	cp.Median, _ = stats.Median(numbers)
	cp.StdDev, _ = stats.StandardDeviation(numbers)
}

// correlations computes Pearson r for every pair of numeric columns using
// rows where both cells hold numbers.
func correlations(t *dataset.Table, numeric map[int][]float64) []Correlation {
	var cols []int
	for c := range t.Columns {
		if _, ok := numeric[c]; ok {
			cols = append(cols, c)
		}
	}

	var out []Correlation
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			x, y := pairwiseComplete(t, cols[i], cols[j])
			if len(x) < 2 {
				continue
			}
			out = append(out, Correlation{
				X: t.Columns[cols[i]].Name,
				Y: t.Columns[cols[j]].Name,
				R: stat.Correlation(x, y, nil),
				N: len(x),
			})
		}
	}
	return out
}

func pairwiseComplete(t *dataset.Table, a, b int) ([]float64, []float64) {
	var x, y []float64
	for r := range t.Rows {
		ca, cb := t.Cell(r, a), t.Cell(r, b)
		if ca.Kind == dataset.CellNumber && cb.Kind == dataset.CellNumber {
			x = append(x, ca.Number)
			y = append(y, cb.Number)
		}
	}
	return x, y
}
