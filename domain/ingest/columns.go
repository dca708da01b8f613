package ingest

// ColumnName converts a zero-based column index to the spreadsheet-style
// letter name: A, B, ..., Z, AA, AB, ... This is bijective base-26 (there is
// no symbol for zero), so digit positions beyond the first are offset by one
// before each reduction step. Pure and stable; both ingestion paths use it so
// their tables stay column-name-compatible.
func ColumnName(index int) string {
	name := ""
	index++
	for index > 0 {
		index--
		name = string(rune('A'+index%26)) + name
		index /= 26
	}
	return name
}
