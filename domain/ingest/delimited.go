package ingest

import (
	"strings"

	"github.com/PlumpMath/ExcelToDataSetReader/domain/dataset"
)

// DefaultTableName names the single table a delimited-text ingestion yields.
const DefaultTableName = "Table1"

// ParseDelimited normalizes raw delimited-text bytes into a one-table
// dataset. The encoding is resolved from the byte-order mark, the separator
// detected over all non-empty lines, and each line tokenized with the
// quote-aware scanner. The first line sizes the schema; every later line
// becomes a row, and a row wider than the current schema grows it with
// namer-generated columns. Parsing never fails.
func ParseDelimited(data []byte) dataset.Dataset {
	enc := ResolveEncoding(data)
	text := enc.Decode(data)
	lines := splitLines(text)

	table := dataset.NewTable(DefaultTableName)
	if len(lines) > 0 {
		sep := DetectSeparator(lines, DefaultSeparators, FallbackSeparator)
		for i, line := range lines {
			values := TokenizeLine(line, sep)
			for c := len(table.Columns); c < len(values); c++ {
				table.AppendColumn(ColumnName(c))
			}
			if i == 0 {
				// The first line only establishes the schema.
				continue
			}
			cells := make([]dataset.Cell, len(values))
			for j, v := range values {
				cells[j] = cellFromField(v)
			}
			table.AppendRow(cells)
		}
	}

	var ds dataset.Dataset
	// The dataset holds exactly one freshly named table; AddTable cannot
	// reject it.
	_ = ds.AddTable(*table)
	return ds
}

// cellFromField maps one tokenized field to a cell: empty fields are null,
// everything else stays text. Type resolution beyond that belongs to the
// spreadsheet engine path.
func cellFromField(v string) dataset.Cell {
	if v == "" {
		return dataset.Cell{}
	}
	return dataset.TextCell(v)
}

// splitLines breaks decoded text into non-empty lines, accepting both CRLF
// and LF terminators.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
