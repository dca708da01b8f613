// Package dataset holds the generic in-memory table model both ingestion
// paths normalize into: named tables of weakly-typed columns and rows.
package dataset

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/PlumpMath/ExcelToDataSetReader/domain/core"
)

// CellKind discriminates the closed value union a cell may hold.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is a weakly-typed cell value: text, number, or empty/null.
// The zero value is the empty cell.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell builds a text cell.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// NumberCell builds a numeric cell.
func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String renders the cell the way the engine displayed it: empty cells as "",
// numbers in their shortest round-trip form.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON encodes empty cells as null, text as string, number as number.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellText:
		return json.Marshal(c.Text)
	case CellNumber:
		return json.Marshal(c.Number)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON restores a cell from its null/string/number encoding.
func (c *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Cell{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = TextCell(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = NumberCell(n)
		return nil
	}
	return fmt.Errorf("cell must be null, string or number, got %s", data)
}

// Column describes one table column. Names are generated by the column namer
// or supplied by the caller; the value domain is always the Cell union.
type Column struct {
	Name string `json:"name"`
}

// Row is an ordered sequence of cells aligned positionally to the table's
// columns. A row may hold fewer cells than the table has columns; the missing
// trailing positions read as empty cells.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Table is a named ordered sequence of columns plus ordered rows. During
// construction the column count only ever grows; assembled tables are treated
// as immutable values.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// AppendColumn grows the schema by one named column.
func (t *Table) AppendColumn(name string) {
	t.Columns = append(t.Columns, Column{Name: name})
}

// AppendRow appends a row in source order. Rows shorter than the schema are
// legal and deliberate.
func (t *Table) AppendRow(cells []Cell) {
	t.Rows = append(t.Rows, Row{Cells: cells})
}

// Cell returns the value at (row, col), reading unfilled trailing positions of
// short rows as the empty cell. Out-of-range coordinates also read empty.
func (t *Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Columns) {
		return Cell{}
	}
	cells := t.Rows[row].Cells
	if col >= len(cells) {
		return Cell{}
	}
	return cells[col]
}

// ColumnNames lists the schema's column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() Table {
	out := Table{Name: t.Name}
	out.Columns = append([]Column(nil), t.Columns...)
	out.Rows = make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		out.Rows[i] = Row{Cells: append([]Cell(nil), r.Cells...)}
	}
	return out
}

// Dataset is a named, ordered collection of tables. Table names are unique;
// insertion order is the only defined iteration order.
type Dataset struct {
	Tables []Table `json:"tables"`
}

// AddTable appends a table, rejecting duplicate names.
func (d *Dataset) AddTable(t Table) error {
	if _, ok := d.Table(t.Name); ok {
		return fmt.Errorf("%w: %s", core.ErrDuplicateTable, t.Name)
	}
	d.Tables = append(d.Tables, t)
	return nil
}

// Table looks a table up by exact name.
func (d *Dataset) Table(name string) (*Table, bool) {
	for i := range d.Tables {
		if d.Tables[i].Name == name {
			return &d.Tables[i], true
		}
	}
	return nil, false
}

// TableNames lists table names in insertion order.
func (d *Dataset) TableNames() []string {
	names := make([]string, len(d.Tables))
	for i := range d.Tables {
		names[i] = d.Tables[i].Name
	}
	return names
}
