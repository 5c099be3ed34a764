package reports

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Table is one rendered report result: named columns plus string cells,
// ready for CSV output. Absent values (e.g. "no invoice yet") render as
// empty cells, never as zero.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// WriteCSV writes the table with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header for %s: %w", t.Name, err)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("table %s row %d has %d cells, want %d", t.Name, i, len(row), len(t.Columns))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d for %s: %w", i, t.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
