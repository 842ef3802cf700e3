package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Table is a parsed source table: one header row plus string cells, with
// column and row order preserved.
type Table struct {
	Headers []string
	Rows    [][]string
}

// readTable parses a CSV file. A missing or empty header row is the one
// terminal error in the pipeline: with no headers there is nothing to map.
// Short data rows are padded; rows wider than the header keep their extra
// cells under synthesized unnamed_N headers so no input data is dropped.
func readTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("parse csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("csv %s: missing header row", path)
	}
	headers := records[0]
	empty := true
	for _, h := range headers {
		if strings.TrimSpace(h) != "" {
			empty = false
			break
		}
	}
	if empty {
		return Table{}, fmt.Errorf("csv %s: header row is empty", path)
	}

	width := len(headers)
	for _, rec := range records[1:] {
		if len(rec) > width {
			width = len(rec)
		}
	}
	if width > len(headers) {
		log.Printf("csv %s: %d column(s) beyond the header row, keeping under synthesized names", path, width-len(headers))
		for i := len(headers); i < width; i++ {
			headers = append(headers, fmt.Sprintf("unnamed_%d", i+1))
		}
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, width)
		copy(row, rec)
		rows = append(rows, row)
	}
	return Table{Headers: headers, Rows: rows}, nil
}

// Columns pivots the row-oriented table into per-column value sequences.
func (t Table) Columns() []InputColumn {
	cols := make([]InputColumn, len(t.Headers))
	for i, h := range t.Headers {
		values := make([]string, len(t.Rows))
		for j, row := range t.Rows {
			values[j] = row[i]
		}
		cols[i] = InputColumn{Index: i, Header: h, Values: values}
	}
	return cols
}

// writeTable writes the canonical table as CSV. Nulls become empty cells.
func writeTable(path string, out OutputTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, len(out.Columns))
	for i, col := range out.Columns {
		header[i] = col.Name()
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rows := out.RowCount()
	record := make([]string, len(out.Columns))
	for i := 0; i < rows; i++ {
		for j, col := range out.Columns {
			record[j] = formatValue(col.Values[i])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

// formatValue renders a canonical value as a CSV cell. Formats round-trip
// through the normalizer: dates use the first entry of the parse list,
// floats drop trailing zeros.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
