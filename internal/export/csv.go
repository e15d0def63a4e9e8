// Package export serializes assembled records to CSV and XLSX and bundles a
// batch's outputs into a single ZIP archive.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Record is the minimal shape export needs; assemble.OutputRecord satisfies
// it structurally.
type Record = map[string]any

// WriteCSV writes records as CSV in schema column order, header row first.
func WriteCSV(w io.Writer, columns []string, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = formatCell(rec[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', 2, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
