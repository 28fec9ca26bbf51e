package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ExportView writes the rows in the current view to a CSV file: visible
// columns only, in display order, with the source line number first.
func ExportView(m *model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	if err := writeViewCSV(m, f); err != nil {
		return err
	}
	return f.Close()
}

func writeViewCSV(m *model, dst io.Writer) error {
	w := csv.NewWriter(dst)

	cols := m.table.VisibleColumns()
	header := make([]string, 0, len(cols)+1)
	header = append(header, "Line")
	for _, col := range cols {
		header = append(header, col.Label)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, id := range m.data.filtered {
		row, ok := m.table.Row(id)
		if !ok {
			return fmt.Errorf("row %d vanished during export", id)
		}
		line, _ := row.Tag.(int)
		out := make([]string, 0, len(cols)+1)
		out = append(out, fmt.Sprint(line))
		for _, col := range cols {
			out = append(out, row.Cells[col.Index])
		}
		if err := w.Write(out); err != nil {
			return fmt.Errorf("write row %d: %w", line, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
