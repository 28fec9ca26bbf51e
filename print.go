package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// printView renders the current view as a plain text table, for --print.
func printView(w io.Writer, m *model) error {
	cols := m.table.VisibleColumns()
	header := make([]string, 0, len(cols))
	for _, col := range cols {
		header = append(header, col.Label)
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	for _, id := range m.data.filtered {
		row, ok := m.table.Row(id)
		if !ok {
			return fmt.Errorf("row %d vanished during print", id)
		}
		out := make([]string, 0, len(cols))
		for _, col := range cols {
			out = append(out, row.Cells[col.Index])
		}
		tw.Append(out)
	}
	tw.Render()

	_, err := fmt.Fprintf(w, "%d rows · %s\n", len(m.data.filtered), m.dateRangeStatusLabel())
	return err
}
