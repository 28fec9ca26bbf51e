package main

import (
	"strings"

	"github.com/andareed/siftly-grid/tablectl"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const cellTail = "…"

func flattenCell(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	return strings.ReplaceAll(text, "\n", " ")
}

// fitCell flattens text to one line no wider than w cells.
func fitCell(text string, w int) string {
	if w <= 0 {
		return ""
	}
	return truncate.StringWithTail(flattenCell(text), uint(w), cellTail)
}

// renderCells lays out the visible cells of one row. decorate, when set,
// runs on each cell after it has been fitted.
func renderCells(style lipgloss.Style, cells []string, cols []tablectl.Column, metas []ColumnMeta, decorate func(string) string) string {
	pad := style.GetHorizontalPadding()
	var rendered []string
	for _, c := range cols {
		meta := metas[c.Index]
		if !c.Visible || meta.Width <= 0 {
			// Skip hidden / zero-width columns completely
			continue
		}
		text := ""
		if c.Index < len(cells) {
			text = cells[c.Index]
		}
		text = fitCell(text, meta.Width-pad)
		if decorate != nil {
			text = decorate(text)
		}
		rendered = append(rendered, style.Width(meta.Width).MaxHeight(1).Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
