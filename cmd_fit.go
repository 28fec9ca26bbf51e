package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andareed/siftly-grid/logging"
	"github.com/andareed/siftly-grid/tablectl"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// contentWidth is the widest of the header label and the column's cells in
// the current view, padding included.
func (m *model) contentWidth(col tablectl.Column) int {
	w := lipgloss.Width(col.Label)
	if m.table.SortState().Column == col.Index {
		w += lipgloss.Width(sortAscIndicator)
	}
	for _, id := range m.data.filtered {
		w = max(w, lipgloss.Width(flattenCell(m.table.Cell(id, col.Index))))
	}
	return w + cellStyle.GetHorizontalPadding()
}

// fitColumn pins a column to its content width. The width is taken once;
// later filtering does not change it.
func (m *model) fitColumn(col tablectl.Column) {
	m.cols[col.Index].Fit = m.contentWidth(col)
	logging.Debugf("fit column %d (%s) to %d", col.Index, col.Label, m.cols[col.Index].Fit)
}

func (m *model) fitFocusedColumn() tea.Cmd {
	col, err := m.table.Column(m.ui.focusCol)
	if err != nil || !col.Visible {
		return nil
	}
	m.fitColumn(col)
	m.refreshView("fit-column", true)
	return m.startNotice(fmt.Sprintf("Column %q fitted to contents", col.Label), noticeInfo, noticeDuration)
}

func (m *model) fitAllColumns() tea.Cmd {
	cols := m.table.VisibleColumns()
	for _, col := range cols {
		m.fitColumn(col)
	}
	m.refreshView("fit-all", true)
	return m.startNotice(fmt.Sprintf("%d columns fitted to contents", len(cols)), noticeInfo, noticeDuration)
}

// resetColumnFits returns every column to the weighted layout.
func (m *model) resetColumnFits() tea.Cmd {
	for i := range m.cols {
		m.cols[i].Fit = 0
	}
	m.refreshView("fit-reset", true)
	return m.startNotice("Column widths reset", noticeInfo, noticeDuration)
}

func (m *model) fitColumnByLabel(label string) tea.Cmd {
	idx, err := m.table.IndexOfLabel(label)
	var unknown *tablectl.UnknownColumnError
	switch {
	case errors.As(err, &unknown):
		return m.startNotice(unknown.Error(), noticeWarn, noticeDuration)
	case err != nil:
		return m.startNotice(err.Error(), noticeError, noticeDuration)
	}
	col, _ := m.table.Column(idx)
	if !col.Visible {
		return m.startNotice(fmt.Sprintf("Column %q is hidden", col.Label), noticeWarn, noticeDuration)
	}
	m.fitColumn(col)
	m.refreshView("fit-column", true)
	return m.startNotice(fmt.Sprintf("Column %q fitted to contents", col.Label), noticeInfo, noticeDuration)
}

// runFitCommand handles ":fit", ":fit <column>" and ":fit off".
func (m *model) runFitCommand(arg string) tea.Cmd {
	switch arg = strings.TrimSpace(arg); arg {
	case "":
		return m.fitAllColumns()
	case "off":
		return m.resetColumnFits()
	default:
		return m.fitColumnByLabel(arg)
	}
}
