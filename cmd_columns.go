package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andareed/siftly-grid/logging"
	"github.com/andareed/siftly-grid/tablectl"
	tea "github.com/charmbracelet/bubbletea"
)

// onColumnVisibilityChanged is subscribed to the controller; every visibility
// call lands here, repeated ones included.
func (m *model) onColumnVisibilityChanged(ev tablectl.ColumnVisibilityChanged) {
	logging.Debugf("column %d visible=%v", ev.Index, ev.Visible)
	m.relayoutColumns()
	if !ev.Visible && ev.Index == m.ui.focusCol {
		m.moveFocus(1)
	}
	if m.loading {
		return
	}
	col, err := m.table.Column(ev.Index)
	if err != nil {
		return
	}
	state := "hidden"
	if ev.Visible {
		state = "shown"
	}
	m.setNotice(fmt.Sprintf("Column %q %s", col.Label, state), noticeInfo)
	m.refreshView("column-visibility", true)
}

// moveFocus steps the header focus to the next visible column in direction
// delta. Focus stays put when no other column is visible.
func (m *model) moveFocus(delta int) {
	cols := m.table.Columns()
	n := len(cols)
	if n == 0 {
		return
	}
	i := m.ui.focusCol
	for step := 0; step < n; step++ {
		i = (i + delta + n) % n
		if cols[i].Visible {
			m.ui.focusCol = i
			return
		}
	}
}

func (m *model) hideFocusedColumn() tea.Cmd {
	if len(m.table.VisibleColumns()) <= 1 {
		return m.startNotice("Cannot hide the last visible column", noticeWarn, noticeDuration)
	}
	if err := m.table.SetColumnVisible(m.ui.focusCol, false); err != nil {
		return m.startNotice(err.Error(), noticeError, noticeDuration)
	}
	return nil
}

func (m *model) setColumnVisibleByLabel(label string, visible bool) tea.Cmd {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	if !visible {
		if idx, err := m.table.IndexOfLabel(label); err == nil {
			col, _ := m.table.Column(idx)
			if col.Visible && len(m.table.VisibleColumns()) <= 1 {
				return m.startNotice("Cannot hide the last visible column", noticeWarn, noticeDuration)
			}
		}
	}
	err := m.table.ToggleColumnByLabel(label, visible)
	var unknown *tablectl.UnknownColumnError
	switch {
	case errors.As(err, &unknown):
		return m.startNotice(unknown.Error(), noticeWarn, noticeDuration)
	case err != nil:
		return m.startNotice(err.Error(), noticeError, noticeDuration)
	}
	return nil
}

// cycleSortFocused walks the focused column through ascending, descending and
// unsorted, keeping the cursor on the same row.
func (m *model) cycleSortFocused() tea.Cmd {
	st := m.table.SortState()
	col, err := m.table.Column(m.ui.focusCol)
	if err != nil {
		return nil
	}

	var msg string
	switch {
	case st.Column == col.Index && st.Ascending:
		_, err = m.table.SortRows(col.Index, false)
		msg = fmt.Sprintf("Sorted by %s ▼", col.Label)
	case st.Column == col.Index:
		m.table.ClearSort()
		msg = "Sort cleared"
	default:
		_, err = m.table.SortRows(col.Index, true)
		msg = fmt.Sprintf("Sorted by %s ▲", col.Label)
	}
	if err != nil {
		return m.startNotice(err.Error(), noticeError, noticeDuration)
	}
	m.applyFilter()
	return m.startNotice(msg, noticeInfo, noticeDuration)
}

func (m *model) clearSort() tea.Cmd {
	if m.table.SortState().Column < 0 {
		return nil
	}
	m.table.ClearSort()
	m.applyFilter()
	return m.startNotice("Sort cleared", noticeInfo, noticeDuration)
}
