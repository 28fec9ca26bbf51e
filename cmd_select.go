package main

import (
	"fmt"

	"github.com/andareed/siftly-grid/logging"
	"github.com/andareed/siftly-grid/tablectl"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) toggleSelectCurrent() tea.Cmd {
	id, ok := m.cursorRowID()
	if !ok {
		return nil
	}
	on, err := m.table.ToggleSelected(id)
	if err != nil {
		logging.Errorf("toggle selection on row %d: %v", id, err)
		return m.startNotice(err.Error(), noticeError, noticeDuration)
	}
	logging.Debugf("Cursor: %d with row id %d selected=%v", m.cursor, id, on)
	if on && m.cursor < len(m.data.filtered)-1 {
		m.cursor++
	}
	return nil
}

func (m *model) selectAllFiltered() tea.Cmd {
	if err := m.table.SelectAll(m.data.filtered); err != nil {
		logging.Errorf("select all: %v", err)
		return m.startNotice(err.Error(), noticeError, noticeDuration)
	}
	return m.startNotice(fmt.Sprintf("%d rows selected", m.table.SelectionCount()), noticeInfo, noticeDuration)
}

func (m *model) clearSelection() tea.Cmd {
	if m.table.SelectionCount() == 0 {
		return nil
	}
	m.table.ClearSelection()
	return m.startNotice("Selection cleared", noticeInfo, noticeDuration)
}

// selectedInView lists selected rows in the order they are displayed.
// Selected rows hidden by the current filters are left out.
func (m *model) selectedInView() []tablectl.RowID {
	var ids []tablectl.RowID
	for _, id := range m.data.filtered {
		if m.table.IsSelected(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (m *model) jumpToNextSelected() {
	if !m.checkViewPortHasData() {
		return
	}
	for i := m.cursor + 1; i < len(m.data.filtered); i++ {
		if m.table.IsSelected(m.data.filtered[i]) {
			logging.Debugf("Next selected row found at %d", i)
			m.cursor = i
			return
		}
	}
	logging.Debug("No next selected row")
}

func (m *model) jumpToPreviousSelected() {
	if !m.checkViewPortHasData() {
		return
	}
	for i := m.cursor - 1; i >= 0; i-- {
		if m.table.IsSelected(m.data.filtered[i]) {
			logging.Debugf("Previous selected row found at %d", i)
			m.cursor = i
			return
		}
	}
	logging.Debug("No previous selected row")
}
