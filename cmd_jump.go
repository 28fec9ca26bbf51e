package main

import (
	"fmt"

	"github.com/andareed/siftly-grid/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) checkViewPortHasData() bool {
	return len(m.data.filtered) > 0 && m.cursor >= 0
}

func (m *model) jumpToStart() {
	logging.Debug("jumpToStart called")
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = 0
}

func (m *model) jumpToEnd() {
	logging.Debug("jumpToEnd called")
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = len(m.data.filtered) - 1
}

// jumpToLine moves to the row read from source line lineNo (header excluded).
func (m *model) jumpToLine(lineNo int) tea.Cmd {
	logging.Debugf("jumpToLine %d", lineNo)
	if !m.checkViewPortHasData() {
		return nil
	}
	if lineNo <= 0 || lineNo > m.data.lastLine {
		return m.startNotice(fmt.Sprintf("Line %d out of bounds", lineNo), noticeWarn, noticeDuration)
	}
	for i, id := range m.data.filtered {
		row, ok := m.table.Row(id)
		if ok && row.Tag == lineNo {
			m.cursor = i
			return nil
		}
	}
	return m.startNotice(fmt.Sprintf("Line %d not in current view", lineNo), noticeWarn, noticeDuration)
}

func (m *model) pageDown() {
	if !m.checkViewPortHasData() {
		return
	}
	step := max(m.lastVisibleRowCount, 1)
	m.cursor = min(m.cursor+step, len(m.data.filtered)-1)
}

func (m *model) pageUp() {
	if !m.checkViewPortHasData() {
		return
	}
	step := max(m.lastVisibleRowCount, 1)
	m.cursor = max(m.cursor-step, 0)
}
