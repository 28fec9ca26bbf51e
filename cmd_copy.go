package main

import (
	"fmt"

	"github.com/andareed/siftly-grid/logging"
	"github.com/andareed/siftly-grid/tablectl"
	tea "github.com/charmbracelet/bubbletea"
)

type copyResultMsg struct {
	rows   int
	format tablectl.Format
	err    error
}

// copySelection renders the selected rows in view order and hands the
// payload to the clipboard off the update loop.
func (m *model) copySelection() tea.Cmd {
	if m.table.SelectionCount() == 0 {
		return m.startNotice("Nothing selected", noticeWarn, noticeDuration)
	}
	ids := m.selectedInView()
	if len(ids) == 0 {
		return m.startNotice("Selected rows are outside the current view", noticeWarn, noticeDuration)
	}

	records, err := m.table.ExportSelectedRows(ids)
	if err != nil {
		logging.Errorf("export selection: %v", err)
		return m.startNotice(err.Error(), noticeError, noticeDuration)
	}
	text, err := tablectl.Render(records, m.exportFormat, m.cfg.Export.Indent)
	if err != nil {
		logging.Errorf("render selection: %v", err)
		return m.startNotice(err.Error(), noticeError, noticeDuration)
	}

	copyText := m.copyText
	format := m.exportFormat
	rows := len(records)
	return func() tea.Msg {
		if err := copyText(text); err != nil {
			return copyResultMsg{err: err}
		}
		return copyResultMsg{rows: rows, format: format}
	}
}

func (m *model) handleCopyResult(msg copyResultMsg) tea.Cmd {
	if msg.err != nil {
		logging.Errorf("clipboard: %v", msg.err)
		return m.startNotice("Copy failed: "+msg.err.Error(), noticeError, noticeDuration)
	}
	logging.Infof("copied %d rows as %s", msg.rows, msg.format)
	return m.startNotice(fmt.Sprintf("Copied %d rows as %s", msg.rows, msg.format), noticeSuccess, noticeDuration)
}
