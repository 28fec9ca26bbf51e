package main

import (
	"regexp"
	"strings"

	"github.com/andareed/siftly-grid/logging"
	"github.com/andareed/siftly-grid/tablectl"
)

func (m *model) setFilterPattern(pattern string) error {
	logging.Infof("Setting Pattern to: %s", pattern)
	if pattern == "" {
		m.data.filterRegex = nil
	} else {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return err
		}
		m.data.filterRegex = re
	}
	m.applyFilter()
	return nil
}

// rowText joins every cell, hidden columns included, so filters and search
// do not change meaning when the column layout does.
func (m *model) rowText(id tablectl.RowID) string {
	row, ok := m.table.Row(id)
	if !ok {
		return ""
	}
	return strings.Join(row.Cells, "\t")
}

func (m *model) includeRow(id tablectl.RowID) bool {
	if !m.dateRangeAllows(id) {
		return false
	}
	if m.data.filterRegex != nil {
		if !m.data.filterRegex.MatchString(m.rowText(id)) {
			return false
		}
	}
	return true
}

// applyFilter rebuilds the filtered view from the controller's display order
// and keeps the cursor on the same row when it survives.
func (m *model) applyFilter() {
	anchor, hasAnchor := m.cursorRowID()

	m.data.filtered = m.data.filtered[:0]
	for _, id := range m.table.DisplayOrder() {
		if m.includeRow(id) {
			m.data.filtered = append(m.data.filtered, id)
		}
	}
	logging.Debugf("applyFilter: %d of %d rows pass", len(m.data.filtered), m.table.RowCount())

	switch {
	case len(m.data.filtered) == 0:
		// No matches found prevent index panics
		m.cursor = -1
	case hasAnchor && m.moveCursorTo(anchor):
	default:
		m.cursor = clamp(m.cursor, 0, len(m.data.filtered)-1)
	}
	m.refreshView("filter", false)
}

func (m *model) cursorRowID() (tablectl.RowID, bool) {
	if m.cursor < 0 || m.cursor >= len(m.data.filtered) {
		return 0, false
	}
	return m.data.filtered[m.cursor], true
}

func (m *model) moveCursorTo(id tablectl.RowID) bool {
	for i, fid := range m.data.filtered {
		if fid == id {
			m.cursor = i
			return true
		}
	}
	return false
}
