package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// searchOnce moves the cursor to the next row containing query, wrapping at
// the end of the filtered view.
func (m *model) searchOnce(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	m.ui.searchQuery = query
	if query == "" {
		return nil
	}
	n := len(m.data.filtered)
	if n == 0 {
		return m.startNotice("No rows to search", noticeWarn, noticeDuration)
	}

	q := strings.ToLower(query)
	start := max(m.cursor, -1)
	for step := 1; step <= n; step++ {
		i := (start + step) % n
		if strings.Contains(strings.ToLower(m.rowText(m.data.filtered[i])), q) {
			m.cursor = i
			return nil
		}
	}
	return m.startNotice("No match for "+query, noticeWarn, noticeDuration)
}
