package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andareed/siftly-grid/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	sortAscIndicator  = " ▲"
	sortDescIndicator = " ▼"
)

// gutterWidth covers the selection pill and the source line number.
func (m *model) gutterWidth() int {
	return len(fmt.Sprintf("%d", max(m.data.lastLine, 1))) + utf8.RuneCountInString(pillMarker)
}

func (m *model) headerView() string {
	cols := m.table.Columns()
	sortState := m.table.SortState()
	pad := headerCellStyle.GetHorizontalPadding()

	var cells []string
	for _, col := range cols {
		meta := m.cols[col.Index]
		if !col.Visible || meta.Width <= 0 {
			continue
		}

		indicator := ""
		if sortState.Column == col.Index {
			indicator = sortDescIndicator
			if sortState.Ascending {
				indicator = sortAscIndicator
			}
		}
		label := fitCell(col.Label, meta.Width-pad-utf8.RuneCountInString(indicator)) + indicator

		style := headerCellStyle
		if col.Index == m.ui.focusCol {
			style = headerFocusedStyle
		}
		cells = append(cells, style.Width(meta.Width).MaxHeight(1).Render(label))
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	return headerStyle.Render(strings.Repeat(" ", m.gutterWidth()) + headerRow)
}

// footerView renders the 2-line footer.
// width is the content width of the bordered table.
func (m *model) footerView(width int) string {
	styles := DefaultFooterStyles()

	footerMode := CmdNone
	modeInput := ""
	switch m.ui.mode {
	case modeDateRange:
		footerMode = CmdDateRange
	case modeCommand:
		footerMode = m.ui.command.cmd
		modeInput = m.activeCommandLine()
	}

	st := FooterState{
		Mode:          footerMode,
		ModeInput:     modeInput,
		FileName:      m.InitialPath,
		FilterLabel:   "None",
		RangeLabel:    m.data.dateRange.Label,
		Selected:      m.table.SelectionCount(),
		Row:           m.cursor + 1,
		TotalRows:     len(m.data.filtered),
		StatusMessage: "",
		Legend:        "(? help · f filter · / search · t dates · s sort · space select · y copy · C columns)",
	}
	if m.data.filterRegex != nil && m.data.filterRegex.String() != "" {
		st.FilterLabel = m.data.filterRegex.String()
	}
	if m.ui.noticeMsg != "" {
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	}
	if st.StatusMessage == "" && m.ui.mode == modeCommand {
		st.StatusMessage = m.commandHintsLine(m.ui.command.cmd)
	}
	if st.StatusMessage == "" && m.data.skipped > 0 {
		st.StatusMessage = fmt.Sprintf("%d malformed rows skipped", m.data.skipped)
	}
	if st.StatusMessage == "" {
		st.StatusMessage = m.dateRangeStatusLabel()
	}

	if logging.IsDebugMode() {
		debug := fmt.Sprintf(" dbg term=%dx%d vp=%dx%d cur=%d vis=%d-%d page=%d ch=%d hf=%d abv=%d",
			m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height,
			m.cursor, m.ui.visibleStart, m.ui.visibleEnd, m.pageRowSize,
			m.ui.debugCursorHeight, m.ui.debugHeightFree, m.ui.debugDesiredAboveHeight,
		)
		st.Legend = st.Legend + " |" + debug
	}

	return RenderFooter(width, st, styles)
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		w, h := m.terminalWidth, m.terminalHeight
		return lipgloss.Place(
			w, h,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
		)
	}

	bordered := tableStyle.Render(m.viewport.View())
	contentW := lipgloss.Width(bordered)

	parts := []string{m.headerView(), bordered}
	if m.ui.dateRange.open {
		parts = append(parts, m.dateRangeDrawerView(contentW))
	}
	parts = append(parts, m.footerView(contentW)) // always
	return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *model) renderRowAt(filteredIdx int) (string, int, bool) {
	if filteredIdx < 0 || filteredIdx >= len(m.data.filtered) {
		return "", 0, false
	}

	current := filteredIdx == m.cursor
	rowBgStyle := rowStyle
	rowPrefix := bgSeq(lipgloss.Color("")) + fgSeq(lipgloss.Color(rowTextFGColor))
	if current {
		rowBgStyle = rowSelectedStyle
		rowPrefix = bgSeq(lipgloss.Color(rowSelectedBGColor)) + fgSeq(lipgloss.Color(rowSelectedTextFGColor))
	}
	rowSuffix := termenv.CSI + "0m"

	id := m.data.filtered[filteredIdx]
	row, ok := m.table.Row(id)
	if !ok {
		return "", 0, false
	}

	marker := defaultMarker
	if m.table.IsSelected(id) {
		marker = selectedMarker.Render(pillMarker)
	}
	lineNo, _ := row.Tag.(int)
	numberWidth := m.gutterWidth() - utf8.RuneCountInString(pillMarker)
	left := marker + rowBgStyle.Render(fmt.Sprintf("%*d", numberWidth, lineNo))

	var decorate func(string) string
	if m.ui.searchQuery != "" {
		query := m.ui.searchQuery
		decorate = func(s string) string { return highlightMatches(s, query) }
	}
	content := renderCells(cellStyle, row.Cells, m.table.Columns(), m.cols, decorate)
	if m.ui.searchQuery != "" {
		content = restoreRowStyleAfterReset(content, rowPrefix)
	}

	rendered := left + rowPrefix + content + rowSuffix
	return rendered, lipgloss.Height(rendered), true
}

func highlightMatches(text string, query string) string {
	q := strings.TrimSpace(query)
	if q == "" || text == "" {
		return text
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(q)
	if len(lowerText) != len(text) {
		// case folding changed byte offsets; skip rather than split a rune
		return text
	}
	var b strings.Builder
	start := 0
	for {
		idx := strings.Index(lowerText[start:], lowerQuery)
		if idx == -1 {
			b.WriteString(text[start:])
			break
		}
		idx += start
		b.WriteString(text[start:idx])
		match := text[idx : idx+len(lowerQuery)]
		b.WriteString(searchHighlight.Render(match))
		start = idx + len(lowerQuery)
	}
	return b.String()
}

func restoreRowStyleAfterReset(s string, rowPrefix string) string {
	if rowPrefix == "" {
		return s
	}
	reset := termenv.CSI + "0m"
	if !strings.Contains(s, reset) {
		return s
	}
	return strings.ReplaceAll(s, reset, reset+rowPrefix)
}

func fgSeq(c lipgloss.Color) string {
	return colorSeq(c, false)
}

func bgSeq(c lipgloss.Color) string {
	return colorSeq(c, true)
}

func colorSeq(c lipgloss.Color, bg bool) string {
	value := string(c)
	if value == "" {
		if bg {
			return termenv.CSI + "49m"
		}
		return termenv.CSI + "39m"
	}
	profile := lipgloss.ColorProfile()
	tc := profile.Color(value)
	if tc == nil {
		return ""
	}
	return termenv.CSI + tc.Sequence(bg) + "m"
}

func (m *model) renderViewport() string {
	logging.Debug("renderViewport called")
	cursor := m.cursor

	if len(m.data.filtered) == 0 || cursor < 0 {
		logging.Debugf("renderViewport: blank, filtered=%d cursor=%d", len(m.data.filtered), cursor)
		m.pageRowSize = 0
		return ""
	}
	if cursor >= len(m.data.filtered) {
		m.cursor = len(m.data.filtered) - 1
		cursor = m.cursor
	}
	renderedRows, startIdx, endIdx := m.computeVisibleRows(cursor, m.viewport.Height)
	m.ui.visibleStart = startIdx
	m.ui.visibleEnd = endIdx
	// Metrics
	m.pageRowSize = len(renderedRows)
	m.lastVisibleRowCount = len(renderedRows)

	var b strings.Builder
	for _, r := range renderedRows {
		b.WriteString(r + "\n")
	}
	return b.String()
}

// computeVisibleRows fills the viewport around the cursor, aiming to keep it
// vertically centred.
func (m *model) computeVisibleRows(cursor int, viewportHeight int) ([]string, int, int) {
	cursorRenderedRow, cursorHeight, ok := m.renderRowAt(cursor)
	if !ok {
		return nil, 0, 0
	}

	heightFree := viewportHeight - cursorHeight
	desiredAboveHeight := max(heightFree/2, 0)
	m.ui.debugCursorHeight = cursorHeight
	m.ui.debugHeightFree = heightFree
	m.ui.debugDesiredAboveHeight = desiredAboveHeight
	upIndex := cursor - 1
	downIndex := cursor + 1

	var above []string
	var below []string

	aboveHeight := 0
	for heightFree > 0 && (upIndex >= 0 || downIndex < len(m.data.filtered)) {
		if upIndex >= 0 && aboveHeight < desiredAboveHeight {
			rendered, height, ok := m.renderRowAt(upIndex)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		if downIndex < len(m.data.filtered) {
			rendered, height, ok := m.renderRowAt(downIndex)
			if ok && height <= heightFree {
				below = append(below, rendered)
				heightFree -= height
				downIndex++
				continue
			}
		}
		if upIndex >= 0 {
			rendered, height, ok := m.renderRowAt(upIndex)
			if ok && height <= heightFree {
				above = append(above, rendered)
				heightFree -= height
				aboveHeight += height
				upIndex--
				continue
			}
		}
		break
	}

	renderedRows := make([]string, 0, len(above)+1+len(below))
	for i := len(above) - 1; i >= 0; i-- {
		renderedRows = append(renderedRows, above[i])
	}
	renderedRows = append(renderedRows, cursorRenderedRow)
	renderedRows = append(renderedRows, below...)

	startIdx := cursor - len(above)
	endIdx := cursor + len(below)
	return renderedRows, startIdx, endIdx
}
