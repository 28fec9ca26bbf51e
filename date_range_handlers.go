package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andareed/siftly-grid/daterange"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *model) openDateRangeDrawer() {
	dr := &m.ui.dateRange
	dr.open = true
	dr.errorMsg = ""
	dr.origRange = m.data.dateRange
	dr.choices = m.dateRangeChoices()
	dr.presetIdx = -1
	for i, r := range dr.choices {
		if r.Label == m.data.dateRange.Label {
			dr.presetIdx = i
			break
		}
	}

	if m.data.dateColumn < 0 {
		dr.errorMsg = "No date column available"
	}
	m.fillDateInputs(m.data.dateRange)
	m.setDateRangeFocus(dateRangeFocusPreset)
	m.ui.mode = modeDateRange
	m.resizeViewport()
	m.refreshView("date-range-open", true)
}

func (m *model) closeDateRangeDrawer() {
	m.ui.dateRange.open = false
	m.ui.dateRange.errorMsg = ""
	m.ui.mode = modeView
	m.resizeViewport()
	m.refreshView("date-range-close", true)
}

func (m *model) handleDateRangeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dr := &m.ui.dateRange

	switch {
	case msg.Type == tea.KeyEsc:
		m.closeDateRangeDrawer()
		return m, nil
	case msg.Type == tea.KeyEnter:
		return m, m.applyDateRangeFromInputs()
	case msg.Type == tea.KeyTab:
		m.setDateRangeFocus((dr.focus + 1) % 3)
		return m, nil
	case msg.Type == tea.KeyShiftTab:
		m.setDateRangeFocus((dr.focus + 2) % 3)
		return m, nil
	case dr.focus == dateRangeFocusPreset && (msg.Type == tea.KeyLeft || msg.String() == "h"):
		m.cyclePreset(-1)
		return m, nil
	case dr.focus == dateRangeFocusPreset && (msg.Type == tea.KeyRight || msg.String() == "l"):
		m.cyclePreset(1)
		return m, nil
	case dr.focus == dateRangeFocusPreset && msg.String() == "r":
		m.resetDateRangeDraft()
		return m, nil
	}

	var cmd tea.Cmd
	switch dr.focus {
	case dateRangeFocusStart:
		dr.startInput, cmd = dr.startInput.Update(msg)
	case dateRangeFocusEnd:
		dr.endInput, cmd = dr.endInput.Update(msg)
	}
	return m, cmd
}

func (m *model) setDateRangeFocus(focus int) {
	dr := &m.ui.dateRange
	dr.focus = focus
	switch focus {
	case dateRangeFocusStart:
		dr.startInput.Focus()
		dr.endInput.Blur()
	case dateRangeFocusEnd:
		dr.startInput.Blur()
		dr.endInput.Focus()
	default:
		dr.startInput.Blur()
		dr.endInput.Blur()
	}
}

func (m *model) fillDateInputs(r daterange.Range) {
	dr := &m.ui.dateRange
	dr.startInput.SetValue(r.Start.Format(dateInputLayout))
	dr.endInput.SetValue(r.End.Format(dateInputLayout))
}

// cyclePreset moves the draft through the preset list, wrapping at both ends.
func (m *model) cyclePreset(delta int) {
	dr := &m.ui.dateRange
	n := len(dr.choices)
	if n == 0 {
		return
	}
	if dr.presetIdx < 0 {
		dr.presetIdx = 0
		if delta < 0 {
			dr.presetIdx = n - 1
		}
	} else {
		dr.presetIdx = (dr.presetIdx + delta + n) % n
	}
	dr.errorMsg = ""
	m.fillDateInputs(dr.choices[dr.presetIdx])
}

func (m *model) resetDateRangeDraft() {
	dr := &m.ui.dateRange
	dr.errorMsg = ""
	dr.presetIdx = 0
	for i, r := range dr.choices {
		if strings.EqualFold(r.Label, m.cfg.Presets.Default) {
			dr.presetIdx = i
			break
		}
	}
	if len(dr.choices) > 0 {
		m.fillDateInputs(dr.choices[dr.presetIdx])
	}
}

// draftRange reads the inputs. Dates matching the chosen preset keep its
// label; anything edited by hand becomes a custom range.
func (m *model) draftRange() (daterange.Range, error) {
	dr := &m.ui.dateRange
	start, err := daterange.ParseDate(dr.startInput.Value(), dateInputLayout)
	if err != nil {
		return daterange.Range{}, errors.New("invalid start date")
	}
	end, err := daterange.ParseDate(dr.endInput.Value(), dateInputLayout)
	if err != nil {
		return daterange.Range{}, errors.New("invalid end date")
	}
	if start.After(end) {
		return daterange.Range{}, errors.New("start is after end")
	}
	if dr.presetIdx >= 0 && dr.presetIdx < len(dr.choices) {
		p := dr.choices[dr.presetIdx]
		if p.Start.Equal(start) && p.End.Equal(end) {
			return p, nil
		}
	}
	return daterange.Custom(start, end)
}

func (m *model) applyDateRangeFromInputs() tea.Cmd {
	dr := &m.ui.dateRange
	dr.errorMsg = ""

	if m.data.dateColumn < 0 {
		dr.errorMsg = "No date column available"
		return nil
	}
	r, err := m.draftRange()
	if err != nil {
		dr.errorMsg = err.Error()
		return nil
	}

	m.setDateRange(r)
	m.closeDateRangeDrawer()
	return m.startNotice(fmt.Sprintf("%s: %d rows", r.Label, len(m.data.filtered)), noticeInfo, noticeDuration)
}

func (m *model) dateRangeDrawerView(width int) string {
	dr := &m.ui.dateRange
	innerWidth := max(0, width-2)
	lineStyle := lipgloss.NewStyle().Width(innerWidth)

	presetLine := "Preset: " + m.presetStrip(innerWidth-len("Preset: "))
	startLine := fmt.Sprintf("Start:  %s", dr.startInput.View())
	endLine := fmt.Sprintf("End:    %s", dr.endInput.View())
	helpLine := "tab: next  ←/→: preset  enter: apply  r: reset  esc: cancel"
	errorLine := ""
	if dr.errorMsg != "" {
		errorLine = "Error: " + dr.errorMsg
	}

	lines := []string{
		lineStyle.Render(presetLine),
		lineStyle.Render(startLine),
		lineStyle.Render(endLine),
		lineStyle.Render(helpLine),
		lineStyle.Render(errorLine),
	}

	content := strings.Join(lines, "\n")
	return dateRangeArea.Width(width).Render(content)
}

// presetStrip renders the preset labels with the draft choice highlighted,
// centred on the highlight when the strip does not fit.
func (m *model) presetStrip(width int) string {
	dr := &m.ui.dateRange
	if width <= 0 || len(dr.choices) == 0 {
		return ""
	}

	labels := make([]string, len(dr.choices))
	for i, r := range dr.choices {
		labels[i] = " " + r.Label + " "
	}
	active := dr.presetIdx
	customLabel := ""
	if active < 0 {
		customLabel = " " + daterange.PresetCustom.String() + " "
	}

	// widen the window around the active label until it no longer fits
	lo, hi := max(active, 0), max(active, 0)
	used := runeWidth(labels[lo])
	for {
		grew := false
		if hi+1 < len(labels) && used+runeWidth(labels[hi+1]) <= width-runeWidth(customLabel) {
			hi++
			used += runeWidth(labels[hi])
			grew = true
		}
		if lo-1 >= 0 && used+runeWidth(labels[lo-1]) <= width-runeWidth(customLabel) {
			lo--
			used += runeWidth(labels[lo])
			grew = true
		}
		if !grew {
			break
		}
	}

	var b strings.Builder
	for i := lo; i <= hi; i++ {
		if i == active && dr.focus == dateRangeFocusPreset {
			b.WriteString(presetActiveStyle.Render(labels[i]))
			continue
		}
		if i == active {
			b.WriteString(presetActiveStyle.Faint(true).Render(labels[i]))
			continue
		}
		b.WriteString(labels[i])
	}
	if customLabel != "" {
		b.WriteString(presetActiveStyle.Render(customLabel))
	}
	return b.String()
}

// drawerHeight is the vertical space the open drawer takes from the viewport.
func (m *model) drawerHeight() int {
	if !m.ui.dateRange.open {
		return 0
	}
	return dateRangeDrawerHeight
}
