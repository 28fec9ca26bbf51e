package main

import (
	"strings"
	"testing"
	"time"

	"github.com/andareed/siftly-grid/config"
	"github.com/andareed/siftly-grid/source"
	"github.com/andareed/siftly-grid/tablectl"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)

var ledgerHeader = []string{"Date", "Amount", "Description", "Notes"}

func ledgerRecords() [][]string {
	return [][]string{
		{"2023-12-05", "12.50", "Coffee beans", ""},
		{"2024-01-03", "3.10", "Bus", ""},
		{"not a date", "99.00", "Mystery", ""},
		{"2023-11-30", "40.00", "Books", ""},
	}
}

type clipboardStub struct {
	copied []string
	err    error
}

func (c *clipboardStub) copy(s string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, s)
	return nil
}

func newTestModel(t *testing.T, cfg config.Config, header []string, records [][]string) (*model, *clipboardStub) {
	t.Helper()
	cb := &clipboardStub{}
	m, err := newModel(cfg, source.Table{Header: header, Records: records}, modelDeps{
		Now:      func() time.Time { return fixedNow },
		CopyText: cb.copy,
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m, cb
}

func ledgerModel(t *testing.T) (*model, *clipboardStub) {
	t.Helper()
	return newTestModel(t, config.Default(), ledgerHeader, ledgerRecords())
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *model, keys ...string) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		_, last = m.Update(keyPress(k))
	}
	return last
}

func typeText(m *model, text string) {
	for _, r := range text {
		m.Update(keyPress(string(r)))
	}
}

func cellsOf(t *testing.T, m *model, col int) []string {
	t.Helper()
	var out []string
	for _, id := range m.data.filtered {
		out = append(out, m.table.Cell(id, col))
	}
	return out
}

func TestNewModelSkipsMalformedRows(t *testing.T) {
	records := ledgerRecords()
	records = append(records, []string{"2024-01-01", "too", "many", "cells", "here"})
	records = append(records, []string{"2024-01-02", "1.00", "Tea", ""})

	m, _ := newTestModel(t, config.Default(), ledgerHeader, records)

	require.Equal(t, 5, m.table.RowCount())
	require.Equal(t, 1, m.data.skipped)
	require.Equal(t, 6, m.data.lastLine)
	require.Len(t, m.data.filtered, 5)

	cmd := m.Init()
	require.NotNil(t, cmd)
	require.Contains(t, m.ui.noticeMsg, "1 malformed rows skipped")
}

func TestNewModelRejectsDuplicateHeader(t *testing.T) {
	_, err := newModel(config.Default(), source.Table{Header: []string{"A", "A"}}, modelDeps{})
	require.ErrorIs(t, err, tablectl.ErrDuplicateColumn)
}

func TestEmptyColumnsStartHidden(t *testing.T) {
	m, _ := ledgerModel(t)

	notes, err := m.table.Column(3)
	require.NoError(t, err)
	require.False(t, notes.Visible)
	require.Len(t, m.table.VisibleColumns(), 3)
	// no notice for columns hidden while loading
	require.Empty(t, m.ui.noticeMsg)
	require.Equal(t, 0, m.ui.focusCol)
}

func TestRowsKeepSourceLineNumbers(t *testing.T) {
	m, _ := ledgerModel(t)

	require.Nil(t, m.jumpToLine(4))
	id, ok := m.cursorRowID()
	require.True(t, ok)
	require.Equal(t, "Books", m.table.Cell(id, 2))

	require.NotNil(t, m.jumpToLine(9))
	require.Contains(t, m.ui.noticeMsg, "out of bounds")
}

func TestSortCycleKeepsCursorRow(t *testing.T) {
	m, _ := ledgerModel(t)
	m.ui.focusCol = 1

	press(m, "j") // cursor on "Bus"
	press(m, "s")
	require.Equal(t, tablectl.SortState{Column: 1, Ascending: true}, m.table.SortState())
	require.Equal(t, []string{"12.50", "3.10", "40.00", "99.00"}, cellsOf(t, m, 1))
	id, _ := m.cursorRowID()
	require.Equal(t, "Bus", m.table.Cell(id, 2))

	press(m, "s")
	require.Equal(t, tablectl.SortState{Column: 1, Ascending: false}, m.table.SortState())
	require.Equal(t, []string{"99.00", "40.00", "3.10", "12.50"}, cellsOf(t, m, 1))

	press(m, "s")
	require.Equal(t, -1, m.table.SortState().Column)
	require.Equal(t, []string{"12.50", "3.10", "99.00", "40.00"}, cellsOf(t, m, 1))
	id, _ = m.cursorRowID()
	require.Equal(t, "Bus", m.table.Cell(id, 2))
}

func TestSelectionSurvivesSortAndFilter(t *testing.T) {
	m, _ := ledgerModel(t)

	press(m, " ", " ") // select rows 1 and 2, cursor moves down each time
	require.Equal(t, 2, m.table.SelectionCount())
	require.Equal(t, 2, m.cursor)

	m.ui.focusCol = 2
	press(m, "s")
	require.Equal(t, 2, m.table.SelectionCount())

	require.NoError(t, m.setFilterPattern("Bus|Books"))
	require.Len(t, m.selectedInView(), 1)

	press(m, "a")
	require.Equal(t, 3, m.table.SelectionCount())
	press(m, "A")
	require.Equal(t, 0, m.table.SelectionCount())
}

func TestNextPreviousSelected(t *testing.T) {
	m, _ := ledgerModel(t)
	require.NoError(t, m.table.Select(m.data.filtered[2]))

	press(m, "n")
	require.Equal(t, 2, m.cursor)
	press(m, "n")
	require.Equal(t, 2, m.cursor)
	press(m, "g")
	require.Equal(t, 0, m.cursor)
	press(m, "G", "N")
	require.Equal(t, 2, m.cursor)
}

func TestCopySelectionRendersAllColumns(t *testing.T) {
	m, cb := ledgerModel(t)
	press(m, "j", " ") // select "Bus"

	cmd := m.copySelection()
	require.NotNil(t, cmd)
	msg := cmd()
	res, ok := msg.(copyResultMsg)
	require.True(t, ok)
	require.NoError(t, res.err)
	require.Equal(t, 1, res.rows)

	want, err := tablectl.Render([]tablectl.Record{{
		{Label: "Date", Text: "2024-01-03"},
		{Label: "Amount", Text: "3.10"},
		{Label: "Description", Text: "Bus"},
		{Label: "Notes", Text: ""},
	}}, tablectl.FormatJSON, 4)
	require.NoError(t, err)
	require.Equal(t, []string{want}, cb.copied)

	m.Update(msg)
	require.Equal(t, "Copied 1 rows as json", m.ui.noticeMsg)
	require.Equal(t, noticeSuccess, m.ui.noticeType)
}

func TestCopySelectionFollowsViewOrder(t *testing.T) {
	m, cb := ledgerModel(t)
	press(m, "a")
	m.ui.focusCol = 1
	press(m, "s", "s") // amount descending

	msg := m.copySelection()()
	require.NoError(t, msg.(copyResultMsg).err)
	require.Len(t, cb.copied, 1)

	out := cb.copied[0]
	order := []string{"99.00", "40.00", "3.10", "12.50"}
	last := -1
	for _, amt := range order {
		idx := strings.Index(out, `"`+amt+`"`)
		require.Greater(t, idx, last, amt)
		last = idx
	}
}

func TestCopySelectionYAMLAndFailures(t *testing.T) {
	cfg := config.Default()
	cfg.Export.Format = "yaml"
	cfg.Export.Indent = 2
	m, cb := newTestModel(t, cfg, ledgerHeader, ledgerRecords())

	require.NotNil(t, m.copySelection())
	require.Equal(t, "Nothing selected", m.ui.noticeMsg)
	require.Equal(t, noticeWarn, m.ui.noticeType)

	press(m, " ")
	msg := m.copySelection()()
	require.NoError(t, msg.(copyResultMsg).err)
	require.Contains(t, cb.copied[0], `Date: "2023-12-05"`)
	require.Contains(t, cb.copied[0], "Description: Coffee beans")

	cb.err = tablectl.ErrUnknownRow
	m.Update(m.copySelection()())
	require.Contains(t, m.ui.noticeMsg, "Copy failed")
	require.Equal(t, noticeError, m.ui.noticeType)

	require.NoError(t, m.setFilterPattern("Books"))
	m.copySelection()
	require.Contains(t, m.ui.noticeMsg, "outside the current view")
}

func TestHideFocusedColumnNotifies(t *testing.T) {
	m, _ := ledgerModel(t)

	cmd := press(m, "x")
	require.NotNil(t, cmd) // notice timer
	date, _ := m.table.Column(0)
	require.False(t, date.Visible)
	require.Equal(t, `Column "Date" hidden`, m.ui.noticeMsg)
	require.Equal(t, 1, m.ui.focusCol)

	press(m, "x")
	require.Equal(t, 2, m.ui.focusCol)
	press(m, "x")
	require.Equal(t, "Cannot hide the last visible column", m.ui.noticeMsg)
	require.Len(t, m.table.VisibleColumns(), 1)
}

func TestShowHideColumnByLabelCommand(t *testing.T) {
	m, _ := ledgerModel(t)

	press(m, "+")
	typeText(m, "Notes")
	press(m, "enter")
	notes, _ := m.table.Column(3)
	require.True(t, notes.Visible)
	require.Equal(t, `Column "Notes" shown`, m.ui.noticeMsg)

	press(m, "-")
	typeText(m, "Amout")
	press(m, "enter")
	require.Contains(t, m.ui.noticeMsg, `did you mean "Amount"`)
	require.Equal(t, modeView, m.ui.mode)
}

func TestColumnsDialogTogglesController(t *testing.T) {
	m, _ := ledgerModel(t)

	press(m, "C")
	require.NotNil(t, m.activeDialog)

	_, cmd := m.Update(keyPress(" "))
	require.NotNil(t, cmd)
	m.Update(cmd())
	date, _ := m.table.Column(0)
	require.False(t, date.Visible)

	_, cmd = m.Update(keyPress("esc"))
	m.Update(cmd())
	require.Nil(t, m.activeDialog)
}

func TestFilterAndSearchCommands(t *testing.T) {
	m, _ := ledgerModel(t)

	press(m, "f")
	typeText(m, "B(us|ooks)")
	press(m, "enter")
	require.Equal(t, []string{"Bus", "Books"}, cellsOf(t, m, 2))

	press(m, "F")
	require.Len(t, m.data.filtered, 4)

	press(m, "/")
	typeText(m, "mystery")
	press(m, "enter")
	require.Equal(t, 2, m.cursor)

	press(m, "/")
	typeText(m, "nothing here")
	press(m, "enter")
	require.Equal(t, 2, m.cursor)
	require.Contains(t, m.ui.noticeMsg, "No match")

	press(m, "f")
	typeText(m, "(")
	press(m, "enter")
	require.Contains(t, m.ui.noticeMsg, "Invalid filter")
}

func TestViewRendersHeaderAndSort(t *testing.T) {
	m, _ := ledgerModel(t)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 30})
	m.ui.focusCol = 1
	press(m, "s")

	out := m.View()
	require.Contains(t, out, "Description")
	require.Contains(t, out, "Amount ▲")
	require.NotContains(t, out, "Notes")
	require.Contains(t, out, "Coffee beans")
	require.Contains(t, out, "RANGE: All")
}

func TestNoticeClearsOnlyLatest(t *testing.T) {
	m, _ := ledgerModel(t)
	m.startNotice("first", noticeInfo, noticeDuration)
	stale := m.ui.noticeSeq
	m.startNotice("second", noticeInfo, noticeDuration)

	m.Update(clearNoticeMsg{id: stale})
	require.Equal(t, "second", m.ui.noticeMsg)
	m.Update(clearNoticeMsg{id: m.ui.noticeSeq})
	require.Empty(t, m.ui.noticeMsg)
}

func TestFitColumnToContents(t *testing.T) {
	long := strings.Repeat("x", 26)
	m, _ := newTestModel(t, config.Default(), []string{"Date", "Code", "Spare"}, [][]string{
		{"2024-01-01", "a", ""},
		{"2024-01-02", long, ""},
	})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 30})
	pad := cellStyle.GetHorizontalPadding()

	spare, _ := m.table.Column(2)
	require.False(t, spare.Visible)
	require.Equal(t, 0, m.cols[2].Width)

	m.ui.focusCol = 1
	press(m, "w")
	require.Equal(t, 26+pad, m.cols[1].Fit)
	require.Equal(t, 26+pad, m.cols[1].Width)
	require.Equal(t, 0, m.cols[2].Width)
	require.Equal(t, `Column "Code" fitted to contents`, m.ui.noticeMsg)
	require.Contains(t, m.View(), long)

	// only rows in the current view are measured
	require.NoError(t, m.setFilterPattern("2024-01-01"))
	press(m, "w")
	require.Equal(t, len("Code")+pad, m.cols[1].Width)

	press(m, "W")
	require.Equal(t, len("2024-01-01")+pad, m.cols[0].Width)
	require.Equal(t, 0, m.cols[2].Fit)
	require.Equal(t, 0, m.cols[2].Width)
}

func TestFitColumnClampsAndResets(t *testing.T) {
	m, _ := newTestModel(t, config.Default(), []string{"Date", "Code"}, [][]string{
		{"2024-01-01", strings.Repeat("y", 300)},
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	pad := cellStyle.GetHorizontalPadding()
	total := m.viewport.Width - m.gutterWidth()

	press(m, ":")
	typeText(m, "fit Code")
	press(m, "enter")
	require.Equal(t, modeView, m.ui.mode)
	require.Equal(t, 300+pad, m.cols[1].Fit)
	require.Equal(t, total, m.cols[1].Width)
	// the unfitted column still gets its minimum
	require.Equal(t, m.cols[0].MinWidth, m.cols[0].Width)

	press(m, ":")
	typeText(m, "fit Cde")
	press(m, "enter")
	require.Contains(t, m.ui.noticeMsg, `did you mean "Code"`)

	press(m, ":")
	typeText(m, "fit off")
	press(m, "enter")
	require.Equal(t, "Column widths reset", m.ui.noticeMsg)
	require.Zero(t, m.cols[1].Fit)
	require.Less(t, m.cols[1].Width, total)
	require.Greater(t, m.cols[0].Width, m.cols[0].MinWidth)
}
