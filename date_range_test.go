package main

import (
	"testing"

	"github.com/andareed/siftly-grid/config"
	"github.com/andareed/siftly-grid/daterange"
	"github.com/andareed/siftly-grid/tablectl"
	"github.com/stretchr/testify/require"
)

func TestAllRangeKeepsUndatedRows(t *testing.T) {
	m, _ := ledgerModel(t)

	require.Equal(t, "All", m.data.dateRange.Label)
	require.Equal(t, 0, m.data.dateColumn)
	require.Len(t, m.data.rowDates, 3)
	require.Equal(t, []string{"Coffee beans", "Bus", "Mystery", "Books"}, cellsOf(t, m, 2))
	require.Equal(t, "Dates: All", m.dateRangeStatusLabel())
}

func TestPresetRangesFilterRows(t *testing.T) {
	m, _ := ledgerModel(t)

	require.NoError(t, m.setDateRangeByLabel("Last Month"))
	require.Equal(t, []string{"Coffee beans"}, cellsOf(t, m, 2))
	require.Equal(t, "Dates: Last Month (2023-12-01 - 2023-12-31)", m.dateRangeStatusLabel())

	require.NoError(t, m.setDateRangeByLabel("This Year"))
	require.Equal(t, []string{"Bus"}, cellsOf(t, m, 2))

	require.NoError(t, m.setDateRangeByLabel("Today"))
	require.Empty(t, m.data.filtered)
	require.Equal(t, -1, m.cursor)

	err := m.setDateRangeByLabel("Next Tuesday")
	require.ErrorIs(t, err, daterange.ErrUnknownPreset)
	require.Equal(t, "Today", m.data.dateRange.Label)

	require.NoError(t, m.setDateRangeByLabel("All"))
	require.Len(t, m.data.filtered, 4)
	require.Equal(t, 0, m.cursor)
}

func TestDrawerCyclesPresets(t *testing.T) {
	m, _ := ledgerModel(t)

	press(m, "t")
	require.Equal(t, modeDateRange, m.ui.mode)
	require.True(t, m.ui.dateRange.open)
	require.Equal(t, 0, m.ui.dateRange.presetIdx)
	require.Equal(t, "2024-01-15", m.ui.dateRange.startInput.Value())
	require.Len(t, m.ui.dateRange.choices, 10)

	// wraps backwards: Up to Month End, Last Year, Last Month
	press(m, "left", "left", "left")
	require.Equal(t, "Last Month", m.ui.dateRange.choices[m.ui.dateRange.presetIdx].Label)
	require.Equal(t, "2023-12-01", m.ui.dateRange.startInput.Value())
	require.Equal(t, "2023-12-31", m.ui.dateRange.endInput.Value())

	press(m, "enter")
	require.False(t, m.ui.dateRange.open)
	require.Equal(t, modeView, m.ui.mode)
	require.Equal(t, "Last Month", m.data.dateRange.Label)
	require.Equal(t, []string{"Coffee beans"}, cellsOf(t, m, 2))
	require.Equal(t, "Last Month: 1 rows", m.ui.noticeMsg)

	// reopening starts on the active preset
	press(m, "t")
	require.Equal(t, 7, m.ui.dateRange.presetIdx)
	press(m, "right", "r")
	require.Equal(t, 0, m.ui.dateRange.presetIdx)
	press(m, "esc")
	require.Equal(t, "Last Month", m.data.dateRange.Label)
}

func TestDrawerEditedDatesBecomeCustom(t *testing.T) {
	m, _ := ledgerModel(t)

	press(m, "t")
	m.ui.dateRange.startInput.SetValue("2023-11-25")
	m.ui.dateRange.endInput.SetValue("2023-12-31")
	press(m, "enter")

	r := m.data.dateRange
	require.Equal(t, "Custom", r.Label)
	require.Equal(t, daterange.NewDate(2023, 11, 25), r.Start)
	require.Equal(t, []string{"Coffee beans", "Books"}, cellsOf(t, m, 2))

	// a preset whose dates were edited is no longer that preset
	press(m, "t")
	require.Equal(t, -1, m.ui.dateRange.presetIdx)
	press(m, "right", "right", "right", "right", "right") // This Month
	require.Equal(t, "This Month", m.ui.dateRange.choices[m.ui.dateRange.presetIdx].Label)
	m.ui.dateRange.endInput.SetValue("2024-01-10")
	press(m, "enter")
	require.Equal(t, "Custom", m.data.dateRange.Label)
	require.Equal(t, []string{"Bus"}, cellsOf(t, m, 2))
}

func TestDrawerRejectsBadInput(t *testing.T) {
	m, _ := ledgerModel(t)
	press(m, "t")

	m.ui.dateRange.startInput.SetValue("2024-02-01")
	m.ui.dateRange.endInput.SetValue("2024-01-01")
	press(m, "enter")
	require.True(t, m.ui.dateRange.open)
	require.Equal(t, "start is after end", m.ui.dateRange.errorMsg)
	require.Equal(t, "All", m.data.dateRange.Label)

	m.ui.dateRange.startInput.SetValue("2024-13-45")
	press(m, "enter")
	require.Equal(t, "invalid start date", m.ui.dateRange.errorMsg)

	m.ui.dateRange.startInput.SetValue("2024-01-01")
	m.ui.dateRange.endInput.SetValue("soon")
	press(m, "enter")
	require.Equal(t, "invalid end date", m.ui.dateRange.errorMsg)

	press(m, "tab")
	require.Equal(t, dateRangeFocusStart, m.ui.dateRange.focus)
	require.True(t, m.ui.dateRange.startInput.Focused())
	press(m, "tab", "tab")
	require.Equal(t, dateRangeFocusPreset, m.ui.dateRange.focus)
}

func TestDrawerWithoutDateColumn(t *testing.T) {
	m, _ := newTestModel(t, config.Default(), []string{"Host", "Details"}, [][]string{{"a", "b"}})

	require.Equal(t, -1, m.data.dateColumn)
	require.Equal(t, "Dates: n/a", m.dateRangeStatusLabel())

	press(m, "t")
	require.Equal(t, "No date column available", m.ui.dateRange.errorMsg)
	press(m, "enter")
	require.True(t, m.ui.dateRange.open)

	// without a date column every row passes any range
	require.NoError(t, m.setDateRangeByLabel("Today"))
	require.Len(t, m.data.filtered, 1)
}

func TestConfiguredDateColumnAndDefaultPreset(t *testing.T) {
	cfg := config.Default()
	cfg.Table.DateColumn = "Posted"
	cfg.Table.DateLayouts = []string{"02/01/2006"}
	cfg.Presets.Default = "This Week"
	cfg.Presets.WeekStart = "monday"

	m, _ := newTestModel(t, cfg, []string{"Time", "Posted", "Amount"}, [][]string{
		{"2020-01-01", "15/01/2024", "1"}, // Monday
		{"2020-01-01", "14/01/2024", "2"}, // Sunday, previous week when weeks start Monday
		{"2020-01-01", "20/01/2024", "3"},
	})

	require.Equal(t, 1, m.data.dateColumn)
	require.Equal(t, "This Week", m.data.dateRange.Label)
	require.Equal(t, []string{"1", "3"}, cellsOf(t, m, 2))
}

func TestFindDateColumnIndex(t *testing.T) {
	cols := []tablectl.Column{
		{Index: 0, Label: "\ufeffTime", Visible: true},
		{Index: 1, Label: "DATE", Visible: true},
	}
	require.Equal(t, 1, findDateColumnIndex(cols, ""))
	require.Equal(t, 0, findDateColumnIndex(cols, "time"))
	require.Equal(t, 1, findDateColumnIndex(cols, "missing"))
	require.Equal(t, -1, findDateColumnIndex(cols[:0], "date"))
}
