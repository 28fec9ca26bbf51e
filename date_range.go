package main

import (
	"strings"

	"github.com/andareed/siftly-grid/daterange"
	"github.com/andareed/siftly-grid/logging"
	"github.com/andareed/siftly-grid/tablectl"
)

const dateInputLayout = "2006-01-02"

// findDateColumnIndex picks the configured date column, then falls back to
// the usual header names.
func findDateColumnIndex(cols []tablectl.Column, preferred string) int {
	for _, want := range []string{preferred, "date", "time"} {
		if want == "" {
			continue
		}
		for _, c := range cols {
			name := strings.TrimPrefix(strings.TrimSpace(c.Label), "\ufeff")
			if strings.EqualFold(name, want) {
				return c.Index
			}
		}
	}
	return -1
}

func (m *model) computeRowDates() {
	m.data.dateColumn = findDateColumnIndex(m.table.Columns(), m.cfg.Table.DateColumn)
	m.data.rowDates = make(map[tablectl.RowID]daterange.Date, m.table.RowCount())
	if m.data.dateColumn < 0 {
		logging.Infof("no date column found, date ranges disabled")
		return
	}

	unparsed := 0
	for _, id := range m.table.DisplayOrder() {
		raw := m.table.Cell(id, m.data.dateColumn)
		d, err := daterange.ParseDate(raw, m.cfg.Table.DateLayouts...)
		if err != nil {
			unparsed++
			continue
		}
		m.data.rowDates[id] = d
	}
	if unparsed > 0 {
		logging.Warnf("%d rows have no readable date in column %d", unparsed, m.data.dateColumn)
	}
}

func (m *model) today() daterange.Date {
	return daterange.FromTime(m.now())
}

// dateRangeAllows is true for every row while the range is "All". Otherwise
// rows without a readable date are excluded.
func (m *model) dateRangeAllows(id tablectl.RowID) bool {
	if m.data.dateRange.IsAll() || m.data.dateColumn < 0 {
		return true
	}
	d, ok := m.data.rowDates[id]
	return ok && m.data.dateRange.Contains(d)
}

func (m *model) setDateRange(r daterange.Range) {
	logging.Infof("date range set to %s", r)
	m.data.dateRange = r
	m.applyFilter()
}

// setDateRangeByLabel applies a named preset relative to today.
func (m *model) setDateRangeByLabel(label string) error {
	r, err := m.calc.ByLabel(label, m.today())
	if err != nil {
		return err
	}
	m.setDateRange(r)
	return nil
}

// dateRangeChoices is the selector list: the catalog plus "Up to Month End".
func (m *model) dateRangeChoices() []daterange.Range {
	today := m.today()
	return append(m.calc.Catalog(today), m.calc.UpToMonthEnd(today))
}

func (m *model) dateRangeStatusLabel() string {
	if m.data.dateColumn < 0 {
		return "Dates: n/a"
	}
	r := m.data.dateRange
	if r.IsAll() {
		return "Dates: All"
	}
	return "Dates: " + r.String()
}
