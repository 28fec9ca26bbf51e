package main

import (
	"regexp"

	"github.com/andareed/siftly-grid/daterange"
	"github.com/andareed/siftly-grid/tablectl"
)

type dataState struct {
	skipped     int // source records rejected for a shape mismatch
	lastLine    int // highest source line number loaded
	filterRegex *regexp.Regexp
	filtered    []tablectl.RowID // display order after regex and date range
	dateColumn  int              // -1 when no column holds row dates
	rowDates    map[tablectl.RowID]daterange.Date
	dateRange   daterange.Range
}
