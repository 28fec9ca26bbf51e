package main

import (
	"github.com/andareed/siftly-grid/daterange"
	"github.com/charmbracelet/bubbles/textinput"
)

const (
	dateRangeFocusPreset = iota
	dateRangeFocusStart
	dateRangeFocusEnd
)

const (
	dateRangeDrawerContentHeight = 5
	dateRangeDrawerHeight        = dateRangeDrawerContentHeight + 2
)

type dateRangeUI struct {
	open       bool
	focus      int
	choices    []daterange.Range
	presetIdx  int // -1 when the inputs hold a custom range
	startInput textinput.Model
	endInput   textinput.Model
	errorMsg   string
	origRange  daterange.Range
}

func initDateInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = dateInputLayout
	ti.CharLimit = len(dateInputLayout)
	ti.Width = len(dateInputLayout)
	ti.Prompt = ""
	return ti
}
