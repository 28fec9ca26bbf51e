package main

import "github.com/charmbracelet/lipgloss"

const (
	rowTextFGColor         = "#c0c0c0"
	rowSelectedTextFGColor = "#e0e0e0"
	rowSelectedBGColor     = "#3a3a3a"
	searchHighlightBGColor = "#f5c542"
	searchHighlightFGColor = "#000000"
	focusedHeaderFGColor   = "#ff9f1c"
)

var (
	// Styles
	appstyle    = lipgloss.NewStyle().Margin(1, 2)
	headerStyle = lipgloss.NewStyle().BorderStyle(lipgloss.Border{
		Left:  " ",
		Right: " ",
	}).BorderLeft(true).BorderRight(true)
	headerCellStyle    = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	headerFocusedStyle = headerCellStyle.Foreground(lipgloss.Color(focusedHeaderFGColor)).Underline(true)
	rowStyle           = lipgloss.NewStyle()
	rowSelectedStyle   = lipgloss.NewStyle().Background(lipgloss.Color(rowSelectedBGColor))

	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	tableStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))

	selectedMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	defaultMarker  = " " // gutter when the row is not in the selection
	pillMarker     = "▐"

	dateRangeArea = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 0).BorderLeft(true)

	presetActiveStyle = lipgloss.NewStyle().Reverse(true)

	searchHighlight = lipgloss.NewStyle().
			Background(lipgloss.Color(searchHighlightBGColor)).
			Foreground(lipgloss.Color(searchHighlightFGColor))
)
