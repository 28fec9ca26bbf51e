package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit           key.Binding
	RowDown        key.Binding
	RowUp          key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Top            key.Binding
	Bottom         key.Binding
	FocusLeft      key.Binding
	FocusRight     key.Binding
	Sort           key.Binding
	ClearSort      key.Binding
	ToggleSelect   key.Binding
	SelectAll      key.Binding
	ClearSelection key.Binding
	NextSelected   key.Binding
	PrevSelected   key.Binding
	CopySelection  key.Binding
	HideColumn     key.Binding
	FitColumn      key.Binding
	FitAll         key.Binding
	Columns        key.Binding
	DateRange      key.Binding
	Filter         key.Binding
	ClearFilter    key.Binding
	ExportToFile   key.Binding
	OpenHelp       key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("u", "pgup"),
		key.WithHelp("u/pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("d", "pgdown"),
		key.WithHelp("d/pgdown", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g/home", "first row"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G/end", "last row"),
	),
	FocusLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "focus previous column"),
	),
	FocusRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "focus next column"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort by focused column (asc/desc/off)"),
	),
	ClearSort: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "clear sort"),
	),
	ToggleSelect: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select / deselect row"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select all rows in view"),
	),
	ClearSelection: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "clear selection"),
	),
	NextSelected: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next selected row"),
	),
	PrevSelected: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "previous selected row"),
	),
	CopySelection: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy selected rows"),
	),
	HideColumn: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "hide focused column"),
	),
	FitColumn: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "fit focused column to contents"),
	),
	FitAll: key.NewBinding(
		key.WithKeys("W"),
		key.WithHelp("W", "fit all columns to contents"),
	),
	Columns: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "column menu"),
	),
	DateRange: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "date range"),
	),
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "clear filter"),
	),
	ExportToFile: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export view to CSV"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.Quit,
		k.RowDown,
		k.RowUp,
		k.PageUp,
		k.PageDown,
		k.Top,
		k.Bottom,
		k.FocusLeft,
		k.FocusRight,
		k.Sort,
		k.ClearSort,
		k.ToggleSelect,
		k.SelectAll,
		k.ClearSelection,
		k.NextSelected,
		k.PrevSelected,
		k.CopySelection,
		k.HideColumn,
		k.FitColumn,
		k.FitAll,
		k.Columns,
		k.DateRange,
		k.Filter,
		k.ClearFilter,
		k.ExportToFile,
	}
}
