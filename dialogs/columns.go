package dialogs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---------------------------------------------------------------

type (
	// ColumnToggledMsg asks the host to show or hide the column at Index.
	ColumnToggledMsg struct {
		Index   int
		Visible bool
	}
	ColumnsClosedMsg struct{}
)

// ColumnItem is one row of the column menu.
type ColumnItem struct {
	Index   int
	Label   string
	Visible bool
}

type columnsKeymap struct {
	up     key.Binding
	down   key.Binding
	toggle key.Binding
	close  key.Binding
}

var columnsKeys = columnsKeymap{
	up:     key.NewBinding(key.WithKeys("k", "up")),
	down:   key.NewBinding(key.WithKeys("j", "down")),
	toggle: key.NewBinding(key.WithKeys(" ", "x", "enter")),
	close:  key.NewBinding(key.WithKeys("esc", "q", "C")),
}

// Columns is a checklist of every column, hidden ones included.
type Columns struct {
	items   []ColumnItem
	cursor  int
	visible bool
}

func NewColumnsDialog(items []ColumnItem, cursor int) *Columns {
	return &Columns{
		items:   append([]ColumnItem(nil), items...),
		cursor:  max(0, min(cursor, len(items)-1)),
		visible: true,
	}
}

func (d Columns) Init() tea.Cmd { return nil }

func (d *Columns) visibleCount() int {
	n := 0
	for _, it := range d.items {
		if it.Visible {
			n++
		}
	}
	return n
}

func (d *Columns) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok || !d.visible || len(d.items) == 0 {
		return d, nil
	}
	switch {
	case key.Matches(m, columnsKeys.up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(m, columnsKeys.down):
		if d.cursor < len(d.items)-1 {
			d.cursor++
		}
	case key.Matches(m, columnsKeys.toggle):
		it := &d.items[d.cursor]
		// the last visible column stays
		if it.Visible && d.visibleCount() == 1 {
			return d, nil
		}
		it.Visible = !it.Visible
		ev := ColumnToggledMsg{Index: it.Index, Visible: it.Visible}
		return d, func() tea.Msg { return ev }
	case key.Matches(m, columnsKeys.close):
		d.visible = false
		return d, func() tea.Msg { return ColumnsClosedMsg{} }
	}
	return d, nil
}

// Items returns the menu state, in column order.
func (d *Columns) Items() []ColumnItem {
	return append([]ColumnItem(nil), d.items...)
}

func (d Columns) View() string {
	if !d.visible {
		return ""
	}
	cur := lipgloss.NewStyle().Reverse(true)

	var lines []string
	for i, it := range d.items {
		check := "[ ]"
		if it.Visible {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, it.Label)
		if i == d.cursor {
			line = cur.Render(line)
		}
		lines = append(lines, line)
	}

	content := fmt.Sprintf("Columns\n\n%s\n\n%s",
		strings.Join(lines, "\n"),
		hint("space toggle • j/k move • esc close"))
	return box(50).Render(content)
}

func (d *Columns) Show()          { d.visible = true }
func (d *Columns) Hide()          { d.visible = false }
func (d *Columns) Focus() tea.Cmd { return nil }
func (d *Columns) Blur()          {}
func (d Columns) IsVisible() bool { return d.visible }
