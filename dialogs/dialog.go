package dialogs

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dialog is the common interface the modal overlays (Export, Help, Columns) implement.
// The host forwards keys to the visible dialog and reacts to the messages it emits.
type Dialog interface {
	Init() tea.Cmd // optional, can return nil
	Update(msg tea.Msg) (Dialog, tea.Cmd)
	View() string

	Focus() tea.Cmd
	Blur()
	IsVisible() bool
	Show()
	Hide()
}

func box(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("252")).
		BorderBackground(lipgloss.Color("236")). // match the overlay
		Padding(1, 2).
		Width(width)
}

func hint(s string) string {
	return lipgloss.NewStyle().Faint(true).Render(s)
}
