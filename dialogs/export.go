package dialogs

import (
	"fmt"
	"path/filepath"

	"github.com/andareed/siftly-grid/logging"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages ---------------------------------------------------------------

type (
	ExportConfirmedMsg struct{ Path string }
	ExportCanceledMsg  struct{}
)

// Export asks for the CSV path the current view is written to.
type Export struct {
	input   textinput.Model
	visible bool
	// relative names land here
	lastDir string
}

func (d Export) Init() tea.Cmd { return d.input.Focus() }

func NewExportDialog(defaultName, lastDir string) *Export {
	ti := textinput.New()
	ti.Placeholder = defaultName
	ti.Prompt = "Export as: "
	ti.CharLimit = 256
	// Wide enough for typical paths
	ti.Width = 50
	if defaultName != "" {
		ti.SetValue(defaultName)
	}
	ti.Focus()
	return &Export{input: ti, visible: true, lastDir: lastDir}
}

func (d *Export) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			val := d.input.Value()
			if val == "" {
				// fall back to placeholder if user left it blank
				val = d.input.Placeholder
			}
			if val == "" {
				return d, nil
			}
			path := val
			if d.lastDir != "" && !filepath.IsAbs(path) && filepath.Dir(path) == "." {
				path = filepath.Join(d.lastDir, filepath.Base(path))
			}
			logging.Debugf("ExportDialog: confirmed %s", path)
			return d, func() tea.Msg { return ExportConfirmedMsg{Path: path} }
		case "esc":
			logging.Debug("ExportDialog: canceled")
			return d, func() tea.Msg { return ExportCanceledMsg{} }
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d Export) View() string {
	if !d.visible {
		return ""
	}
	content := fmt.Sprintf("%s\n\n%s", d.input.View(), hint("enter to export • esc to cancel"))
	return box(60).Render(content)
}

func (d *Export) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Export) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Export) Focus() tea.Cmd { return d.input.Focus() }
func (d *Export) Blur()          { d.input.Blur() }
func (d Export) IsVisible() bool { return d.visible }
