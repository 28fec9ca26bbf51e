package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/andareed/siftly-grid/config"
	"github.com/andareed/siftly-grid/daterange"
	"github.com/andareed/siftly-grid/dialogs"
	"github.com/andareed/siftly-grid/logging"
	"github.com/andareed/siftly-grid/source"
	"github.com/andareed/siftly-grid/tablectl"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeView mode = iota
	modeCommand
	modeDateRange
)

type model struct {
	cfg          config.Config
	table        *tablectl.Controller
	calc         daterange.Calculator
	exportFormat tablectl.Format
	now          func() time.Time
	copyText     func(string) error

	data dataState
	ui   uiState
	cols []ColumnMeta // layout per controller column

	viewport            viewport.Model
	ready               bool
	loading             bool // set while the table is being built
	cursor              int  // index into data.filtered
	lastVisibleRowCount int
	pageRowSize         int
	terminalWidth       int
	terminalHeight      int

	activeDialog dialogs.Dialog
	InitialPath  string
	unsubscribe  func()
}

// modelDeps carries the side effects the model needs from outside.
type modelDeps struct {
	Now      func() time.Time
	CopyText func(string) error
}

// newModel loads tbl into a controller. Records whose width differs from
// the header are logged and skipped.
func newModel(cfg config.Config, tbl source.Table, deps modelDeps) (*model, error) {
	format, err := cfg.ExportFormat()
	if err != nil {
		return nil, err
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.CopyText == nil {
		deps.CopyText = func(string) error { return errors.New("clipboard not configured") }
	}

	m := &model{
		cfg:          cfg,
		table:        tablectl.New(),
		calc:         cfg.Calculator(),
		exportFormat: format,
		now:          deps.Now,
		copyText:     deps.CopyText,
		loading:      true,
	}
	if err := m.table.SetColumns(tbl.Header); err != nil {
		return nil, fmt.Errorf("load header: %w", err)
	}
	m.cols = newColumnMetas(m.table.Columns())
	m.unsubscribe = m.table.Subscribe(m.onColumnVisibilityChanged)

	for i, rec := range tbl.Records {
		line := i + 1
		if _, err := m.table.AppendRow(rec, line); err != nil {
			if !errors.Is(err, tablectl.ErrShapeMismatch) {
				return nil, fmt.Errorf("load line %d: %w", line, err)
			}
			logging.Warnf("skipping line %d: %v", line, err)
			m.data.skipped++
			continue
		}
		m.data.lastLine = line
	}

	// Entire column empty → hide it, keeping at least one visible
	for _, idx := range emptyColumns(m.cols, tbl.Records) {
		if len(m.table.VisibleColumns()) <= 1 {
			break
		}
		logging.Infof("column %d has no data, hiding it", idx)
		_ = m.table.SetColumnVisible(idx, false)
	}
	m.ui.focusCol = -1
	m.moveFocus(1)

	m.computeRowDates()
	m.data.dateRange = m.calc.All(m.today())
	if err := m.setDateRangeByLabel(cfg.Presets.Default); err != nil {
		logging.Warnf("default preset %q: %v", cfg.Presets.Default, err)
	}

	m.ui.dateRange.startInput = initDateInput()
	m.ui.dateRange.endInput = initDateInput()
	m.ui.mode = modeView
	m.loading = false
	m.applyFilter()
	return m, nil
}

// Close detaches the model from the controller.
func (m *model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *model) Init() tea.Cmd {
	logging.Infof("siftly-grid: initialised with %d rows (%d skipped)", m.table.RowCount(), m.data.skipped)
	if m.data.skipped > 0 {
		return m.startNotice(fmt.Sprintf("%d malformed rows skipped", m.data.skipped), noticeWarn, 2*noticeDuration)
	}
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, m.takeNoticeTimer())
}

func (m *model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		m.ready = true
		m.resizeViewport()
		m.refreshView("resize", true)
		return m, nil

	case clearNoticeMsg:
		m.clearNotice(msg.id)
		return m, nil

	case copyResultMsg:
		return m, m.handleCopyResult(msg)

	case dialogs.ExportConfirmedMsg:
		m.activeDialog = nil
		if err := ExportView(m, msg.Path); err != nil {
			logging.Errorf("export %s: %v", msg.Path, err)
			return m, m.startNotice("Export failed: "+err.Error(), noticeError, noticeDuration)
		}
		return m, m.startNotice("Exported to "+msg.Path, noticeSuccess, noticeDuration)

	case dialogs.ExportCanceledMsg, dialogs.ColumnsClosedMsg:
		m.activeDialog = nil
		m.refreshView("dialog-close", true)
		return m, nil

	case dialogs.ColumnToggledMsg:
		if err := m.table.SetColumnVisible(msg.Index, msg.Visible); err != nil {
			return m, m.startNotice(err.Error(), noticeError, noticeDuration)
		}
		return m, nil

	case tea.KeyMsg:
		if m.activeDialog != nil && m.activeDialog.IsVisible() {
			var cmd tea.Cmd
			m.activeDialog, cmd = m.activeDialog.Update(msg)
			if !m.activeDialog.IsVisible() {
				m.activeDialog = nil
				m.refreshView("dialog-close", true)
			}
			return m, cmd
		}
		return m.updateKey(msg)
	}

	return m, nil
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ui.mode {
	case modeCommand:
		return m.handleCommandKey(msg)
	case modeDateRange:
		return m.handleDateRangeKey(msg)
	default:
		return m.handleViewModeKey(msg)
	}
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.RowDown):
		if m.cursor < len(m.data.filtered)-1 {
			m.cursor++
		}
	case key.Matches(msg, Keys.RowUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, Keys.PageUp):
		m.pageUp()
	case key.Matches(msg, Keys.PageDown):
		m.pageDown()
	case key.Matches(msg, Keys.Top):
		m.jumpToStart()
	case key.Matches(msg, Keys.Bottom):
		m.jumpToEnd()
	case key.Matches(msg, Keys.FocusLeft):
		m.moveFocus(-1)
	case key.Matches(msg, Keys.FocusRight):
		m.moveFocus(1)
	case key.Matches(msg, Keys.Sort):
		cmd = m.cycleSortFocused()
	case key.Matches(msg, Keys.ClearSort):
		cmd = m.clearSort()
	case key.Matches(msg, Keys.ToggleSelect):
		cmd = m.toggleSelectCurrent()
	case key.Matches(msg, Keys.SelectAll):
		cmd = m.selectAllFiltered()
	case key.Matches(msg, Keys.ClearSelection):
		cmd = m.clearSelection()
	case key.Matches(msg, Keys.NextSelected):
		m.jumpToNextSelected()
	case key.Matches(msg, Keys.PrevSelected):
		m.jumpToPreviousSelected()
	case key.Matches(msg, Keys.CopySelection):
		cmd = m.copySelection()
	case key.Matches(msg, Keys.HideColumn):
		cmd = m.hideFocusedColumn()
	case key.Matches(msg, Keys.FitColumn):
		cmd = m.fitFocusedColumn()
	case key.Matches(msg, Keys.FitAll):
		cmd = m.fitAllColumns()
	case key.Matches(msg, Keys.Columns):
		m.openColumnsDialog()
	case key.Matches(msg, Keys.DateRange):
		m.openDateRangeDrawer()
	case key.Matches(msg, Keys.Filter):
		m.startCommand(CmdFilter)
		if m.data.filterRegex != nil {
			m.ui.command.buf = m.data.filterRegex.String()
		}
	case key.Matches(msg, Keys.ClearFilter):
		if err := m.setFilterPattern(""); err == nil {
			cmd = m.startNotice("Filter cleared", noticeInfo, noticeDuration)
		}
	case key.Matches(msg, Keys.ExportToFile):
		m.activeDialog = dialogs.NewExportDialog(defaultExportName(m.InitialPath), filepath.Dir(m.InitialPath))
		cmd = m.activeDialog.Focus()
	case key.Matches(msg, Keys.OpenHelp):
		m.activeDialog = dialogs.NewHelpDialog(Keys.Legend())
	default:
		if len(msg.Runes) == 1 {
			if c := CommandFromPrefix(msg.Runes[0]); c != CmdNone {
				m.startCommand(c)
			}
		}
	}

	m.refreshView("key", false)
	return m, cmd
}

func (m *model) openColumnsDialog() {
	cols := m.table.Columns()
	items := make([]dialogs.ColumnItem, len(cols))
	for i, c := range cols {
		items[i] = dialogs.ColumnItem{Index: c.Index, Label: c.Label, Visible: c.Visible}
	}
	m.activeDialog = dialogs.NewColumnsDialog(items, m.ui.focusCol)
}

// resizeViewport recomputes the viewport from the terminal size and the
// chrome around it (margins, header, borders, drawer, footer).
func (m *model) resizeViewport() {
	if !m.ready {
		return
	}
	w := max(m.terminalWidth-6, 1)
	h := max(m.terminalHeight-7-m.drawerHeight(), 1)
	m.viewport = viewport.New(w, h)
	m.relayoutColumns()
}

func (m *model) relayoutColumns() {
	width := m.viewport.Width - m.gutterWidth()
	m.cols = layoutColumns(m.cols, m.table.Columns(), width)
}

// refreshView re-renders the table into the viewport. force also relayouts
// the columns first.
func (m *model) refreshView(reason string, force bool) {
	if !m.ready {
		return
	}
	logging.Debugf("refreshView reason=%s force=%v", reason, force)
	if force {
		m.relayoutColumns()
	}
	m.viewport.SetContent(m.renderViewport())
}

func defaultExportName(path string) string {
	if path == "" {
		return "export.csv"
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return base + "-view.csv"
}
