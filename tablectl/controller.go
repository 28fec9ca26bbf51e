// Package tablectl owns the state behind a table view: columns and their visibility,
// rows with stable identities, the selection, and the derived display order.
//
// A Controller is not safe for concurrent use; the host serialises calls.
package tablectl

import (
	"fmt"
	"slices"
	"sort"
)

// RowID identifies a row for as long as the controller lives. IDs are never reused.
type RowID uint64

// Column describes one header cell. Index is fixed when the header set is created.
type Column struct {
	Index   int
	Label   string
	Visible bool
}

// Row is a stored record. Tag is carried for the host and never displayed.
type Row struct {
	ID    RowID
	Cells []string
	Tag   any
}

// ColumnVisibilityChanged is delivered to subscribers from SetColumnVisible.
type ColumnVisibilityChanged struct {
	Index   int
	Visible bool
}

// SortState reports the active sort. Column is -1 when rows are in insertion order.
type SortState struct {
	Column    int
	Ascending bool
}

type Controller struct {
	columns  []Column
	rows     []Row
	position map[RowID]int // id -> index into rows
	nextID   RowID

	selected map[RowID]struct{}
	display  []RowID
	sort     SortState

	listeners  map[int]func(ColumnVisibilityChanged)
	listenSeq  int
	listenKeys []int
}

func New() *Controller {
	return &Controller{
		position:  make(map[RowID]int),
		selected:  make(map[RowID]struct{}),
		sort:      SortState{Column: -1, Ascending: true},
		listeners: make(map[int]func(ColumnVisibilityChanged)),
	}
}

// SetColumns replaces the header set. Every column starts visible and all rows,
// the selection and the sort are discarded. Duplicate labels are rejected and leave
// the controller unchanged.
func (c *Controller) SetColumns(labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			return fmt.Errorf("set columns %q: %w", l, ErrDuplicateColumn)
		}
		seen[l] = struct{}{}
	}

	cols := make([]Column, len(labels))
	for i, l := range labels {
		cols[i] = Column{Index: i, Label: l, Visible: true}
	}
	c.columns = cols
	c.rows = nil
	c.position = make(map[RowID]int)
	c.selected = make(map[RowID]struct{})
	c.display = nil
	c.sort = SortState{Column: -1, Ascending: true}
	return nil
}

func (c *Controller) ColumnCount() int { return len(c.columns) }
func (c *Controller) RowCount() int    { return len(c.rows) }

// Columns returns a copy of the column descriptors in index order.
func (c *Controller) Columns() []Column {
	return slices.Clone(c.columns)
}

func (c *Controller) Column(index int) (Column, error) {
	if index < 0 || index >= len(c.columns) {
		return Column{}, fmt.Errorf("column %d of %d: %w", index, len(c.columns), ErrIndexOutOfRange)
	}
	return c.columns[index], nil
}

// VisibleColumns returns the visible descriptors in index order.
func (c *Controller) VisibleColumns() []Column {
	out := make([]Column, 0, len(c.columns))
	for _, col := range c.columns {
		if col.Visible {
			out = append(out, col)
		}
	}
	return out
}

// IndexOfLabel returns the first column carrying label.
func (c *Controller) IndexOfLabel(label string) (int, error) {
	for _, col := range c.columns {
		if col.Label == label {
			return col.Index, nil
		}
	}
	return -1, &UnknownColumnError{Label: label, Suggestion: closestLabel(label, c.columns)}
}

// AppendRow stores a copy of cells under a fresh RowID.
func (c *Controller) AppendRow(cells []string, tag any) (RowID, error) {
	if len(cells) != len(c.columns) {
		return 0, fmt.Errorf("append row with %d cells, want %d: %w", len(cells), len(c.columns), ErrShapeMismatch)
	}
	c.nextID++
	id := c.nextID
	c.position[id] = len(c.rows)
	c.rows = append(c.rows, Row{ID: id, Cells: slices.Clone(cells), Tag: tag})
	c.display = append(c.display, id)
	if c.sort.Column >= 0 {
		c.resort()
	}
	return id, nil
}

// Row returns the stored row. The returned cells are a copy.
func (c *Controller) Row(id RowID) (Row, bool) {
	pos, ok := c.position[id]
	if !ok {
		return Row{}, false
	}
	r := c.rows[pos]
	r.Cells = slices.Clone(r.Cells)
	return r, true
}

// Cell returns the text at (id, column), or "" when the row is shorter.
func (c *Controller) Cell(id RowID, column int) string {
	pos, ok := c.position[id]
	if !ok {
		return ""
	}
	cells := c.rows[pos].Cells
	if column < 0 || column >= len(cells) {
		return ""
	}
	return cells[column]
}

// SetColumnVisible hides or shows a column. Hiding keeps its index and data.
// Subscribers are notified on every call, including no-op ones.
func (c *Controller) SetColumnVisible(index int, visible bool) error {
	if index < 0 || index >= len(c.columns) {
		return fmt.Errorf("set column %d visible=%t: %w", index, visible, ErrIndexOutOfRange)
	}
	c.columns[index].Visible = visible
	c.notify(ColumnVisibilityChanged{Index: index, Visible: visible})
	return nil
}

func (c *Controller) ToggleColumnByLabel(label string, visible bool) error {
	idx, err := c.IndexOfLabel(label)
	if err != nil {
		return err
	}
	return c.SetColumnVisible(idx, visible)
}

// Subscribe registers fn for visibility changes. Listeners run in subscription order.
func (c *Controller) Subscribe(fn func(ColumnVisibilityChanged)) (unsubscribe func()) {
	c.listenSeq++
	key := c.listenSeq
	c.listeners[key] = fn
	c.listenKeys = append(c.listenKeys, key)
	return func() {
		delete(c.listeners, key)
		c.listenKeys = slices.DeleteFunc(c.listenKeys, func(k int) bool { return k == key })
	}
}

func (c *Controller) notify(ev ColumnVisibilityChanged) {
	for _, key := range slices.Clone(c.listenKeys) {
		if fn, ok := c.listeners[key]; ok {
			fn(ev)
		}
	}
}

// SortRows orders the display by the column's text, ties kept in insertion order in
// both directions. Stored rows and their ids are untouched.
func (c *Controller) SortRows(column int, ascending bool) ([]RowID, error) {
	if column < 0 || column >= len(c.columns) {
		return nil, fmt.Errorf("sort by column %d: %w", column, ErrIndexOutOfRange)
	}
	c.sort = SortState{Column: column, Ascending: ascending}
	c.resort()
	return c.DisplayOrder(), nil
}

// ClearSort returns the display to insertion order.
func (c *Controller) ClearSort() {
	c.sort = SortState{Column: -1, Ascending: true}
	c.resort()
}

func (c *Controller) SortState() SortState { return c.sort }

func (c *Controller) resort() {
	order := make([]RowID, len(c.rows))
	for i, r := range c.rows {
		order[i] = r.ID
	}
	if col := c.sort.Column; col >= 0 {
		asc := c.sort.Ascending
		sort.SliceStable(order, func(i, j int) bool {
			a, b := c.Cell(order[i], col), c.Cell(order[j], col)
			if asc {
				return a < b
			}
			return a > b
		})
	}
	c.display = order
}

// DisplayOrder returns a copy of the current display permutation.
func (c *Controller) DisplayOrder() []RowID {
	return slices.Clone(c.display)
}

func (c *Controller) Select(id RowID) error {
	if _, ok := c.position[id]; !ok {
		return fmt.Errorf("select row %d: %w", id, ErrUnknownRow)
	}
	c.selected[id] = struct{}{}
	return nil
}

func (c *Controller) Deselect(id RowID) error {
	if _, ok := c.position[id]; !ok {
		return fmt.Errorf("deselect row %d: %w", id, ErrUnknownRow)
	}
	delete(c.selected, id)
	return nil
}

// ToggleSelected flips the row's selection and returns the new state.
func (c *Controller) ToggleSelected(id RowID) (bool, error) {
	if _, ok := c.position[id]; !ok {
		return false, fmt.Errorf("toggle row %d: %w", id, ErrUnknownRow)
	}
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
		return false, nil
	}
	c.selected[id] = struct{}{}
	return true, nil
}

// SelectAll adds every id to the selection. Nothing is selected if any id is unknown.
func (c *Controller) SelectAll(ids []RowID) error {
	for _, id := range ids {
		if _, ok := c.position[id]; !ok {
			return fmt.Errorf("select row %d: %w", id, ErrUnknownRow)
		}
	}
	for _, id := range ids {
		c.selected[id] = struct{}{}
	}
	return nil
}

func (c *Controller) ClearSelection() {
	clear(c.selected)
}

func (c *Controller) IsSelected(id RowID) bool {
	_, ok := c.selected[id]
	return ok
}

func (c *Controller) SelectionCount() int { return len(c.selected) }

// SelectedRowIDs returns the selection in insertion order, not display order.
func (c *Controller) SelectedRowIDs() []RowID {
	out := make([]RowID, 0, len(c.selected))
	for id := range c.selected {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b RowID) int {
		return c.position[a] - c.position[b]
	})
	return out
}
