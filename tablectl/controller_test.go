package tablectl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newXY(t *testing.T) *Controller {
	t.Helper()
	c := New()
	require.NoError(t, c.SetColumns([]string{"X", "Y"}))
	return c
}

func mustAppend(t *testing.T, c *Controller, cells ...string) RowID {
	t.Helper()
	id, err := c.AppendRow(cells, nil)
	require.NoError(t, err)
	return id
}

func TestSetColumnsStartsVisibleAndResets(t *testing.T) {
	t.Parallel()

	c := newXY(t)
	id := mustAppend(t, c, "a", "b")
	require.NoError(t, c.Select(id))
	require.NoError(t, c.SetColumnVisible(1, false))
	_, err := c.SortRows(0, false)
	require.NoError(t, err)

	require.NoError(t, c.SetColumns([]string{"A", "B", "C"}))
	require.Equal(t, 3, c.ColumnCount())
	require.Equal(t, 0, c.RowCount())
	require.Equal(t, 0, c.SelectionCount())
	require.Empty(t, c.DisplayOrder())
	require.Equal(t, SortState{Column: -1, Ascending: true}, c.SortState())
	for i, col := range c.Columns() {
		require.Equal(t, i, col.Index)
		require.True(t, col.Visible)
	}

	// Identities keep counting across header resets.
	next := mustAppend(t, c, "1", "2", "3")
	require.Greater(t, next, id)
}

func TestSetColumnsRejectsDuplicates(t *testing.T) {
	t.Parallel()

	c := newXY(t)
	mustAppend(t, c, "a", "b")

	err := c.SetColumns([]string{"A", "B", "A"})
	require.ErrorIs(t, err, ErrDuplicateColumn)
	require.Equal(t, 2, c.ColumnCount())
	require.Equal(t, 1, c.RowCount())
}

func TestAppendRowShapeMismatch(t *testing.T) {
	t.Parallel()

	c := newXY(t)
	mustAppend(t, c, "a", "b")

	_, err := c.AppendRow([]string{"only one"}, nil)
	require.ErrorIs(t, err, ErrShapeMismatch)
	_, err = c.AppendRow([]string{"a", "b", "c"}, nil)
	require.ErrorIs(t, err, ErrShapeMismatch)
	require.Equal(t, 1, c.RowCount())
	require.Len(t, c.DisplayOrder(), 1)
}

func TestAppendRowCopiesCellsAndKeepsTag(t *testing.T) {
	t.Parallel()

	c := newXY(t)
	cells := []string{"a", "b"}
	id, err := c.AppendRow(cells, 42)
	require.NoError(t, err)
	cells[0] = "mutated"

	row, ok := c.Row(id)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, row.Cells)
	require.Equal(t, 42, row.Tag)

	row.Cells[1] = "mutated"
	require.Equal(t, "b", c.Cell(id, 1))
	require.Equal(t, "", c.Cell(id, 5))

	_, ok = c.Row(id + 100)
	require.False(t, ok)
}

func TestSetColumnVisible(t *testing.T) {
	t.Parallel()

	c := newXY(t)
	id := mustAppend(t, c, "a", "b")

	var events []ColumnVisibilityChanged
	c.Subscribe(func(ev ColumnVisibilityChanged) { events = append(events, ev) })

	require.NoError(t, c.SetColumnVisible(0, false))
	require.Equal(t, []ColumnVisibilityChanged{{Index: 0, Visible: false}}, events)
	require.Equal(t, 2, c.ColumnCount())
	require.Equal(t, "a", c.Cell(id, 0))

	col, err := c.Column(0)
	require.NoError(t, err)
	require.Equal(t, Column{Index: 0, Label: "X", Visible: false}, col)
	require.Equal(t, []Column{{Index: 1, Label: "Y", Visible: true}}, c.VisibleColumns())

	// Idempotent state, one notification per call.
	require.NoError(t, c.SetColumnVisible(0, false))
	require.Len(t, events, 2)
	col, _ = c.Column(0)
	require.False(t, col.Visible)

	require.NoError(t, c.SetColumnVisible(0, true))
	require.Equal(t, ColumnVisibilityChanged{Index: 0, Visible: true}, events[2])

	for _, bad := range []int{-1, 2} {
		err := c.SetColumnVisible(bad, false)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	require.Len(t, events, 3)

	_, err = c.Column(9)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestUnsubscribe(t *testing.T) {
	t.Parallel()

	c := newXY(t)
	var first, second int
	stop := c.Subscribe(func(ColumnVisibilityChanged) { first++ })
	c.Subscribe(func(ColumnVisibilityChanged) { second++ })

	require.NoError(t, c.SetColumnVisible(1, false))
	stop()
	require.NoError(t, c.SetColumnVisible(1, true))

	require.Equal(t, 1, first)
	require.Equal(t, 2, second)
}

func TestToggleColumnByLabel(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.SetColumns([]string{"Date", "Amount", "Description"}))

	var events []ColumnVisibilityChanged
	c.Subscribe(func(ev ColumnVisibilityChanged) { events = append(events, ev) })

	require.NoError(t, c.ToggleColumnByLabel("Amount", false))
	require.Equal(t, []ColumnVisibilityChanged{{Index: 1, Visible: false}}, events)

	err := c.ToggleColumnByLabel("Amout", false)
	require.ErrorIs(t, err, ErrUnknownColumn)
	var uce *UnknownColumnError
	require.True(t, errors.As(err, &uce))
	require.Equal(t, "Amout", uce.Label)
	require.Equal(t, "Amount", uce.Suggestion)
	require.Contains(t, err.Error(), `did you mean "Amount"`)

	err = c.ToggleColumnByLabel("zzz", true)
	require.ErrorIs(t, err, ErrUnknownColumn)
	require.True(t, errors.As(err, &uce))
	require.Empty(t, uce.Suggestion)
	require.Len(t, events, 1)
}

func TestSortRowsIsStable(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.SetColumns([]string{"Key", "N"}))
	ids := []RowID{
		mustAppend(t, c, "b", "1"),
		mustAppend(t, c, "a", "2"),
		mustAppend(t, c, "b", "3"),
		mustAppend(t, c, "a", "4"),
		mustAppend(t, c, "c", "5"),
	}

	asc, err := c.SortRows(0, true)
	require.NoError(t, err)
	require.Equal(t, []RowID{ids[1], ids[3], ids[0], ids[2], ids[4]}, asc)

	desc, err := c.SortRows(0, false)
	require.NoError(t, err)
	require.Equal(t, []RowID{ids[4], ids[0], ids[2], ids[1], ids[3]}, desc)
	require.Equal(t, SortState{Column: 0, Ascending: false}, c.SortState())

	// Storage order is untouched.
	row, _ := c.Row(ids[0])
	require.Equal(t, []string{"b", "1"}, row.Cells)

	c.ClearSort()
	require.Equal(t, ids, c.DisplayOrder())

	_, err = c.SortRows(2, true)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = c.SortRows(-1, true)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestAppendRowKeepsActiveSort(t *testing.T) {
	t.Parallel()

	c := newXY(t)
	b := mustAppend(t, c, "b", "")
	_, err := c.SortRows(0, true)
	require.NoError(t, err)

	a := mustAppend(t, c, "a", "")
	require.Equal(t, []RowID{a, b}, c.DisplayOrder())
}

func TestSelectionTracksIdentityAcrossSort(t *testing.T) {
	t.Parallel()

	c := newXY(t)
	first := mustAppend(t, c, "z", "1")
	second := mustAppend(t, c, "m", "2")
	third := mustAppend(t, c, "a", "3")

	require.NoError(t, c.Select(third))
	require.NoError(t, c.Select(first))
	require.NoError(t, c.Select(first))

	_, err := c.SortRows(0, true)
	require.NoError(t, err)
	require.Equal(t, []RowID{third, second, first}, c.DisplayOrder())

	require.Equal(t, []RowID{first, third}, c.SelectedRowIDs())
	require.True(t, c.IsSelected(third))
	require.False(t, c.IsSelected(second))

	on, err := c.ToggleSelected(second)
	require.NoError(t, err)
	require.True(t, on)
	on, err = c.ToggleSelected(first)
	require.NoError(t, err)
	require.False(t, on)
	require.Equal(t, []RowID{second, third}, c.SelectedRowIDs())

	require.NoError(t, c.Deselect(third))
	require.Equal(t, []RowID{second}, c.SelectedRowIDs())

	require.ErrorIs(t, c.Select(999), ErrUnknownRow)
	require.ErrorIs(t, c.Deselect(999), ErrUnknownRow)
	_, err = c.ToggleSelected(999)
	require.ErrorIs(t, err, ErrUnknownRow)

	require.ErrorIs(t, c.SelectAll([]RowID{first, 999}), ErrUnknownRow)
	require.Equal(t, 1, c.SelectionCount())
	require.NoError(t, c.SelectAll(c.DisplayOrder()))
	require.Equal(t, []RowID{first, second, third}, c.SelectedRowIDs())

	c.ClearSelection()
	require.Empty(t, c.SelectedRowIDs())
}
