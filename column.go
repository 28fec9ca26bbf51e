package main

import (
	"strings"

	"github.com/andareed/siftly-grid/tablectl"
)

type ColumnRole int

const (
	RoleNormal  ColumnRole = iota
	RolePrimary            // free text, gets the spare width
	RoleSecondary
)

// ColumnMeta is the on-screen layout of one controller column. Visibility
// lives in the controller; Width is zero while the column is hidden.
type ColumnMeta struct {
	Role     ColumnRole
	MinWidth int
	Weight   float64
	Fit      int // content width set by a fit, 0 for the weighted layout
	Width    int
}

func detectRole(name string) ColumnRole {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "description", "details", "memo", "note", "notes", "payee":
		return RolePrimary
	case "id", "date", "time", "amount":
		return RoleSecondary
	default:
		return RoleNormal
	}
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RolePrimary:
		return 30
	case RoleSecondary:
		return 12
	default:
		return 8
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RolePrimary:
		return 5.0
	case RoleSecondary:
		return 2.0
	default:
		return 1.0
	}
}

func newColumnMetas(cols []tablectl.Column) []ColumnMeta {
	metas := make([]ColumnMeta, len(cols))
	for i, c := range cols {
		role := detectRole(c.Label)
		metas[i] = ColumnMeta{
			Role:     role,
			MinWidth: defaultMinWidthForRole(role),
			Weight:   defaultWeightForRole(role),
		}
	}
	return metas
}

// emptyColumns lists the columns that hold no data in any record.
func emptyColumns(metas []ColumnMeta, records [][]string) []int {
	if len(records) == 0 {
		return nil
	}
	hasData := make([]bool, len(metas))
	for _, rec := range records {
		for i := range metas {
			if i < len(rec) && strings.TrimSpace(rec[i]) != "" {
				hasData[i] = true
			}
		}
	}
	var out []int
	for i := range metas {
		if !hasData[i] {
			out = append(out, i)
		}
	}
	return out
}

// layoutColumns shares totalWidth between the visible columns. Fitted columns
// take their content width first, clamped to totalWidth; the others get their
// MinWidth and split what is left by Weight.
func layoutColumns(metas []ColumnMeta, cols []tablectl.Column, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return metas
	}

	remaining := totalWidth
	var flex []tablectl.Column
	for _, c := range cols {
		meta := &metas[c.Index]
		switch {
		case !c.Visible:
			meta.Width = 0
		case meta.Fit > 0:
			meta.Width = min(meta.Fit, totalWidth)
			remaining -= meta.Width
		default:
			flex = append(flex, c)
		}
	}
	shareWidth(metas, flex, remaining)
	return metas
}

func shareWidth(metas []ColumnMeta, cols []tablectl.Column, width int) {
	minSum := 0
	weightSum := 0.0
	for _, c := range cols {
		minSum += metas[c.Index].MinWidth
		weightSum += metas[c.Index].Weight
	}

	if minSum >= width {
		// Too tight: just give each column its MinWidth, clamped while any space is left
		for _, c := range cols {
			meta := &metas[c.Index]
			meta.Width = meta.MinWidth
			if width > 0 && meta.MinWidth > width {
				meta.Width = width
			}
		}
		return
	}

	spare := width - minSum
	for _, c := range cols {
		meta := &metas[c.Index]
		extra := 0
		if weightSum > 0 {
			extra = int(float64(spare) * (meta.Weight / weightSum))
		}
		meta.Width = meta.MinWidth + extra
	}
}
