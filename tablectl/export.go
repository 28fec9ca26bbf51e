package tablectl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is one exported cell. It serialises as a single-key mapping {Label: Text}.
type Field struct {
	Label string
	Text  string
}

func (f Field) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string{f.Label: f.Text}); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (f Field) MarshalYAML() (any, error) {
	return map[string]string{f.Label: f.Text}, nil
}

// Record is one exported row, fields in column order.
type Record []Field

// ExportSelectedRows builds one Record per id in order. Every column is included
// whatever its visibility.
func (c *Controller) ExportSelectedRows(order []RowID) ([]Record, error) {
	out := make([]Record, 0, len(order))
	for _, id := range order {
		if _, ok := c.position[id]; !ok {
			return nil, fmt.Errorf("export row %d: %w", id, ErrUnknownRow)
		}
		rec := make(Record, len(c.columns))
		for i, col := range c.columns {
			rec[i] = Field{Label: col.Label, Text: c.Cell(id, i)}
		}
		out = append(out, rec)
	}
	return out, nil
}

// ExportSelection exports the current selection in insertion order.
func (c *Controller) ExportSelection() ([]Record, error) {
	return c.ExportSelectedRows(c.SelectedRowIDs())
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const DefaultIndent = 4

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Render serialises records as text with sorted keys and a fixed indent.
// An indent below 1 falls back to DefaultIndent.
func Render(records []Record, format Format, indent int) (string, error) {
	if indent < 1 {
		indent = DefaultIndent
	}
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", strings.Repeat(" ", indent))
		if err := enc.Encode(records); err != nil {
			return "", fmt.Errorf("render json: %w", err)
		}
	case FormatYAML:
		if len(records) == 0 {
			return "[]", nil
		}
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(indent)
		if err := enc.Encode(records); err != nil {
			return "", fmt.Errorf("render yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("render yaml: %w", err)
		}
	default:
		return "", fmt.Errorf("render: unknown export format %q", format)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
