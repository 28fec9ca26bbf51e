// Package source reads tabular data (a header plus records) from CSV files and
// SQLite databases.
package source

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Table is raw loaded data. Records may be ragged; the caller decides what to do
// with rows that do not match the header.
type Table struct {
	Header  []string
	Records [][]string
}

var ErrEmpty = errors.New("source has no header row")

// Load picks a reader from the file extension. query is only used for SQLite files.
func Load(ctx context.Context, path, query string) (Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return LoadCSVFile(path)
	case ".db", ".sqlite", ".sqlite3":
		if strings.TrimSpace(query) == "" {
			return Table{}, fmt.Errorf("sqlite source %q needs a query", path)
		}
		return LoadSQLite(ctx, path, query)
	default:
		return Table{}, fmt.Errorf("unsupported file extension %q (want .csv, .db, .sqlite or .sqlite3)", ext)
	}
}

func LoadCSVFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadCSV treats the first record as the header. A leading UTF-8 BOM is dropped.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("error reading CSV: %w", err)
	}
	if len(records) == 0 {
		return Table{}, ErrEmpty
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return Table{Header: header, Records: records[1:]}, nil
}

// LoadSQLite runs query against the database at path. Every value becomes text:
// NULL is empty, times use RFC 3339.
func LoadSQLite(ctx context.Context, path, query string) (Table, error) {
	if _, err := os.Stat(path); err != nil {
		return Table{}, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Table{}, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return Table{}, fmt.Errorf("query %s: %w", path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Table{}, fmt.Errorf("columns: %w", err)
	}

	t := Table{Header: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return Table{}, fmt.Errorf("scan row %d: %w", len(t.Records)+1, err)
		}
		rec := make([]string, len(cols))
		for i, v := range values {
			rec[i] = text(v)
		}
		t.Records = append(t.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return Table{}, fmt.Errorf("read rows: %w", err)
	}
	return t, nil
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
