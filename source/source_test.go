package source

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	data := "\ufeffDate,Amount,Description\n2024-01-02,10,coffee\n2024-01-03,5\n"
	tbl, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, []string{"Date", "Amount", "Description"}, tbl.Header)
	require.Equal(t, [][]string{
		{"2024-01-02", "10", "coffee"},
		{"2024-01-03", "5"},
	}, tbl.Records)

	_, err = ReadCSV(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmpty)
}

func TestLoadByExtension(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "rows.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("A,B\n1,2\n"), 0o600))
	tbl, err := Load(ctx, csvPath, "")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, tbl.Header)
	require.Len(t, tbl.Records, 1)

	_, err = Load(ctx, filepath.Join(dir, "rows.txt"), "")
	require.ErrorContains(t, err, "unsupported file extension")

	_, err = Load(ctx, filepath.Join(dir, "rows.db"), " ")
	require.ErrorContains(t, err, "needs a query")

	_, err = Load(ctx, filepath.Join(dir, "missing.csv"), "")
	require.Error(t, err)
}

func TestLoadSQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "ledger.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `CREATE TABLE tx (posted TEXT, amount REAL, note TEXT)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO tx VALUES ('2024-01-15', 12.5, 'lunch'), ('2024-02-01', 3, NULL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	tbl, err := Load(ctx, path, "SELECT posted, amount, note FROM tx ORDER BY posted")
	require.NoError(t, err)
	require.Equal(t, []string{"posted", "amount", "note"}, tbl.Header)
	require.Equal(t, [][]string{
		{"2024-01-15", "12.5", "lunch"},
		{"2024-02-01", "3", ""},
	}, tbl.Records)

	_, err = LoadSQLite(ctx, path, "SELECT nope FROM tx")
	require.Error(t, err)

	_, err = LoadSQLite(ctx, filepath.Join(t.TempDir(), "absent.db"), "SELECT 1")
	require.Error(t, err)
}
