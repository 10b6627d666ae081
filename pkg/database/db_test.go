package database_test

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cafedesk/pkg/database"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
)

func TestOpenSQLiteEnablesForeignKeys(t *testing.T) {
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "cafe.sqlite"))
	require.NoError(t, err)
	defer database.Close(db)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestSQLiteFile(t *testing.T) {
	cases := []struct {
		dsn    string
		path   string
		onDisk bool
	}{
		{"cafedb.sqlite", "cafedb.sqlite", true},
		{"file:data/cafe.db?_foreign_keys=on", "data/cafe.db", true},
		{":memory:", "", false},
		{"file:test?mode=memory&cache=shared", "", false},
	}
	for _, tc := range cases {
		path, ok := database.SQLiteFile(tc.dsn)
		assert.Equal(t, tc.onDisk, ok, tc.dsn)
		assert.Equal(t, tc.path, path, tc.dsn)
	}
}

func TestFailedSQLIsLoggedThroughContextLogger(t *testing.T) {
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "cafe.sqlite"))
	require.NoError(t, err)
	defer database.Close(db)

	var buf bytes.Buffer
	ctx := logger.InjectLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)).With("run_id", "abc"))

	err = db.WithContext(ctx).Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "sql failed")
	assert.Contains(t, out, "no_such_table")
	assert.Contains(t, out, "run_id=abc")
}

func TestSuccessfulSQLIsQuietAtWarn(t *testing.T) {
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "cafe.sqlite"))
	require.NoError(t, err)
	defer database.Close(db)

	var buf bytes.Buffer
	ctx := logger.InjectLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	var one int
	require.NoError(t, db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error)
	assert.Empty(t, buf.String())
}
