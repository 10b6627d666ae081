package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cafedesk/pkg/metrics"
	"github.com/shashiranjanraj/cafedesk/pkg/storage"
)

func TestBackupCopiesSQLiteFile(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "cafedb.sqlite")
	require.NoError(t, os.WriteFile(dbFile, []byte("sqlite bytes"), 0o600))

	disk := storage.NewLocal(filepath.Join(dir, "disk"))
	svc := NewBackupService(disk, nil, BackupOptions{Dir: "backups"})
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 8, 30, 5, 0, time.Local) }
	before := testutil.ToFloat64(metrics.Backups.WithLabelValues(BackupOK))

	report := svc.Run(context.Background(), "system", "sqlite", dbFile)
	require.NoError(t, report.Err)
	assert.Equal(t, BackupOK, report.Status)
	assert.Equal(t, "backups/cafedb_backup_20260102_083005.sqlite", report.Path)
	assert.EqualValues(t, len("sqlite bytes"), report.Size)

	content, err := os.ReadFile(filepath.Join(dir, "disk", filepath.FromSlash(report.Path)))
	require.NoError(t, err)
	assert.Equal(t, "sqlite bytes", string(content))

	stored, err := svc.Files(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, report.Path, stored[0].Path)
	assert.EqualValues(t, len("sqlite bytes"), stored[0].Size)
	assert.WithinDuration(t, time.Now(), stored[0].Modified, time.Minute)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.Backups.WithLabelValues(BackupOK)))
}

func TestBackupSkipsWhatItCannotCopy(t *testing.T) {
	disk := storage.NewLocal(t.TempDir())
	svc := NewBackupService(disk, nil, BackupOptions{Dir: "backups"})
	ctx := context.Background()

	assert.Equal(t, BackupSkipped, svc.Run(ctx, "system", "postgres", "host=db").Status)
	assert.Equal(t, BackupSkipped, svc.Run(ctx, "system", "sqlite", "file:x?mode=memory&cache=shared").Status)
	assert.Equal(t, BackupSkipped, svc.Run(ctx, "system", "sqlite", filepath.Join(t.TempDir(), "missing.sqlite")).Status)

	files, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestBackupPrunesOldest(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "cafedb.sqlite")
	require.NoError(t, os.WriteFile(dbFile, []byte("x"), 0o600))

	disk := storage.NewLocal(filepath.Join(dir, "disk"))
	require.NoError(t, disk.Put(context.Background(), "backups/notes.txt", []byte("keep me")))

	svc := NewBackupService(disk, nil, BackupOptions{Dir: "backups", Keep: 2})
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	for i := 0; i < 3; i++ {
		require.Equal(t, BackupOK, svc.Run(context.Background(), "system", "sqlite", dbFile).Status)
	}

	files, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"backups/cafedb_backup_20260101_000200.sqlite",
		"backups/cafedb_backup_20260101_000300.sqlite",
	}, files)
	assert.FileExists(t, filepath.Join(dir, "disk", "backups", "notes.txt"))
}
