package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cafedesk/pkg/storage"
)

func TestLocalDiskRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	disk := storage.NewLocal(root)

	require.NoError(t, disk.Put(ctx, "backups/a.sqlite", []byte("hello")))
	require.NoError(t, disk.PutStream(ctx, "backups/b.sqlite", strings.NewReader("world!")))

	data, err := os.ReadFile(filepath.Join(root, "backups", "b.sqlite"))
	require.NoError(t, err)
	assert.Equal(t, "world!", string(data))

	size, err := disk.Size(ctx, "backups/b.sqlite")
	require.NoError(t, err)
	assert.EqualValues(t, 6, size)

	modified, err := disk.LastModified(ctx, "backups/b.sqlite")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), modified, time.Minute)

	_, err = disk.LastModified(ctx, "backups/missing.sqlite")
	assert.Error(t, err)

	files, err := disk.Files(ctx, "backups")
	require.NoError(t, err)
	assert.Equal(t, []string{"backups/a.sqlite", "backups/b.sqlite"}, files)

	require.NoError(t, disk.Delete(ctx, "backups/a.sqlite"))
	require.NoError(t, disk.Delete(ctx, "backups/a.sqlite"))
	assert.NoFileExists(t, filepath.Join(root, "backups", "a.sqlite"))
}

func TestLocalDiskMissingDirectoryListsEmpty(t *testing.T) {
	files, err := storage.NewLocal(t.TempDir()).Files(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLocalDiskLeavesNoPartialFiles(t *testing.T) {
	root := t.TempDir()
	disk := storage.NewLocal(root)
	require.NoError(t, disk.Put(context.Background(), "x/data.bin", []byte{1, 2, 3}))

	entries, err := os.ReadDir(filepath.Join(root, "x"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "data.bin", entries[0].Name())
}

func TestManagerUse(t *testing.T) {
	m := storage.NewManager("local")
	_, err := m.Default()
	assert.Error(t, err)

	m.Register("local", storage.NewLocal(t.TempDir()))
	d, err := m.Default()
	require.NoError(t, err)
	assert.NotNil(t, d)
	assert.Equal(t, []string{"local"}, m.Names())

	_, err = m.Use("s3")
	assert.ErrorContains(t, err, `disk "s3" is not configured`)
}
