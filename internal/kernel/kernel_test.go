package kernel

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cafedesk/app/services"
	"github.com/shashiranjanraj/cafedesk/pkg/logger"
	"github.com/shashiranjanraj/cafedesk/pkg/metrics"
	"github.com/shashiranjanraj/cafedesk/pkg/runid"
	"github.com/shashiranjanraj/cafedesk/pkg/storage"
	"github.com/shashiranjanraj/cafedesk/pkg/testkit"
)

func newKernel(t *testing.T) *Kernel {
	t.Helper()
	db := testkit.Seeded(t)
	return New(db, storage.NewLocal(t.TempDir()), logger.Discard(), Options{
		Driver:             "sqlite",
		DSN:                testkit.DSN(t),
		JWTSecret:          "kernel-test",
		LowStockThreshold:  10,
		WarnStockThreshold: 20,
		BackupDir:          "backups",
	})
}

func TestKernelConfirmsOrderAndFeedsMetrics(t *testing.T) {
	k := newKernel(t)
	ctx := k.Context(context.Background())

	dishes, err := k.Menu.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, dishes)

	before := testutil.ToFloat64(metrics.OrdersConfirmed)
	_, err = k.Orders.Confirm(ctx, "admin", []services.OrderLine{{DishID: dishes[0].ID, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.OrdersConfirmed))
}

func TestKernelAuthUsesSeededAdmin(t *testing.T) {
	k := newKernel(t)
	ctx := k.Context(context.Background())

	p, token, err := k.Auth.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.True(t, p.Can(services.PermUsers))

	resumed, err := k.Auth.Resume(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, p, resumed)
}

func TestKernelBackupSkipsMemoryDatabase(t *testing.T) {
	k := newKernel(t)
	report := k.RunBackup(context.Background(), "system")
	assert.Equal(t, services.BackupSkipped, report.Status)
}

func TestKernelContextKeepsRunID(t *testing.T) {
	k := newKernel(t)

	ctx := k.Context(context.Background(), "command", "cafe order list")
	id := runid.FromCtx(ctx)
	require.NotEmpty(t, id)

	again := k.Context(ctx, "user", "admin")
	assert.Equal(t, id, runid.FromCtx(again))
}

func TestBootFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(dir, "cafe.sqlite"))
	t.Setenv("STORAGE_DISK", "local")
	t.Setenv("STORAGE_LOCAL_ROOT", filepath.Join(dir, "storage"))
	t.Setenv("BACKUP_DIR", "snapshots")

	type booted struct {
		k   *Kernel
		err error
	}
	done := make(chan booted, 1)
	go func() {
		k, err := Boot(context.Background())
		done <- booted{k, err}
	}()

	var k *Kernel
	select {
	case b := <-done:
		require.NoError(t, b.err)
		k = b.k
	case <-time.After(5 * time.Second):
		t.Fatal("kernel.Boot did not return")
	}
	defer k.Close()

	assert.Equal(t, "sqlite", k.Options.Driver)
	assert.Equal(t, "snapshots", k.Options.BackupDir)

	report := k.RunBackup(context.Background(), "system")
	require.Equal(t, services.BackupOK, report.Status, report.Reason)
	assert.FileExists(t, filepath.Join(dir, "storage", filepath.FromSlash(report.Path)))
}
