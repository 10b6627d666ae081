package metrics_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cafedesk/pkg/metrics"
)

func TestCountersAreRegistered(t *testing.T) {
	before := testutil.ToFloat64(metrics.OrdersRejected.WithLabelValues("empty"))
	metrics.OrdersRejected.WithLabelValues("empty").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.OrdersRejected.WithLabelValues("empty")))

	var buf bytes.Buffer
	require.NoError(t, metrics.WriteText(&buf))
	assert.Contains(t, buf.String(), `cafe_orders_rejected_total{reason="empty"}`)
	assert.Contains(t, buf.String(), "go_goroutines")
}

func TestObserveOperation(t *testing.T) {
	metrics.ObserveOperation("test.op", time.Now().Add(-10*time.Millisecond))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.OperationDuration, "cafe_operation_duration_seconds"))
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textfile", "cafe.prom")
	metrics.Backups.WithLabelValues("ok").Inc()

	require.NoError(t, metrics.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `cafe_backup_runs_total{result="ok"}`)

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
