// Package metrics provides Prometheus instrumentation for the café tool.
//
// The CLI is short-lived, so nothing is scraped. Instead `cafe metrics`
// prints the registry and, when METRICS_TEXTFILE is set, every command
// leaves a snapshot for the node_exporter textfile collector:
//
//	defer metrics.ObserveOperation("order.confirm", time.Now())
//	metrics.WriteTextfile("/var/lib/node_exporter/cafe.prom")
package metrics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "cafe"

var (
	// OrdersConfirmed counts orders persisted with status Created.
	OrdersConfirmed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "confirmed_total",
		Help:      "Total number of confirmed orders.",
	})

	// OrderRevenue sums order totals at confirmation.
	OrderRevenue = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "revenue_total",
		Help:      "Sum of confirmed order totals.",
	})

	// OrdersRejected counts confirmations that persisted nothing.
	OrdersRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "rejected_total",
			Help:      "Total number of rejected order confirmations.",
		},
		[]string{"reason"}, // "empty" | "validation" | "not_found" | "insufficient_stock" | "persistence"
	)

	// OrderStatusChanges counts applied status transitions.
	OrderStatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "status_changes_total",
			Help:      "Total number of order status transitions.",
		},
		[]string{"status"},
	)

	// StockLevel is the last ledger value seen per ingredient.
	StockLevel = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stock",
			Name:      "quantity",
			Help:      "Quantity on hand per ingredient.",
		},
		[]string{"ingredient", "unit"},
	)

	// AuditWrites counts audit inserts by result.
	AuditWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "writes_total",
			Help:      "Total audit log writes.",
		},
		[]string{"result"}, // "ok" | "failed"
	)

	// Backups counts start-up and manual backups by result.
	Backups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backup",
			Name:      "runs_total",
			Help:      "Total database backup attempts.",
		},
		[]string{"result"}, // "ok" | "failed" | "skipped"
	)

	// OperationDuration tracks service call latency.
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of domain operations in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"operation"},
	)
)

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry holds every collector above plus the Go runtime ones.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		OrdersConfirmed,
		OrderRevenue,
		OrdersRejected,
		OrderStatusChanges,
		StockLevel,
		AuditWrites,
		Backups,
		OperationDuration,
	)
}

// ObserveOperation records an operation duration with a simple timer:
//
//	defer metrics.ObserveOperation("order.confirm", time.Now())
func ObserveOperation(operation string, start time.Time) {
	OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ─────────────────────────────────────────────
// Exposition
// ─────────────────────────────────────────────

// WriteText writes the registry in the Prometheus text format.
func WriteText(w io.Writer) error {
	families, err := DefaultRegistry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteTextfile atomically replaces path with a snapshot of the registry.
func WriteTextfile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("metrics: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("metrics: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteText(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("metrics: close: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("metrics: chmod: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
