package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records metrictree metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordReport records a report traversal with its duration,
	// the number of nodes rendered, and error status.
	RecordReport(ctx context.Context, rootID string, nodeCount int, duration time.Duration, err error)

	// RecordCommit records a value commit on a storage node.
	RecordCommit(ctx context.Context, rootID, nodeID string)

	// RecordSnapshot records a report snapshot save.
	RecordSnapshot(ctx context.Context, rootID string, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	reports       metric.Int64Counter
	reportLatency metric.Float64Histogram
	reportNodes   metric.Int64Histogram
	reportErrors  metric.Int64Counter
	commits       metric.Int64Counter
	snapshotSize  metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("metrictree")

	reports, err := meter.Int64Counter("metrictree.report.runs",
		metric.WithDescription("Number of report traversals"),
	)
	if err != nil {
		return nil, err
	}

	reportLatency, err := meter.Float64Histogram("metrictree.report.latency_ms",
		metric.WithDescription("Report traversal latency in milliseconds"),
	)
	if err != nil {
		return nil, err
	}

	reportNodes, err := meter.Int64Histogram("metrictree.report.nodes",
		metric.WithDescription("Number of nodes rendered per report"),
	)
	if err != nil {
		return nil, err
	}

	reportErrors, err := meter.Int64Counter("metrictree.report.errors",
		metric.WithDescription("Number of report traversals that failed"),
	)
	if err != nil {
		return nil, err
	}

	commits, err := meter.Int64Counter("metrictree.commit.count",
		metric.WithDescription("Number of value commits"),
	)
	if err != nil {
		return nil, err
	}

	snapshotSize, err := meter.Int64Histogram("metrictree.snapshot.size_bytes",
		metric.WithDescription("Size of saved report snapshots in bytes"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		reports:       reports,
		reportLatency: reportLatency,
		reportNodes:   reportNodes,
		reportErrors:  reportErrors,
		commits:       commits,
		snapshotSize:  snapshotSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordReport records a report traversal.
func (m *otelMetrics) RecordReport(ctx context.Context, rootID string, nodeCount int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("root_id", rootID),
	}

	m.reports.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.reportLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	m.reportNodes.Record(ctx, int64(nodeCount), metric.WithAttributes(attrs...))

	if err != nil {
		m.reportErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordCommit records a value commit.
func (m *otelMetrics) RecordCommit(ctx context.Context, rootID, nodeID string) {
	m.commits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("root_id", rootID),
		attribute.String("node_id", nodeID),
	))
}

// RecordSnapshot records a snapshot save.
func (m *otelMetrics) RecordSnapshot(ctx context.Context, rootID string, sizeBytes int64) {
	m.snapshotSize.Record(ctx, sizeBytes, metric.WithAttributes(
		attribute.String("root_id", rootID),
	))
}
