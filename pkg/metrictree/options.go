package metrictree

import (
	"io"
	"log/slog"
	"os"

	"github.com/randalmurphal/metrictree/pkg/metrictree/event"
	"github.com/randalmurphal/metrictree/pkg/metrictree/observability"
	"github.com/randalmurphal/metrictree/pkg/metrictree/style"
)

// Option configures a Root at construction time.
type Option func(*Root)

// WithLogger attaches a structured logger to the root.
// Report and commit activity is logged with root_id and node_id fields.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	root := metrictree.NewRoot(metrictree.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		r.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics recording.
// Default: disabled (no-op recorder).
//
// The recorder uses the global OTel meter provider; configure it before
// creating the root.
func WithMetrics(enabled bool) Option {
	return func(r *Root) {
		if enabled {
			r.metrics = observability.NewMetricsRecorder()
		} else {
			r.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry span creation per report traversal.
// Default: disabled.
func WithTracing(enabled bool) Option {
	return func(r *Root) {
		r.tracing = enabled
		if enabled {
			r.spans = observability.NewSpanManager()
		} else {
			r.spans = observability.NoopSpanManager{}
		}
	}
}

// WithEventBus attaches an event bus to the root. Commit and report
// events are published to it without blocking.
func WithEventBus(bus *event.Bus) Option {
	return func(r *Root) {
		r.bus = bus
	}
}

// visitConfig holds per-traversal configuration.
type visitConfig struct {
	w   io.Writer
	sty style.Style
}

// defaultVisitConfig returns the default traversal configuration:
// the classic report style written to stdout.
func defaultVisitConfig() visitConfig {
	return visitConfig{
		w:   os.Stdout,
		sty: style.Classic,
	}
}

// VisitOption configures a single report traversal.
type VisitOption func(*visitConfig)

// WithWriter redirects the report to the given sink.
// Default: os.Stdout.
func WithWriter(w io.Writer) VisitOption {
	return func(c *visitConfig) {
		if w != nil {
			c.w = w
		}
	}
}

// WithStyle selects the report framing style.
// Default: style.Classic.
func WithStyle(s style.Style) VisitOption {
	return func(c *visitConfig) {
		c.sty = s
	}
}
