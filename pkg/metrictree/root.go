package metrictree

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/metrictree/pkg/metrictree/event"
	"github.com/randalmurphal/metrictree/pkg/metrictree/observability"
	"github.com/randalmurphal/metrictree/pkg/metrictree/snapshot"
)

// Root is the ownership anchor of one metrics tree. It is the factory
// through which every node is created, it owns the single lock all
// AtomicStorage nodes under it serialize against, and it is the entry
// point for emitting a report.
//
// A Root renders nothing itself; only its descendants produce report
// lines. Exactly one Root exists per independent tree.
type Root struct {
	baseNode

	// mu is shared by all AtomicStorage nodes created through this root.
	// It is held only for individual value reads and writes, never across
	// a traversal step.
	mu sync.Mutex

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	tracing bool
	bus     *event.Bus
}

// NewRoot creates the ownership anchor for a new metrics tree.
func NewRoot(opts ...Option) *Root {
	r := &Root{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	r.id = uuid.New().String()
	r.cell = &refCell{node: r}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Visit emits a full report of the tree to the configured sink
// (default os.Stdout). The header is written first, every resolvable
// descendant renders one line at its depth in append order, and the
// footer is written on every exit path. Returns the first sink fault.
func (r *Root) Visit(opts ...VisitOption) error {
	cfg := defaultVisitConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return r.report(cfg)
}

// Snapshot renders a report into memory and archives it in store.
// The stored snapshot is byte-identical to what Visit would have
// written to the sink.
func (r *Root) Snapshot(store snapshot.Store, opts ...VisitOption) error {
	var buf bytes.Buffer
	opts = append(opts, WithWriter(&buf))
	if err := r.Visit(opts...); err != nil {
		observability.LogSnapshotError(r.logger, r.id, "render", err)
		return err
	}
	if err := store.Save(r.id, buf.Bytes()); err != nil {
		observability.LogSnapshotError(r.logger, r.id, "save", err)
		return err
	}
	observability.LogSnapshot(r.logger, r.id, buf.Len())
	r.metrics.RecordSnapshot(context.Background(), r.id, int64(buf.Len()))
	return nil
}

// report runs one traversal with full observability.
func (r *Root) report(cfg visitConfig) (err error) {
	ctx := context.Background()
	startTime := time.Now()

	observability.LogReportStart(r.logger, r.id)

	var span trace.Span
	if r.tracing {
		ctx, span = r.spans.StartReportSpan(ctx, r.id)
		defer func() {
			r.spans.EndSpanWithError(span, err)
		}()
	}

	v := newVisitor(cfg.w, cfg.sty)
	err = r.visit(v)
	if cerr := v.Close(); err == nil {
		err = cerr
	}

	duration := time.Since(startTime)
	durationMs := float64(duration.Milliseconds())

	r.metrics.RecordReport(ctx, r.id, v.rendered, duration, err)

	if err != nil {
		observability.LogReportError(r.logger, r.id, err, durationMs)
	} else {
		observability.LogReportComplete(r.logger, r.id, durationMs, v.rendered)
	}

	if r.bus != nil {
		r.bus.Publish(event.NewReport(r.id, v.rendered, err == nil))
	}

	return err
}

// visit implements Node. A Root is a pure structural anchor: it renders
// no line of its own and only traverses its children.
func (r *Root) visit(v *visitor) error {
	return r.visitChildren(v)
}

// committed reports a commit on one of this root's storage nodes to the
// observability hooks and the event bus.
func (r *Root) committed(nodeID string) {
	observability.LogCommit(r.logger, r.id, nodeID)
	r.metrics.RecordCommit(context.Background(), r.id, nodeID)
	if r.bus != nil {
		r.bus.Publish(event.NewCommit(r.id, nodeID))
	}
}
