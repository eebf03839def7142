package metrictree

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/metrictree/pkg/metrictree/style"
)

// TestVisit_SingleNode renders one committed string at depth 1.
func TestVisit_SingleNode(t *testing.T) {
	root := NewRoot()

	metric := NewAtomicStorage[string](root)
	root.Append(metric)
	metric.Commit("hello")

	body := reportBody(t, renderReport(t, root))
	assert.Equal(t, " -  hello\n", body)
}

// TestVisit_NestedNodes renders a depth-1 string and its depth-2 child.
func TestVisit_NestedNodes(t *testing.T) {
	root := NewRoot()

	metric := NewAtomicStorage[string](root)
	root.Append(metric)
	metric.Commit("hello")

	metric2 := NewAtomicStorage[int](root)
	metric.Append(metric2)
	metric2.Commit(2)

	body := reportBody(t, renderReport(t, root))
	assert.Equal(t, " -  hello\n   -  2\n", body)
}

// TestVisit_Recommit verifies a recommit changes only the affected line.
func TestVisit_Recommit(t *testing.T) {
	root := NewRoot()

	metric := NewAtomicStorage[string](root)
	root.Append(metric)
	metric.Commit("hello")

	metric2 := NewAtomicStorage[int](root)
	metric.Append(metric2)
	metric2.Commit(2)

	assert.Equal(t, " -  hello\n   -  2\n", reportBody(t, renderReport(t, root)))

	metric.Commit("bye")
	assert.Equal(t, " -  bye\n   -  2\n", reportBody(t, renderReport(t, root)))
}

// TestVisit_AfterOwnerReleased verifies the next report omits a node
// whose sole strong owner released it, without error.
func TestVisit_AfterOwnerReleased(t *testing.T) {
	root := NewRoot()

	metric := NewAtomicStorage[string](root)
	root.Append(metric)
	metric.Commit("bye")

	assert.Equal(t, " -  bye\n", reportBody(t, renderReport(t, root)))

	metric.Release()
	assert.Empty(t, reportBody(t, renderReport(t, root)))
}

// TestVisit_Idempotent verifies two visits with no mutation in between
// produce byte-identical reports.
func TestVisit_Idempotent(t *testing.T) {
	root := NewRoot()

	a := NewAtomicStorage[string](root)
	a.Commit("stable")
	root.Append(a)

	b := NewStorage[int](root)
	b.Commit(3)
	a.Append(b)

	first := renderReport(t, root)
	second := renderReport(t, root)
	assert.Equal(t, first, second)
}

// TestVisit_Framing verifies the exact header and footer bytes.
func TestVisit_Framing(t *testing.T) {
	root := NewRoot()
	s := NewAtomicStorage[string](root)
	s.Commit("hello")
	root.Append(s)

	report := renderReport(t, root)
	assert.Equal(t, " -!- R E P O R T -!-\n -  hello\n -@- _ _ _ _ _ _ -@-\n\n\n", report)
}

// TestVisit_SinkFault verifies a failing sink abandons the traversal and
// surfaces the fault to the caller.
func TestVisit_SinkFault(t *testing.T) {
	root := NewRoot()
	s := NewAtomicStorage[string](root)
	s.Commit("hello")
	root.Append(s)

	w := &failWriter{allow: 1} // header succeeds, first prefix write fails
	err := root.Visit(WithWriter(w))
	require.Error(t, err)

	var sinkErr *SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.ErrorIs(t, err, ErrSinkFault)
	assert.ErrorIs(t, err, errSink)
	assert.Equal(t, classicHeader, w.written.String(), "partial report up to the fault")
}

// TestVisit_SinkFault_MidReport verifies a fault partway through leaves
// the earlier lines written and skips the rest.
func TestVisit_SinkFault_MidReport(t *testing.T) {
	root := NewRoot()
	for _, v := range []string{"one", "two"} {
		s := NewAtomicStorage[string](root)
		s.Commit(v)
		root.Append(s)
	}

	// header + first line (marker, value, suffix) = 4 writes
	w := &failWriter{allow: 4}
	err := root.Visit(WithWriter(w))
	require.Error(t, err)
	assert.Equal(t, classicHeader+" -  one\n", w.written.String())
}

// TestVisit_HeaderFault verifies a sink that rejects the very first
// write still surfaces the fault.
func TestVisit_HeaderFault(t *testing.T) {
	root := NewRoot()

	err := root.Visit(WithWriter(&failWriter{allow: 0}))
	require.Error(t, err)

	var sinkErr *SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, "header", sinkErr.Op)
}

// TestVisit_CustomStyle verifies alternate framing styles.
func TestVisit_CustomStyle(t *testing.T) {
	compact := style.Style{
		Name:   "compact",
		Header: "[\n",
		Footer: "]\n",
		Indent: "\t",
		Marker: "* ",
		Suffix: "\n",
	}

	root := NewRoot()
	a := NewAtomicStorage[string](root)
	a.Commit("x")
	root.Append(a)
	b := NewAtomicStorage[int](root)
	b.Commit(1)
	a.Append(b)

	var buf bytes.Buffer
	require.NoError(t, root.Visit(WithWriter(&buf), WithStyle(compact)))
	assert.Equal(t, "[\n* x\n\t* 1\n]\n", buf.String())
}

// TestVisit_WithLogger verifies report logging carries the root's fields.
func TestVisit_WithLogger(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	root := NewRoot(WithLogger(logger))
	s := NewAtomicStorage[string](root)
	s.Commit("hello")
	root.Append(s)

	var out bytes.Buffer
	require.NoError(t, root.Visit(WithWriter(&out)))

	logs := logBuf.String()
	assert.Contains(t, logs, "report completed")
	assert.Contains(t, logs, "root_id="+root.ID())
	assert.Contains(t, logs, "nodes_rendered=1")
}

// TestVisit_SinkFault_Logged verifies failed reports are logged as errors.
func TestVisit_SinkFault_Logged(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	root := NewRoot(WithLogger(logger))
	s := NewAtomicStorage[string](root)
	s.Commit("hello")
	root.Append(s)

	err := root.Visit(WithWriter(&failWriter{allow: 0}))
	require.Error(t, err)
	assert.Contains(t, logBuf.String(), "report failed")
}

// TestCommit_Logged verifies commits emit debug log lines.
func TestCommit_Logged(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	root := NewRoot(WithLogger(logger))
	s := NewAtomicStorage[string](root)
	s.Commit("hello")

	logs := logBuf.String()
	assert.Contains(t, logs, "value committed")
	assert.Contains(t, logs, "node_id="+s.ID())
}

// TestSinkError_Unwrap verifies error chain navigation.
func TestSinkError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := &SinkError{Op: "value", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.ErrorIs(t, err, ErrSinkFault)
	assert.Equal(t, "report sink: write value: disk full", err.Error())
}
