package metrictree

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// Shared fixtures used across tests.

const (
	classicHeader = " -!- R E P O R T -!-\n"
	classicFooter = " -@- _ _ _ _ _ _ -@-\n\n\n"
)

// renderReport visits root into a buffer and returns the full report text.
func renderReport(t *testing.T, root *Root, opts ...VisitOption) string {
	t.Helper()
	var buf bytes.Buffer
	opts = append(opts, WithWriter(&buf))
	require.NoError(t, root.Visit(opts...))
	return buf.String()
}

// reportBody strips the classic header and footer, leaving only value lines.
func reportBody(t *testing.T, report string) string {
	t.Helper()
	require.True(t, len(report) >= len(classicHeader)+len(classicFooter),
		"report too short: %q", report)
	require.Equal(t, classicHeader, report[:len(classicHeader)])
	require.Equal(t, classicFooter, report[len(report)-len(classicFooter):])
	return report[len(classicHeader) : len(report)-len(classicFooter)]
}

// errSink is the failure injected by failWriter.
var errSink = errors.New("sink unavailable")

// failWriter succeeds for the first allow writes, then fails every write.
type failWriter struct {
	allow   int
	written bytes.Buffer
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.allow <= 0 {
		return 0, errSink
	}
	w.allow--
	return w.written.Write(p)
}
