package metrictree

import (
	"errors"
	"fmt"
)

// Sentinel errors for report traversal.
var (
	// ErrSinkFault indicates the report sink rejected a write.
	// A traversal is abandoned at the point of fault; the footer is still
	// attempted so the report framing stays balanced.
	ErrSinkFault = errors.New("report sink write failed")
)

// SinkError wraps a write failure on the report sink.
// It records which part of the report was being written when the sink faulted.
type SinkError struct {
	// Op is the report element that was being written
	// ("header", "prefix", "value", "suffix", "footer").
	Op string
	// Err is the underlying write error.
	Err error
}

// Error implements the error interface.
func (e *SinkError) Error() string {
	return fmt.Sprintf("report sink: write %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SinkError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches ErrSinkFault.
func (e *SinkError) Is(target error) bool {
	return target == ErrSinkFault
}
