package metrictree

import (
	"fmt"
	"io"

	"github.com/randalmurphal/metrictree/pkg/metrictree/style"
)

// visitor is the per-traversal rendering state. A visitor serves exactly
// one traversal pass: the header is written when it is created and the
// footer when it is closed, so the report framing stays balanced even
// when the traversal is abandoned by a sink fault.
type visitor struct {
	w     io.Writer
	sty   style.Style
	depth int

	// rendered counts the nodes that produced a report line.
	rendered int

	// err holds the first sink fault. Once set, all further writes are
	// suppressed and the traversal unwinds.
	err error
}

// newVisitor creates a visitor and writes the report header.
func newVisitor(w io.Writer, sty style.Style) *visitor {
	v := &visitor{w: w, sty: sty}
	v.write("header", sty.Header)
	return v
}

// Close writes the report footer and returns the first sink fault, if any.
// The footer is attempted even after a fault so that a partial report is
// still framed.
func (v *visitor) Close() error {
	faulted := v.err
	v.err = nil
	v.write("footer", v.sty.Footer)
	if faulted != nil {
		return faulted
	}
	return v.err
}

// prefix writes the indentation for the current depth followed by the
// leaf marker. Depth 1 carries no indentation.
func (v *visitor) prefix() {
	for i := 1; i < v.depth; i++ {
		v.write("prefix", v.sty.Indent)
	}
	v.write("prefix", v.sty.Marker)
	v.rendered++
}

// suffix terminates a rendered line.
func (v *visitor) suffix() {
	v.write("suffix", v.sty.Suffix)
}

// renderValue writes a value's textual representation to the sink.
func (v *visitor) renderValue(value any) {
	if v.err != nil {
		return
	}
	if _, err := fmt.Fprint(v.w, value); err != nil {
		v.err = &SinkError{Op: "value", Err: err}
	}
}

// write emits a literal report element, recording the first fault.
func (v *visitor) write(op, s string) {
	if v.err != nil {
		return
	}
	if _, err := io.WriteString(v.w, s); err != nil {
		v.err = &SinkError{Op: op, Err: err}
	}
}
