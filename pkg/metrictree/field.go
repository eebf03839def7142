package metrictree

import (
	"cmp"
)

// Field is a single typed value cell. It knows how to render itself into
// a report but has no tree structure and no synchronization of its own;
// Storage and AtomicStorage decide how access to it is serialized.
type Field[T any] struct {
	value T
}

// NewField creates a field holding the given initial value.
func NewField[T any](value T) Field[T] {
	return Field[T]{value: value}
}

// Set replaces the contained value wholesale.
func (f *Field[T]) Set(value T) {
	f.value = value
}

// Value returns the contained value.
func (f Field[T]) Value() T {
	return f.value
}

// render writes the value's textual representation to the visitor's sink.
// Rendering never mutates the field.
func (f Field[T]) render(v *visitor) {
	v.renderValue(f.value)
}

// CompareFields orders two fields by their contained values.
// It returns a negative number when a < b, zero when equal, and a
// positive number when a > b.
func CompareFields[T cmp.Ordered](a, b Field[T]) int {
	return cmp.Compare(a.value, b.value)
}
