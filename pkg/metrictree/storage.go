package metrictree

import (
	"github.com/google/uuid"
)

// Storage is a leaf node holding one Field with no synchronization.
//
// Storage assumes a single writer: concurrent Commit and Visit on the
// same instance is undefined behavior. Callers that cannot serialize
// access externally should use AtomicStorage instead.
//
// A Storage node may still have children of its own; leaves are not
// restricted to the bottom of the tree.
type Storage[T any] struct {
	baseNode
	root  *Root
	field Field[T]
}

// NewStorage creates an unsynchronized storage node under root.
// The caller is the sole strong owner of the returned node; it is not
// reachable by traversal until appended somewhere under root.
//
// Panics if root is nil.
func NewStorage[T any](root *Root) *Storage[T] {
	if root == nil {
		panic("metrictree: root cannot be nil")
	}
	s := &Storage[T]{root: root}
	s.id = uuid.New().String()
	s.cell = &refCell{node: s}
	return s
}

// Commit replaces the held value wholesale, with no synchronization.
// The caller guarantees no concurrent access to this node for the
// duration of the call.
func (s *Storage[T]) Commit(value T) {
	s.field.Set(value)
	s.root.committed(s.id)
}

// Value returns the held value, with no synchronization.
func (s *Storage[T]) Value() T {
	return s.field.Value()
}

// visit renders the held field, then traverses children.
func (s *Storage[T]) visit(v *visitor) error {
	v.prefix()
	s.field.render(v)
	v.suffix()
	if v.err != nil {
		return v.err
	}
	return s.visitChildren(v)
}

// AtomicStorage is a leaf node holding one Field whose reads and writes
// serialize against the lock owned by the Root that created it. All
// AtomicStorage nodes under one Root share that single lock, so a visit
// can never observe a torn write, at the cost of global serialization
// per Root.
type AtomicStorage[T any] struct {
	baseNode
	root  *Root
	field Field[T]
}

// NewAtomicStorage creates a lock-protected storage node under root.
// The node retains a reference to root's lock rather than owning its
// own, so the lock outlives every atomic node created through the root.
//
// Panics if root is nil.
func NewAtomicStorage[T any](root *Root) *AtomicStorage[T] {
	if root == nil {
		panic("metrictree: root cannot be nil")
	}
	s := &AtomicStorage[T]{root: root}
	s.id = uuid.New().String()
	s.cell = &refCell{node: s}
	return s
}

// Commit replaces the held value while holding the Root's lock.
// Commits and renders from different goroutines are mutually exclusive
// per Root, not per node.
func (s *AtomicStorage[T]) Commit(value T) {
	s.root.mu.Lock()
	s.field.Set(value)
	s.root.mu.Unlock()

	s.root.committed(s.id)
}

// Value returns the held value while holding the Root's lock.
func (s *AtomicStorage[T]) Value() T {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	return s.field.Value()
}

// visit renders the held field, then traverses children. The field is
// copied under the Root's lock and rendered outside it, keeping the
// critical section to the value read alone.
func (s *AtomicStorage[T]) visit(v *visitor) error {
	v.prefix()
	s.root.mu.Lock()
	field := s.field
	s.root.mu.Unlock()
	field.render(v)
	v.suffix()
	if v.err != nil {
		return v.err
	}
	return s.visitChildren(v)
}
