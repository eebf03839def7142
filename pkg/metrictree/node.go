package metrictree

import (
	"sync"
)

// Node is implemented by every participant in a metrics tree: the Root
// that anchors the tree and the Storage/AtomicStorage leaves created
// through it. The interface is sealed; nodes can only be created via a
// Root's factory functions.
//
// Parents hold non-owning references to children. Appending a child never
// extends its lifetime: once the child's owner calls Release, every parent
// silently skips it on the next traversal. The same node may be appended
// under several parents, making the structure a DAG of weak edges rather
// than a strict tree. Cycles are not detected; appending a node beneath
// itself produces an unterminating traversal.
type Node interface {
	// ID returns the node's unique identifier.
	ID() string

	// Append records a non-owning reference to child at the end of this
	// node's child list. Insertion order is the traversal and report order.
	Append(child Node)

	// Release drops the node's liveness. Parents that reference the node
	// skip it on subsequent traversals. Release is idempotent.
	Release()

	// Trim prunes dead references from the child list.
	//
	// Trim is a documented future capability and is not implemented.
	// Calling it panics; callers must not depend on partial behavior.
	Trim()

	liveness() *refCell
	visit(v *visitor) error
}

// refCell tracks whether the node it refers to is still owned.
// Parents hold refCells, never Nodes, so a released node is observed
// as absent rather than kept alive.
type refCell struct {
	mu   sync.RWMutex
	node Node
}

// resolve returns the live node, or nil if its owner released it.
func (c *refCell) resolve() Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.node
}

// clear severs the cell from its node. Idempotent.
func (c *refCell) clear() {
	c.mu.Lock()
	c.node = nil
	c.mu.Unlock()
}

// baseNode carries the structure shared by all node kinds: identity,
// liveness, and the ordered list of weak child references.
type baseNode struct {
	id   string
	cell *refCell

	mu       sync.RWMutex
	children []*refCell
}

// ID returns the node's unique identifier.
func (n *baseNode) ID() string {
	return n.id
}

// Append implements Node.
func (n *baseNode) Append(child Node) {
	if child == nil {
		panic("metrictree: child cannot be nil")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.children = append(n.children, child.liveness())
}

// Release implements Node.
func (n *baseNode) Release() {
	n.cell.clear()
}

// Trim implements Node. It always panics: pruning dead references is a
// documented future capability, not a supported operation.
func (n *baseNode) Trim() {
	panic("metrictree: Trim is not implemented")
}

func (n *baseNode) liveness() *refCell {
	return n.cell
}

// snapshotChildren copies the child list so traversal never holds the
// list lock across a recursive step.
func (n *baseNode) snapshotChildren() []*refCell {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if len(n.children) == 0 {
		return nil
	}
	snapshot := make([]*refCell, len(n.children))
	copy(snapshot, n.children)
	return snapshot
}

// visitChildren performs the depth-first traversal over this node's
// children. Depth is incremented for the duration and restored after.
// References that no longer resolve are skipped without a report entry.
func (n *baseNode) visitChildren(v *visitor) error {
	v.depth++
	defer func() { v.depth-- }()

	for _, cell := range n.snapshotChildren() {
		child := cell.resolve()
		if child == nil {
			continue // owner released it
		}
		if err := child.visit(v); err != nil {
			return err
		}
	}
	return nil
}
