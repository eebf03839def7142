// Package event provides in-process pub/sub notification for metrics trees.
//
// A Root configured with a Bus publishes an event for every value commit
// and every emitted report. Subscribers receive events on buffered
// channels; delivery is non-blocking and events are dropped (with an
// optional callback) when a subscriber falls behind, so a slow consumer
// can never stall a commit or a traversal.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies a kind of registry event.
type Type string

// Event types published by a Root.
const (
	// TypeValueCommitted is published after a storage node's value is replaced.
	TypeValueCommitted Type = "value.committed"

	// TypeReportEmitted is published after a report traversal completes.
	TypeReportEmitted Type = "report.emitted"
)

// Event is a notification about activity in a metrics tree.
type Event struct {
	// ID uniquely identifies this event.
	ID string `json:"id"`

	// Type is the event kind.
	Type Type `json:"type"`

	// RootID identifies the tree the event originated from.
	RootID string `json:"root_id"`

	// NodeID identifies the storage node for commit events; empty otherwise.
	NodeID string `json:"node_id,omitempty"`

	// Nodes is the number of nodes rendered, for report events.
	Nodes int `json:"nodes,omitempty"`

	// Success reports whether the traversal completed, for report events.
	Success bool `json:"success,omitempty"`

	// Timestamp is when the event was created.
	Timestamp time.Time `json:"timestamp"`
}

// NewCommit creates a value-committed event.
func NewCommit(rootID, nodeID string) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      TypeValueCommitted,
		RootID:    rootID,
		NodeID:    nodeID,
		Timestamp: time.Now().UTC(),
	}
}

// NewReport creates a report-emitted event.
func NewReport(rootID string, nodes int, success bool) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      TypeReportEmitted,
		RootID:    rootID,
		Nodes:     nodes,
		Success:   success,
		Timestamp: time.Now().UTC(),
	}
}
