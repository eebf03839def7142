// Package snapshot provides persistent archives for emitted reports.
//
// A metrics tree exists to be dumped periodically; the snapshot store
// keeps those dumps. Each saved snapshot is the full rendered report of
// one root at one point in time, keyed by the root's ID and a per-root
// monotonically increasing sequence number.
package snapshot

import (
	"errors"
	"time"
)

// Store archives rendered reports.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a report snapshot for a root, assigning the next
	// sequence number for that root.
	Save(rootID string, report []byte) error

	// Load retrieves a snapshot by sequence number.
	// Returns ErrNotFound if the snapshot doesn't exist.
	Load(rootID string, sequence int) ([]byte, error)

	// Latest retrieves the most recent snapshot for a root.
	// Returns ErrNotFound if the root has no snapshots.
	Latest(rootID string) ([]byte, error)

	// List returns metadata for all snapshots of a root, ordered by sequence.
	// Returns an empty slice (not an error) if the root has no snapshots.
	List(rootID string) ([]Info, error)

	// Delete removes a specific snapshot.
	// Returns nil if the snapshot doesn't exist.
	Delete(rootID string, sequence int) error

	// DeleteRoot removes all snapshots for a root.
	// Returns nil if the root has no snapshots.
	DeleteRoot(rootID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides snapshot metadata without loading the report body.
type Info struct {
	RootID    string
	Sequence  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound indicates a snapshot doesn't exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("snapshot store closed")
)
