package snapshot

import (
	"sync"
	"time"
)

// MemoryStore is an in-memory snapshot store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]storedSnapshot // rootID -> snapshots in sequence order
	closed bool
}

// storedSnapshot holds one report with its metadata.
type storedSnapshot struct {
	report    []byte
	sequence  int
	timestamp time.Time
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]storedSnapshot),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(rootID string, report []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	snaps := m.data[rootID]
	seq := 1
	if len(snaps) > 0 {
		seq = snaps[len(snaps)-1].sequence + 1
	}

	// Copy to avoid retaining the caller's slice
	stored := make([]byte, len(report))
	copy(stored, report)

	m.data[rootID] = append(snaps, storedSnapshot{
		report:    stored,
		sequence:  seq,
		timestamp: time.Now().UTC(),
	})
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(rootID string, sequence int) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	for _, snap := range m.data[rootID] {
		if snap.sequence == sequence {
			result := make([]byte, len(snap.report))
			copy(result, snap.report)
			return result, nil
		}
	}
	return nil, ErrNotFound
}

// Latest implements Store.
func (m *MemoryStore) Latest(rootID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	snaps := m.data[rootID]
	if len(snaps) == 0 {
		return nil, ErrNotFound
	}

	last := snaps[len(snaps)-1]
	result := make([]byte, len(last.report))
	copy(result, last.report)
	return result, nil
}

// List implements Store.
func (m *MemoryStore) List(rootID string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	snaps := m.data[rootID]
	infos := make([]Info, 0, len(snaps))
	for _, snap := range snaps {
		infos = append(infos, Info{
			RootID:    rootID,
			Sequence:  snap.sequence,
			Timestamp: snap.timestamp,
			Size:      int64(len(snap.report)),
		})
	}
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(rootID string, sequence int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	snaps := m.data[rootID]
	for i, snap := range snaps {
		if snap.sequence == sequence {
			m.data[rootID] = append(snaps[:i:i], snaps[i+1:]...)
			return nil
		}
	}
	return nil
}

// DeleteRoot implements Store.
func (m *MemoryStore) DeleteRoot(rootID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, rootID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the total number of snapshots across all roots.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, snaps := range m.data {
		count += len(snaps)
	}
	return count
}
