package metrictree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/metrictree/pkg/metrictree/event"
	"github.com/randalmurphal/metrictree/pkg/metrictree/snapshot"
)

// TestSnapshot_MatchesVisit verifies an archived snapshot is byte-identical
// to what Visit writes.
func TestSnapshot_MatchesVisit(t *testing.T) {
	root := NewRoot()
	s := NewAtomicStorage[string](root)
	s.Commit("hello")
	root.Append(s)

	store := snapshot.NewMemoryStore()
	defer store.Close()

	require.NoError(t, root.Snapshot(store))

	saved, err := store.Latest(root.ID())
	require.NoError(t, err)
	assert.Equal(t, renderReport(t, root), string(saved))
}

// TestSnapshot_Sequences verifies successive snapshots archive the tree
// as it evolves.
func TestSnapshot_Sequences(t *testing.T) {
	root := NewRoot()
	s := NewAtomicStorage[string](root)
	root.Append(s)

	store := snapshot.NewMemoryStore()
	defer store.Close()

	s.Commit("hello")
	require.NoError(t, root.Snapshot(store))

	s.Commit("bye")
	require.NoError(t, root.Snapshot(store))

	infos, err := store.List(root.ID())
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, 1, infos[0].Sequence)
	assert.Equal(t, 2, infos[1].Sequence)

	first, err := store.Load(root.ID(), 1)
	require.NoError(t, err)
	assert.Contains(t, string(first), " -  hello\n")

	second, err := store.Load(root.ID(), 2)
	require.NoError(t, err)
	assert.Contains(t, string(second), " -  bye\n")
}

// TestSnapshot_ClosedStore verifies store failures propagate.
func TestSnapshot_ClosedStore(t *testing.T) {
	root := NewRoot()
	s := NewAtomicStorage[string](root)
	s.Commit("hello")
	root.Append(s)

	store := snapshot.NewMemoryStore()
	require.NoError(t, store.Close())

	err := root.Snapshot(store)
	assert.ErrorIs(t, err, snapshot.ErrStoreClosed)
}

// TestEvents_CommitAndReport verifies a root wired to a bus publishes
// commit and report events.
func TestEvents_CommitAndReport(t *testing.T) {
	bus := event.NewBus(event.DefaultBusConfig)
	defer bus.Close()

	received := make(chan event.Event, 16)
	bus.SubscribeAll(func(evt event.Event) {
		received <- evt
	})

	root := NewRoot(WithEventBus(bus))
	s := NewAtomicStorage[string](root)
	root.Append(s)

	s.Commit("hello")

	evt := waitEvent(t, received)
	assert.Equal(t, event.TypeValueCommitted, evt.Type)
	assert.Equal(t, root.ID(), evt.RootID)
	assert.Equal(t, s.ID(), evt.NodeID)

	_ = renderReport(t, root)

	evt = waitEvent(t, received)
	assert.Equal(t, event.TypeReportEmitted, evt.Type)
	assert.Equal(t, root.ID(), evt.RootID)
	assert.Equal(t, 1, evt.Nodes)
	assert.True(t, evt.Success)
}

// TestEvents_ReportFailure verifies a sink fault is reported as an
// unsuccessful report event.
func TestEvents_ReportFailure(t *testing.T) {
	bus := event.NewBus(event.DefaultBusConfig)
	defer bus.Close()

	received := make(chan event.Event, 16)
	bus.Subscribe([]event.Type{event.TypeReportEmitted}, func(evt event.Event) {
		received <- evt
	})

	root := NewRoot(WithEventBus(bus))
	s := NewAtomicStorage[string](root)
	s.Commit("hello")
	root.Append(s)

	require.Error(t, root.Visit(WithWriter(&failWriter{allow: 0})))

	evt := waitEvent(t, received)
	assert.Equal(t, event.TypeReportEmitted, evt.Type)
	assert.False(t, evt.Success)
}

// waitEvent receives one event or fails the test after a timeout.
func waitEvent(t *testing.T, ch <-chan event.Event) event.Event {
	t.Helper()
	select {
	case evt := <-ch:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return event.Event{}
	}
}
