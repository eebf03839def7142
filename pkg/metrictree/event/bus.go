package event

import (
	"strconv"
	"sync"
	"sync/atomic"
)

// Handler processes a delivered event.
type Handler func(Event)

// BusConfig configures bus behavior.
type BusConfig struct {
	// BufferSize is the channel buffer size per subscription.
	// Default: 256
	BufferSize int

	// OnDrop is called when an event is dropped because a subscriber's
	// buffer is full.
	OnDrop func(evt Event, subscriberID string)
}

// DefaultBusConfig provides reasonable defaults.
var DefaultBusConfig = BusConfig{
	BufferSize: 256,
}

// Bus is an in-memory pub/sub event bus.
// Publish never blocks; slow subscribers drop events.
type Bus struct {
	config BusConfig

	mu            sync.RWMutex
	subscriptions map[string]*subscription

	nextID atomic.Int64
	closed atomic.Bool
}

// subscription is an internal subscription implementation.
type subscription struct {
	id     string
	types  map[Type]struct{} // nil = all types
	events chan Event
	done   chan struct{}
	bus    *Bus
}

// Subscription represents an active subscription.
type Subscription interface {
	// Unsubscribe removes the subscription and stops delivery.
	Unsubscribe()
}

// NewBus creates a new event bus.
func NewBus(config BusConfig) *Bus {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultBusConfig.BufferSize
	}
	return &Bus{
		config:        config,
		subscriptions: make(map[string]*subscription),
	}
}

// Subscribe creates a subscription for specific event types.
// An empty types slice subscribes to all events.
// Each delivered event is handled on the subscription's own goroutine.
func (b *Bus) Subscribe(types []Type, handler Handler) Subscription {
	if handler == nil {
		panic("event: handler cannot be nil")
	}

	sub := &subscription{
		id:     "sub-" + strconv.FormatInt(b.nextID.Add(1), 10),
		events: make(chan Event, b.config.BufferSize),
		done:   make(chan struct{}),
		bus:    b,
	}
	if len(types) > 0 {
		sub.types = make(map[Type]struct{}, len(types))
		for _, t := range types {
			sub.types[t] = struct{}{}
		}
	}

	b.mu.Lock()
	b.subscriptions[sub.id] = sub
	b.mu.Unlock()

	go func() {
		for {
			select {
			case evt := <-sub.events:
				handler(evt)
			case <-sub.done:
				return
			}
		}
	}()

	return sub
}

// SubscribeAll subscribes to all events.
func (b *Bus) SubscribeAll(handler Handler) Subscription {
	return b.Subscribe(nil, handler)
}

// Publish sends an event to all matching subscribers without blocking.
// Publishing on a closed bus is a no-op.
func (b *Bus) Publish(evt Event) {
	if b.closed.Load() {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscriptions {
		if !sub.matches(evt.Type) {
			continue
		}
		select {
		case sub.events <- evt:
		default:
			if b.config.OnDrop != nil {
				b.config.OnDrop(evt, sub.id)
			}
		}
	}
}

// Close shuts down the bus and all subscriptions.
func (b *Bus) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for id, sub := range b.subscriptions {
		close(sub.done)
		delete(b.subscriptions, id)
	}
}

// matches reports whether the subscription wants events of type t.
func (s *subscription) matches(t Type) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[t]
	return ok
}

// Unsubscribe implements Subscription.
func (s *subscription) Unsubscribe() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	if _, ok := s.bus.subscriptions[s.id]; !ok {
		return
	}
	delete(s.bus.subscriptions, s.id)
	close(s.done)
}
