package events

import "sync"

// replay remembers the most recent notified value so late listeners can be
// brought up to date. The zero value does not replay anything.
type replay[T any] struct {
	enabled bool
	value   T
	set     bool
}

func (r *replay[T]) record(value T) {
	if !r.enabled {
		return
	}
	r.value = value
	r.set = true
}

// latest returns the remembered value, if any. Must be called with the owning
// event's lock held.
func (r *replay[T]) latest() (T, bool) {
	if !r.enabled || !r.set {
		var zero T
		return zero, false
	}
	return r.value, true
}

// registry is the id-keyed listener table shared by both event kinds.
type registry[L any] struct {
	mu        sync.RWMutex
	listeners map[uint64]L
	nextID    uint64
}

func newRegistry[L any]() registry[L] {
	return registry[L]{listeners: make(map[uint64]L)}
}

// add must be called with mu held
func (r *registry[L]) add(listener L) uint64 {
	id := r.nextID
	r.nextID++
	r.listeners[id] = listener
	return id
}

func (r *registry[L]) remover(id uint64) func() {
	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// snapshot must be called with mu held
func (r *registry[L]) snapshot() []L {
	out := make([]L, 0, len(r.listeners))
	for _, l := range r.listeners {
		out = append(out, l)
	}
	return out
}

func (r *registry[L]) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}
