package events

// CallbackEvent calls registered functions synchronously on Notify.
// T is the type of the argument passed to callback functions
type CallbackEvent[T any] struct {
	registry[func(T)]
	last replay[T]
}

// NewCallbackEvent creates a new CallbackEvent instance
// sendLastEventOnListen: if true, new listeners are called immediately with
// the last notified value
func NewCallbackEvent[T any](sendLastEventOnListen bool) *CallbackEvent[T] {
	return &CallbackEvent[T]{
		registry: newRegistry[func(T)](),
		last:     replay[T]{enabled: sendLastEventOnListen},
	}
}

// Listen registers callback and returns its deregistration function.
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("callback cannot be nil")
	}

	e.mu.Lock()
	id := e.add(callback)
	value, ok := e.last.latest()
	e.mu.Unlock()

	// outside the lock so the callback may deregister itself
	if ok {
		callback(value)
	}
	return e.remover(id)
}

// Notify calls every registered callback with value. Safe for concurrent use.
func (e *CallbackEvent[T]) Notify(value T) {
	e.mu.Lock()
	e.last.record(value)
	callbacks := e.snapshot()
	e.mu.Unlock()

	for _, callback := range callbacks {
		callback(value)
	}
}

// ListenerCount returns the current number of registered listeners
func (e *CallbackEvent[T]) ListenerCount() int {
	return e.count()
}
