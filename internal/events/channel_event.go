package events

// ChannelEvent fans values out to registered channels.
// T is the type of the value sent to channels
type ChannelEvent[T any] struct {
	registry[chan<- T]
	last replay[T]
}

// NewChannelEvent creates a new ChannelEvent instance
// sendLastEventOnListen: if true, the last notified value is sent to every
// new listener as soon as it registers
func NewChannelEvent[T any](sendLastEventOnListen bool) *ChannelEvent[T] {
	return &ChannelEvent[T]{
		registry: newRegistry[chan<- T](),
		last:     replay[T]{enabled: sendLastEventOnListen},
	}
}

// Listen registers a channel and returns its deregistration function.
// Sends never block: a full channel misses the value.
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}

	e.mu.Lock()
	id := e.add(ch)
	value, ok := e.last.latest()
	e.mu.Unlock()

	if ok {
		trySend(ch, value)
	}
	return e.remover(id)
}

// Notify sends value to all registered channels. Safe for concurrent use.
func (e *ChannelEvent[T]) Notify(value T) {
	e.mu.Lock()
	e.last.record(value)
	channels := e.snapshot()
	e.mu.Unlock()

	for _, ch := range channels {
		trySend(ch, value)
	}
}

// ListenerCount returns the current number of registered listeners
func (e *ChannelEvent[T]) ListenerCount() int {
	return e.count()
}

func trySend[T any](ch chan<- T, value T) {
	select {
	case ch <- value:
	default:
	}
}
