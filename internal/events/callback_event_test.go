package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

func (r *recorder[T]) add(v T) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

func (r *recorder[T]) got() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.values))
	copy(out, r.values)
	return out
}

func TestNewCallbackEvent(t *testing.T) {
	event := NewCallbackEvent[string](false)
	require.NotNil(t, event)
	assert.Equal(t, 0, event.ListenerCount())
	assert.False(t, event.last.enabled)

	event2 := NewCallbackEvent[int](true)
	require.NotNil(t, event2)
	assert.True(t, event2.last.enabled)
}

func TestCallbackEvent_NotifyAndUnregister(t *testing.T) {
	event := NewCallbackEvent[int](false)
	var rec recorder[int]

	unregister := event.Listen(rec.add)
	assert.Equal(t, 1, event.ListenerCount())

	event.Notify(45)
	event.Notify(44)
	assert.Equal(t, []int{45, 44}, rec.got())

	unregister()
	unregister()
	assert.Equal(t, 0, event.ListenerCount())

	event.Notify(43)
	assert.Equal(t, []int{45, 44}, rec.got())
}

func TestCallbackEvent_Replay(t *testing.T) {
	tests := []struct {
		name   string
		replay bool
		want   []string
	}{
		{"replay enabled", true, []string{"Running", "Paused"}},
		{"replay disabled", false, []string{"Paused"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewCallbackEvent[string](tt.replay)
			event.Notify("Running")

			var rec recorder[string]
			unregister := event.Listen(rec.add)
			defer unregister()

			event.Notify("Paused")
			assert.Equal(t, tt.want, rec.got())
		})
	}
}

func TestCallbackEvent_NoReplayBeforeFirstNotify(t *testing.T) {
	event := NewCallbackEvent[string](true)
	var rec recorder[string]
	unregister := event.Listen(rec.add)
	defer unregister()
	assert.Empty(t, rec.got())
}

func TestCallbackEvent_StructValues(t *testing.T) {
	type snapshot struct {
		Title     string
		Remaining int
	}
	event := NewCallbackEvent[snapshot](true)
	event.Notify(snapshot{Title: "Plank", Remaining: 45})

	var rec recorder[snapshot]
	unregister := event.Listen(rec.add)
	defer unregister()

	require.Len(t, rec.got(), 1)
	assert.Equal(t, "Plank", rec.got()[0].Title)
	assert.Equal(t, 45, rec.got()[0].Remaining)
}

func TestCallbackEvent_UnregisterDuringNotify(t *testing.T) {
	event := NewCallbackEvent[string](false)
	var rec recorder[string]
	var unregister func()
	unregister = event.Listen(func(value string) {
		rec.add(value)
		if value == "close" {
			unregister()
		}
	})

	event.Notify("tick")
	event.Notify("close")
	event.Notify("tick")

	assert.Equal(t, []string{"tick", "close"}, rec.got())
	assert.Equal(t, 0, event.ListenerCount())
}

func TestCallbackEvent_ConcurrentAccess(t *testing.T) {
	event := NewCallbackEvent[int](false)
	var rec recorder[int]
	var wg sync.WaitGroup

	unregisters := make([]func(), 10)
	wg.Add(10)
	for i := 0; i < 10; i++ {
		go func(i int) {
			defer wg.Done()
			unregisters[i] = event.Listen(rec.add)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, event.ListenerCount())

	wg.Add(5)
	for i := 0; i < 5; i++ {
		go func(v int) {
			defer wg.Done()
			event.Notify(v)
		}(i)
	}
	wg.Wait()
	assert.Len(t, rec.got(), 50)

	for _, unregister := range unregisters {
		unregister()
	}
	assert.Equal(t, 0, event.ListenerCount())
}

func TestCallbackEvent_Listen_NilCallback(t *testing.T) {
	event := NewCallbackEvent[string](false)
	assert.Panics(t, func() {
		event.Listen(nil)
	})
}
