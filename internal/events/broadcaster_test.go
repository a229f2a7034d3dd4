package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	mu          sync.Mutex
	events      map[string]int
	subscribers int
}

func (r *countingRecorder) RecordEvent(eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[eventType]++
}

func (r *countingRecorder) SetSubscribers(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = n
}

func TestPublishSubscribe(t *testing.T) {
	b := NewBroadcaster(4)
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: TypeNotification, Message: "System scan: All services normal"})

	ev := <-ch
	assert.Equal(t, TypeNotification, ev.Type)
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster(1)
	ch := b.Subscribe()
	assert.Equal(t, 1, b.Count())

	b.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.Count())

	// Second unsubscribe is harmless
	b.Unsubscribe(ch)
}

func TestPublishDropsForSlowConsumer(t *testing.T) {
	b := NewBroadcaster(1)
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: TypeCommand, Message: "ls"})
	b.Publish(Event{Type: TypeCommand, Message: "ps"})

	ev := <-ch
	assert.Equal(t, "ls", ev.Message)
	assert.Len(t, ch, 0)
}

func TestRecorder(t *testing.T) {
	rec := &countingRecorder{events: map[string]int{}}
	b := NewBroadcaster(8).WithRecorder(rec)

	ch := b.Subscribe()
	b.Publish(Event{Type: TypeAward})
	b.Publish(Event{Type: TypeAward})
	b.Publish(Event{Type: TypeShutdown})

	rec.mu.Lock()
	require.Equal(t, 1, rec.subscribers)
	assert.Equal(t, 2, rec.events[TypeAward])
	assert.Equal(t, 1, rec.events[TypeShutdown])
	rec.mu.Unlock()

	b.Unsubscribe(ch)
	rec.mu.Lock()
	assert.Equal(t, 0, rec.subscribers)
	rec.mu.Unlock()
}
