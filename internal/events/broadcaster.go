// Package events fans session events out to interested listeners: the
// interactive terminal, the status API websocket and the metrics recorder.
package events

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/MiniOS/internal/shared/id"
)

// Event types
const (
	TypeNotification = "notification"
	TypeCommand      = "command"
	TypeAward        = "award"
	TypeShutdown     = "shutdown"
)

// Event is one broadcast message
type Event struct {
	ID        id.EventID `json:"id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	Points    int        `json:"points,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// Recorder observes published events, e.g. for metrics
type Recorder interface {
	RecordEvent(eventType string)
	SetSubscribers(n int)
}

// Broadcaster manages subscribers and publishes events.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	buffer      int
	recorder    Recorder
}

// NewBroadcaster creates a broadcaster whose subscriber channels hold
// buffer pending events.
func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = 64
	}
	return &Broadcaster{
		subscribers: make(map[chan Event]struct{}),
		buffer:      buffer,
	}
}

// WithRecorder attaches a metrics recorder
func (b *Broadcaster) WithRecorder(r Recorder) *Broadcaster {
	b.recorder = r
	return b
}

// Subscribe adds a new subscriber and returns its event channel.
// The caller must call Unsubscribe when done.
func (b *Broadcaster) Subscribe() chan Event {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	n := len(b.subscribers)
	b.mu.Unlock()

	if b.recorder != nil {
		b.recorder.SetSubscribers(n)
	}
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
	n := len(b.subscribers)
	b.mu.Unlock()

	if b.recorder != nil {
		b.recorder.SetSubscribers(n)
	}
}

// Publish sends an event to all subscribers. Non-blocking: drops events
// for slow consumers.
func (b *Broadcaster) Publish(event Event) {
	if event.ID == "" {
		event.ID = id.NewEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
	b.mu.RUnlock()

	if b.recorder != nil {
		b.recorder.RecordEvent(event.Type)
	}
}

// Count returns the current number of subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
