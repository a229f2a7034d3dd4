// Package id generates identifiers for sessions, status API requests and
// broadcast events.
//
// Session and request IDs are prefixed ULIDs drawn from a monotonic source,
// so IDs minted in the same millisecond still sort in creation order.
// Event IDs are random UUIDs. Process IDs are not minted here: the process
// table owns its pid counter.
package id

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// SessionID identifies a shell session
type SessionID string

// RequestID identifies a status API request
type RequestID string

// EventID identifies a broadcast event
type EventID string

const (
	SessionPrefix = "sess"
	RequestPrefix = "req"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

func next(prefix string) string {
	mu.Lock()
	defer mu.Unlock()
	return fmt.Sprintf("%s_%s", prefix, ulid.MustNew(ulid.Timestamp(time.Now()), entropy))
}

// NewSessionID generates a new session ID
func NewSessionID() SessionID {
	return SessionID(next(SessionPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(next(RequestPrefix))
}

// NewEventID generates a new event ID
func NewEventID() EventID {
	return EventID(uuid.NewString())
}

func (id SessionID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }
func (id EventID) String() string   { return string(id) }

// Split separates a prefixed ID into its prefix and ULID
func Split(s string) (prefix string, value ulid.ULID, err error) {
	prefix, raw, ok := strings.Cut(s, "_")
	if !ok {
		return "", ulid.ULID{}, fmt.Errorf("id %q has no prefix", s)
	}
	value, err = ulid.ParseStrict(raw)
	if err != nil {
		return "", ulid.ULID{}, fmt.Errorf("id %q: %w", s, err)
	}
	return prefix, value, nil
}
