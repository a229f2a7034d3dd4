package session

// History is a fixed-capacity ring buffer of raw command lines. When full,
// appending evicts the oldest entry. It is not synchronized; the owning
// Session guards it.
type History struct {
	data  []string
	head  int // index of the oldest entry
	count int
}

// NewHistory creates a history holding at most capacity entries
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		data: make([]string, capacity),
	}
}

// Append adds a command, evicting the oldest when at capacity
func (h *History) Append(raw string) {
	size := len(h.data)
	tail := (h.head + h.count) % size
	h.data[tail] = raw

	if h.count == size {
		h.head = (h.head + 1) % size
		return
	}
	h.count++
}

// Entries returns the buffered commands oldest first
func (h *History) Entries() []string {
	out := make([]string, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.data[(h.head+i)%len(h.data)]
	}
	return out
}

// Len returns the number of buffered commands
func (h *History) Len() int {
	return h.count
}

// Cap returns the capacity
func (h *History) Cap() int {
	return len(h.data)
}
