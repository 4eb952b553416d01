package client

import "sync"

// DefaultBufferCapacity bounds the pre-connect queue when the config
// does not say otherwise.
const DefaultBufferCapacity = 32

// preConnectBuffer queues utterances typed before the session is
// ready. At capacity the oldest entry is dropped; the newest thing the
// customer said is the one worth keeping.
type preConnectBuffer struct {
	mu      sync.Mutex
	items   []string
	cap     int
	dropped int
}

func newPreConnectBuffer(capacity int) *preConnectBuffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	return &preConnectBuffer{cap: capacity}
}

// add queues text, evicting the oldest entry at capacity.
func (b *preConnectBuffer) add(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) >= b.cap {
		b.items = b.items[1:]
		b.dropped++
	}
	b.items = append(b.items, text)
}

// drain empties the queue and returns its contents in arrival order.
func (b *preConnectBuffer) drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := b.items
	b.items = nil
	return items
}

// pending reports how many utterances are waiting.
func (b *preConnectBuffer) pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
