// Package livefeed fans out collection-change notifications to the SSE
// watch streams. A notification carries no payload: subscribers re-query
// their collection and push the full current result set, so a missed or
// coalesced wake-up never loses data.
package livefeed

import "sync"

// Collection names a watchable owner-scoped collection.
type Collection string

const (
	CollectionExpenses  Collection = "expenses"
	CollectionInventory Collection = "inventory"
	CollectionDiary     Collection = "diary"
)

type topic struct {
	ownerID    string
	collection Collection
}

// Hub tracks subscribers per (owner, collection) pair. Each subscriber owns
// exactly one channel; channels are never shared between streams.
type Hub struct {
	mu   sync.Mutex
	subs map[topic]map[chan struct{}]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[topic]map[chan struct{}]struct{})}
}

// Subscribe registers a listener for changes to one owner's collection.
// The returned channel receives a wake-up per change; pending wake-ups
// coalesce. The cancel func tears the subscription down and must be called
// when the stream ends.
func (h *Hub) Subscribe(ownerID string, c Collection) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	key := topic{ownerID: ownerID, collection: c}

	h.mu.Lock()
	set, ok := h.subs[key]
	if !ok {
		set = make(map[chan struct{}]struct{})
		h.subs[key] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[key]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, key)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Notify wakes every subscriber of the owner's collection. The send never
// blocks: a subscriber that already has a pending wake-up will re-query
// once and observe the latest state anyway.
func (h *Hub) Notify(ownerID string, c Collection) {
	key := topic{ownerID: ownerID, collection: c}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
