package directory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

// reloadTimeout bounds a single store reload.
const reloadTimeout = 5 * time.Second

// MemberLister is the slice of store.Members the hub reads from.
type MemberLister interface {
	List(ctx context.Context) ([]domain.Member, error)
}

// Hub is a Source backed by the store. Writers call Notify after a change
// and every subscriber receives a fresh snapshot. Each subscriber has a
// buffer of one: a slow reader only ever sees the latest snapshot.
type Hub struct {
	members MemberLister

	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func NewHub(members MemberLister) *Hub {
	return &Hub{members: members, subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber and immediately queues the current
// store contents.
func (h *Hub) Subscribe(ctx context.Context) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan Event, 1)
	h.subs[id] = ch
	offer(ch, h.load(ctx))

	unsubscribe := sync.OnceFunc(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
		close(ch)
	})
	return ch, unsubscribe
}

// Notify reloads the store and pushes the snapshot (or the load error) to
// every subscriber. The reload is detached from ctx cancellation: a writer
// whose request goes away after its commit must not mark the shared
// directory Unavailable.
func (h *Hub) Notify(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.subs) == 0 {
		return
	}

	ev := h.load(ctx)
	for _, ch := range h.subs {
		offer(ch, ev)
	}
}

// Subscribers is the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) load(ctx context.Context) Event {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reloadTimeout)
	defer cancel()

	members, err := h.members.List(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("directory reload failed", "err", err)
		return Event{Err: fmt.Errorf("list members: %w", err)}
	}
	return Event{Members: members}
}

// offer replaces whatever is buffered in ch with ev. Callers hold h.mu, so
// nothing else sends on ch concurrently.
func offer(ch chan Event, ev Event) {
	for {
		select {
		case ch <- ev:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
