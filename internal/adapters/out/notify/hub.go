// Package notify delivers notifications: it stores them in the recipient's
// inbox and pushes them to the recipient's open event streams.
package notify

import (
	"sync"
	"time"

	"servicedesk/internal/core/domain/model/kernel"
	"servicedesk/internal/core/domain/model/notification"
	"servicedesk/internal/pkg/metrics"

	"github.com/google/uuid"
)

const DefaultSubscriberBuffer = 16

// Event is what a subscriber receives for one stored notification.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Text      string    `json:"text"`
	OrderID   *int64    `json:"orderId,omitempty"`
	SenderID  *int64    `json:"senderId,omitempty"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func eventOf(n *notification.Notification) Event {
	msg := n.Message()
	return Event{
		ID:        n.ID(),
		Kind:      msg.Kind.String(),
		Text:      msg.Text,
		OrderID:   kernel.Int64Ptr(msg.OrderID),
		SenderID:  kernel.Int64Ptr(msg.SenderID),
		Link:      msg.Link,
		CreatedAt: n.CreatedAt(),
	}
}

// Hub is the registry of open event streams, keyed by account. An account may
// hold several streams at once, one per connected client.
//
// Publish never blocks: a subscriber whose buffer is full misses the event.
// The event is still in the inbox, so nothing is lost for good.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[kernel.ID]map[*Subscription]struct{}
	buffer      int
	closed      bool
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Hub{
		subscribers: make(map[kernel.ID]map[*Subscription]struct{}),
		buffer:      buffer,
	}
}

// Subscription is one open stream. Close it when the client goes away.
type Subscription struct {
	hub         *Hub
	recipientID kernel.ID
	events      chan Event
	once        sync.Once
}

func (s *Subscription) RecipientID() kernel.ID {
	return s.recipientID
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close unregisters the subscription and closes its channel. It is safe to
// call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

func (h *Hub) Subscribe(recipientID kernel.ID) *Subscription {
	s := &Subscription{
		hub:         h,
		recipientID: recipientID,
		events:      make(chan Event, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(s.events)
		return s
	}

	subs, ok := h.subscribers[recipientID]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.subscribers[recipientID] = subs
	}
	subs[s] = struct{}{}
	metrics.ActiveSubscribers.Inc()

	return s
}

// Publish offers e to every stream of recipientID and returns how many took it.
func (h *Hub) Publish(recipientID kernel.ID, e Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for s := range h.subscribers[recipientID] {
		select {
		case s.events <- e:
			delivered++
		default:
			metrics.SubscriberDropped.Inc()
		}
	}
	return delivered
}

// Close ends every open stream and makes later subscriptions end at once.
// It is safe to call more than once.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for recipientID, subs := range h.subscribers {
		for s := range subs {
			close(s.events)
			metrics.ActiveSubscribers.Dec()
		}
		delete(h.subscribers, recipientID)
	}
}

// Subscribers returns the number of open streams of recipientID.
func (h *Hub) Subscribers(recipientID kernel.ID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[recipientID])
}

// channels are closed under the write lock so Publish never sends on a
// closed channel
func (h *Hub) unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subscribers[s.recipientID]
	if _, ok := subs[s]; !ok {
		return
	}
	delete(subs, s)
	if len(subs) == 0 {
		delete(h.subscribers, s.recipientID)
	}
	close(s.events)
	metrics.ActiveSubscribers.Dec()
}
