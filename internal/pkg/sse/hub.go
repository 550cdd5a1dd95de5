package sse

import (
	"sync"
)

// Event is one server-sent event. Name becomes the SSE "event:" field and
// Data is marshalled to JSON for the "data:" field.
type Event struct {
	Topic string
	Name  string
	Data  any
}

// Hub fans events out to subscribers by topic. A subscriber may listen on
// several topics through one channel.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	bufferSize  int
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		bufferSize:  16,
	}
}

// Subscribe registers a channel on every topic and returns it with a cleanup
// function that unregisters and closes it.
func (h *Hub) Subscribe(topics ...string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)
	for _, topic := range topics {
		if h.subscribers[topic] == nil {
			h.subscribers[topic] = make(map[chan Event]struct{})
		}
		h.subscribers[topic][ch] = struct{}{}
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for _, topic := range topics {
				delete(h.subscribers[topic], ch)
				if len(h.subscribers[topic]) == 0 {
					delete(h.subscribers, topic)
				}
			}
			close(ch)
		})
	}

	return ch, cleanup
}

// Publish delivers event once to every channel subscribed to any of topics.
// Slow subscribers whose buffer is full miss the event.
func (h *Hub) Publish(event Event, topics ...string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := make(map[chan Event]struct{})
	for _, topic := range topics {
		for ch := range h.subscribers[topic] {
			if _, seen := delivered[ch]; seen {
				continue
			}
			delivered[ch] = struct{}{}

			e := event
			e.Topic = topic
			select {
			case ch <- e:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of channels listening on topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}
