package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const defaultBufferSize = 32

// Event is one server-sent event. Topic and a missing ID are filled on publish.
type Event struct {
	ID    string
	Topic string
	Event string
	Data  interface{}
}

type subscriber struct {
	clientID string
	ch       chan Event
}

// Hub fans events out to the subscribers of a topic. Publishing never blocks:
// a subscriber whose buffer is full misses the event.
type Hub struct {
	mu         sync.RWMutex
	topics     map[string]map[*subscriber]struct{}
	bufferSize int
}

func NewHub() *Hub {
	return &Hub{
		topics:     make(map[string]map[*subscriber]struct{}),
		bufferSize: defaultBufferSize,
	}
}

// Subscribe registers clientID on topic. The returned cleanup is idempotent and
// closes the channel.
func (h *Hub) Subscribe(topic, clientID string) (<-chan Event, func()) {
	sub := &subscriber{clientID: clientID, ch: make(chan Event, h.bufferSize)}

	h.mu.Lock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*subscriber]struct{})
	}
	h.topics[topic][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			delete(h.topics[topic], sub)
			if len(h.topics[topic]) == 0 {
				delete(h.topics, topic)
			}
			close(sub.ch)
		})
	}

	return sub.ch, cleanup
}

// Publish delivers event to every subscriber of topic and returns how many
// received it.
func (h *Hub) Publish(topic string, event Event) int {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.Topic = topic

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for sub := range h.topics[topic] {
		select {
		case sub.ch <- event:
			delivered++
		default:
			slog.Warn("sse subscriber lagging, event dropped",
				"topic", topic, "client_id", sub.clientID, "event", event.Event)
		}
	}
	return delivered
}

func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Write encodes event as one text/event-stream frame.
func Write(w io.Writer, event Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal sse data: %w", err)
	}
	if event.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", event.ID); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
	return err
}
