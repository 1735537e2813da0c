// Package events provides a scoped publish/subscribe emitter for
// cross-component side effects. The emitter is owned by the application
// context that creates it and must be closed on shutdown; there is no
// process-wide state.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Topics published by the core.
const (
	TopicBarcodeSaved   = "barcode.saved"
	TopicBarcodeDeleted = "barcode.deleted"
	TopicTagCreated     = "tag.created"
	TopicTagDeleted     = "tag.deleted"
)

// Event carries a topic and an arbitrary payload.
type Event struct {
	Topic   string
	Payload interface{}
}

// HandlerFunc receives published events. Handlers run synchronously on the
// publisher's goroutine and must not block.
type HandlerFunc func(Event)

// Emitter dispatches events to subscribers. Safe for concurrent use.
type Emitter struct {
	mu     sync.RWMutex
	closed bool
	subs   map[string]map[string]HandlerFunc // topic -> subscription id -> handler
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[string]map[string]HandlerFunc)}
}

// Subscribe registers a handler for a topic and returns a subscription id
// for later removal. Subscribing to a closed emitter returns an empty id.
func (e *Emitter) Subscribe(topic string, fn HandlerFunc) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ""
	}
	id := uuid.NewString()
	if e.subs[topic] == nil {
		e.subs[topic] = make(map[string]HandlerFunc)
	}
	e.subs[topic][id] = fn
	return id
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (e *Emitter) Unsubscribe(topic, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.subs[topic], id)
}

// Publish delivers an event to all current subscribers of its topic.
// Publishing on a closed emitter is a no-op.
func (e *Emitter) Publish(topic string, payload interface{}) {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return
	}
	handlers := make([]HandlerFunc, 0, len(e.subs[topic]))
	for _, fn := range e.subs[topic] {
		handlers = append(handlers, fn)
	}
	e.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload}
	for _, fn := range handlers {
		fn(ev)
	}
}

// Close drops all subscriptions and makes further publishes no-ops.
func (e *Emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.subs = make(map[string]map[string]HandlerFunc)
}
