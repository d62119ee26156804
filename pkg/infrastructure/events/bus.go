package events

import (
	"log"
	"slices"
	"sync"
)

// LocalBus delivers events to in-process handlers on their own goroutines.
// Only the per-stream version counter survives a publish.
type LocalBus struct {
	mu       sync.RWMutex
	versions map[string]int
	handlers map[string][]EventHandler
	inflight sync.WaitGroup
	logger   *log.Logger
}

func NewLocalBus() *LocalBus {
	return NewLocalBusWithLogger(log.Default())
}

// NewLocalBusWithLogger reports handler failures to logger
func NewLocalBusWithLogger(logger *log.Logger) *LocalBus {
	return &LocalBus{
		versions: make(map[string]int),
		handlers: make(map[string][]EventHandler),
		logger:   logger,
	}
}

// Verify interface compliance
var _ Bus = (*LocalBus)(nil)

// Publish stamps event with the next version of streamID and fans it out
// to the handlers subscribed to its type.
func (b *LocalBus) Publish(streamID string, event Event) error {
	b.mu.Lock()
	b.versions[streamID]++
	stamped := BaseEvent{
		EventID:      event.ID(),
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: b.versions[streamID],
	}
	targets := slices.Clone(b.handlers[stamped.EventType])
	b.mu.Unlock()

	for _, h := range targets {
		if !h.CanHandle(stamped.EventType) {
			continue
		}
		b.inflight.Add(1)
		go b.deliver(h, stamped)
	}
	return nil
}

func (b *LocalBus) deliver(h EventHandler, e Event) {
	defer b.inflight.Done()
	if err := h.Handle(e); err != nil {
		b.logger.Printf("Error handling event %s: %v", e.Type(), err)
	}
}

func (b *LocalBus) Subscribe(eventTypes []string, handler EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range eventTypes {
		b.handlers[t] = append(b.handlers[t], handler)
	}
	return nil
}

// Unsubscribe detaches handler from every type it was subscribed to
func (b *LocalBus) Unsubscribe(handler EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for t, hs := range b.handlers {
		b.handlers[t] = slices.DeleteFunc(slices.Clone(hs), func(h EventHandler) bool { return h == handler })
		if len(b.handlers[t]) == 0 {
			delete(b.handlers, t)
		}
	}
	return nil
}

// Wait blocks until every delivery started so far has returned
func (b *LocalBus) Wait() {
	b.inflight.Wait()
}
