package events

import (
	"log"
)

// LogHandler writes every event it receives to a logger
type LogHandler struct {
	logger *log.Logger
	types  map[string]bool
}

// NewLogHandler creates a handler for the given event types
func NewLogHandler(logger *log.Logger, eventTypes ...string) *LogHandler {
	types := make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		types[t] = true
	}
	return &LogHandler{logger: logger, types: types}
}

// Verify interface compliance
var _ EventHandler = (*LogHandler)(nil)

func (h *LogHandler) Handle(event Event) error {
	h.logger.Printf("event %s [%s v%d] %s", event.Type(), event.StreamID(), event.Version(), Describe(event))
	return nil
}

func (h *LogHandler) CanHandle(eventType string) bool {
	return h.types[eventType]
}

// SubscribeLogger attaches a LogHandler for every application event and
// returns the func that detaches it again.
func SubscribeLogger(bus Bus, logger *log.Logger) (func() error, error) {
	handler := NewLogHandler(logger, AllEventTypes...)
	if err := bus.Subscribe(AllEventTypes, handler); err != nil {
		return nil, err
	}
	return func() error { return bus.Unsubscribe(handler) }, nil
}
