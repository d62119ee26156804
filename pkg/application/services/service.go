package services

import (
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Garbi-Collector/stokea2/pkg/domain/repositories"
	"github.com/Garbi-Collector/stokea2/pkg/infrastructure/events"
)

var tracer = otel.Tracer("github.com/Garbi-Collector/stokea2/pkg/application/services")

// Dependencies holds what every application service needs
type Dependencies struct {
	Store repositories.Store
	// Events is optional; nothing is published when nil.
	Events events.Bus
	// Now defaults to time.Now
	Now    func() time.Time
	Logger *log.Logger
}

func (d Dependencies) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Dependencies) publish(evts ...events.Event) {
	if d.Events == nil {
		return
	}
	for _, e := range evts {
		if err := d.Events.Publish(e.StreamID(), e); err != nil {
			d.logf("Warning: failed to publish %s event: %v", e.Type(), err)
		}
	}
}

func (d Dependencies) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// endSpan records err on span before ending it
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
