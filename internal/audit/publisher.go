package audit

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher hands audit events to the background worker through a buffered
// channel. Emit never blocks the calling request: when the buffer is full the
// event is dropped with a warning. Audit here is operational traceability,
// not a ledger, so losing an event under pressure beats stalling a booking.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Inbox exposes the channel the worker consumes.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// Emit queues an event, stamping id and timestamp when missing.
func (p *Publisher) Emit(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case p.inbox <- event:
	default:
		if p.logger != nil {
			p.logger.Warn("audit buffer full, dropping event",
				"action", event.Action,
				"subject_id", event.SubjectID,
			)
		}
	}
}
