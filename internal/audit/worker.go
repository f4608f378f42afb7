package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel, persists them, and fans them
// out to an optional sink. A failed append or publish logs and moves on; the
// worker never aborts on a single bad event.
type Worker struct {
	store  Store
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if w.store != nil {
				if err := w.store.Append(ctx, event); err != nil {
					w.logger.ErrorContext(ctx, "failed to persist audit event",
						"action", event.Action,
						"subject_id", event.SubjectID,
						"error", err,
					)
				}
			}
			if w.sink != nil {
				if err := w.sink.Publish(ctx, event); err != nil {
					w.logger.WarnContext(ctx, "failed to publish audit event",
						"action", event.Action,
						"subject_id", event.SubjectID,
						"error", err,
					)
				}
			}
		}
	}
}
