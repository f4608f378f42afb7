// Package audit records decision outcomes for traceability. Events flow from
// domain logic through a buffered publisher to a background worker that
// persists them and, when brokers are configured, publishes them to Kafka.
package audit

import (
	"context"
	"time"
)

// Action identifies what happened.
type Action string

const (
	ActionEligibilityEvaluated Action = "eligibility_evaluated"
	ActionPolicySaved          Action = "dealer_policy_saved"
	ActionRecallRefreshed      Action = "recall_refreshed"
	ActionVerificationBotRun   Action = "verification_bot_run"
)

// Event is emitted from domain logic to capture key decisions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	// ActorID is who triggered the decision (renter, dealer, or system).
	ActorID string `json:"actor_id,omitempty"`
	// SubjectID is what the decision was about (vehicle, booking, profile).
	SubjectID string   `json:"subject_id"`
	Outcome   string   `json:"outcome"`
	Reasons   []string `json:"reasons,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Sink receives events after they are persisted (e.g. a Kafka topic).
type Sink interface {
	Publish(ctx context.Context, event Event) error
}
