package policy

import (
	"context"
	"errors"
	"strings"
	"time"

	"curbo/internal/audit"
	"curbo/internal/platform/middleware"
	dErrors "curbo/pkg/domain-errors"
	"curbo/pkg/platform/sentinel"
)

// Service owns dealer policy reads and writes. It keeps orchestration out of
// handlers: reads fall back to the platform default, writes validate and
// clamp server-side regardless of what the client sent.
type Service struct {
	store     Store
	publisher *audit.Publisher
}

type Option func(*Service)

func WithPublisher(p *audit.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the dealer's stored policy, or the platform default when none
// exists. The default carries the dealer id so clients can render it as the
// effective policy.
func (s *Service) Get(ctx context.Context, dealerID string) (*DealerPolicy, error) {
	if dealerID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "dealer id is required")
	}

	p, err := s.store.FindByDealer(ctx, dealerID)
	if errors.Is(err, sentinel.ErrNotFound) {
		def := Default()
		def.DealerID = dealerID
		return &def, nil
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to load dealer policy")
	}
	return p, nil
}

// Save validates, clamps, and upserts a dealer policy. Validation failures
// surface every violated rule; the clamp runs either way so the stored row
// can never be looser than platform floors.
func (s *Service) Save(ctx context.Context, dealerID string, p DealerPolicy) (*DealerPolicy, error) {
	if dealerID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "dealer id is required")
	}

	if result := Validate(p); !result.OK {
		return nil, dErrors.New(dErrors.CodeInvalidInput, strings.Join(result.Errors, "; "))
	}

	clamped := Clamp(p)
	clamped.DealerID = dealerID
	clamped.UpdatedAt = time.Now()

	if err := s.store.Upsert(ctx, &clamped); err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to save dealer policy")
	}

	if s.publisher != nil {
		s.publisher.Emit(audit.Event{
			Action:    audit.ActionPolicySaved,
			ActorID:   dealerID,
			SubjectID: dealerID,
			Outcome:   "saved",
			RequestID: middleware.GetRequestID(ctx),
		})
	}
	return &clamped, nil
}

// Effective returns the policy the eligibility engine should evaluate: the
// dealer's stored policy when present, the platform default otherwise.
func (s *Service) Effective(ctx context.Context, dealerID string) (DealerPolicy, error) {
	if dealerID == "" {
		return Default(), nil
	}
	p, err := s.Get(ctx, dealerID)
	if err != nil {
		return DealerPolicy{}, err
	}
	return *p, nil
}
