package eligibility

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"curbo/internal/audit"
	"curbo/internal/platform/middleware"
	"curbo/internal/policy"
	"curbo/internal/vehicle"
	dErrors "curbo/pkg/domain-errors"
	"curbo/pkg/platform/sentinel"
)

const factTimeout = 5 * time.Second

// RenterSource supplies the renter fact snapshot.
type RenterSource interface {
	FindRenter(ctx context.Context, renterID string) (*Renter, error)
}

// ScreeningSource is the external screening collaborator. A lookup failure
// is treated as "no checks run": the engine then surfaces the screening
// blockers, which is the strictest interpretation of missing facts.
type ScreeningSource interface {
	Summary(ctx context.Context, renterID string) (*ScreeningSummary, error)
}

// PolicySource materializes the effective dealer policy.
type PolicySource interface {
	Effective(ctx context.Context, dealerID string) (policy.DealerPolicy, error)
}

// Service gathers booking facts and runs the rule table. The checkout
// workflow calls Evaluate with ids; the pure engine stays a function of its
// inputs.
type Service struct {
	vehicles  vehicle.Store
	renters   RenterSource
	screening ScreeningSource
	policies  PolicySource
	publisher *audit.Publisher
	metrics   *Metrics
	logger    *slog.Logger
}

func NewService(
	vehicles vehicle.Store,
	renters RenterSource,
	screening ScreeningSource,
	policies PolicySource,
	publisher *audit.Publisher,
	metrics *Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		vehicles:  vehicles,
		renters:   renters,
		screening: screening,
		policies:  policies,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Evaluate decides whether renterID may book vehicleID with the given
// insurance selection. Facts are gathered concurrently with a shared
// deadline, then the pure rule table runs over them.
func (s *Service) Evaluate(ctx context.Context, vehicleID, renterID string, insurance *InsuranceSelection) (*Decision, error) {
	if vehicleID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "vehicle id is required")
	}
	if renterID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "renter id is required")
	}

	input, err := s.gatherFacts(ctx, vehicleID, renterID)
	if err != nil {
		return nil, err
	}
	input.Insurance = insurance

	decision := Evaluate(*input)
	s.metrics.ObserveDecision(decision.OK)
	s.emitAudit(ctx, vehicleID, renterID, decision)

	return &decision, nil
}

func (s *Service) gatherFacts(ctx context.Context, vehicleID, renterID string) (*Input, error) {
	ctx, cancel := context.WithTimeout(ctx, factTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	input := &Input{}

	g.Go(func() error {
		start := time.Now()
		v, err := s.vehicles.FindByID(gctx, vehicleID)
		s.metrics.ObserveFactLatency("vehicle", time.Since(start))
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "vehicle not found")
			}
			return dErrors.New(dErrors.CodeInternal, "failed to load vehicle")
		}
		input.Vehicle = *v
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		r, err := s.renters.FindRenter(gctx, renterID)
		s.metrics.ObserveFactLatency("renter", time.Since(start))
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "renter not found")
			}
			return dErrors.New(dErrors.CodeInternal, "failed to load renter")
		}
		input.Renter = *r
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		summary, err := s.screening.Summary(gctx, renterID)
		s.metrics.ObserveFactLatency("screening", time.Since(start))
		if err != nil {
			// Missing screening facts are evaluated as "not run", which is
			// the strictest outcome. Not worth failing the whole evaluation.
			s.logger.WarnContext(gctx, "screening summary lookup failed",
				"renter_id", renterID,
				"error", err,
			)
			return nil
		}
		input.Screening = summary
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Policy needs the vehicle's dealer, so it resolves after the fan-out.
	effective, err := s.policies.Effective(ctx, input.Vehicle.DealerID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to resolve dealer policy")
	}
	input.Policy = effective

	return input, nil
}

func (s *Service) emitAudit(ctx context.Context, vehicleID, renterID string, decision Decision) {
	if s.publisher == nil {
		return
	}
	outcome := "blocked"
	if decision.OK {
		outcome = "eligible"
	}
	reasons := make([]string, 0, len(decision.Blockers))
	for _, b := range decision.Blockers {
		reasons = append(reasons, b.Code)
	}
	s.publisher.Emit(audit.Event{
		Action:    audit.ActionEligibilityEvaluated,
		ActorID:   renterID,
		SubjectID: vehicleID,
		Outcome:   outcome,
		Reasons:   reasons,
		RequestID: middleware.GetRequestID(ctx),
	})
}
