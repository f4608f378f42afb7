package recall

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"curbo/internal/audit"
	"curbo/internal/domain"
	"curbo/internal/platform/middleware"
	"curbo/internal/ratelimit"
	"curbo/internal/vehicle"
	dErrors "curbo/pkg/domain-errors"
	"curbo/pkg/platform/sentinel"
)

// persistTimeout bounds the cache write after a successful fetch. The write
// runs on a detached context so a caller disconnect never rolls it back.
const persistTimeout = 5 * time.Second

// Result is the outcome of a recall lookup. RateLimit is populated on every
// result, success or failure, so the transport layer can always attach
// limit/remaining/reset metadata.
type Result struct {
	State     State
	Badge     Badge
	Standing  *Standing
	Recalls   []Record
	FetchedAt time.Time
	ExpiresAt time.Time
	Cached    bool
	Warning   string
	RateLimit *ratelimit.Result
}

// Service drives the per-vehicle lookup state machine: serve fresh cache,
// otherwise rate-limit-check, fetch, score, and upsert, degrading to stale
// or empty-recall responses when the upstream fails.
type Service struct {
	vehicles  vehicle.Store
	registry  RegistryClient
	vins      VINDecoder
	cache     CacheStore
	standings StandingStore
	limiter   *ratelimit.Limiter
	publisher *audit.Publisher
	metrics   *Metrics
	logger    *slog.Logger
	ttl       time.Duration
	now       func() time.Time
}

type ServiceOption func(*Service)

// WithVINDecoder re-resolves vehicle identity from the VIN before the
// registry call. Decode failures fall back silently to the stored identity.
func WithVINDecoder(d VINDecoder) ServiceOption {
	return func(s *Service) { s.vins = d }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func WithPublisher(p *audit.Publisher) ServiceOption {
	return func(s *Service) { s.publisher = p }
}

func WithMetrics(m *Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

func NewService(
	vehicles vehicle.Store,
	registry RegistryClient,
	cache CacheStore,
	standings StandingStore,
	limiter *ratelimit.Limiter,
	ttl time.Duration,
	logger *slog.Logger,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		vehicles:  vehicles,
		registry:  registry,
		cache:     cache,
		standings: standings,
		limiter:   limiter,
		logger:    logger,
		ttl:       ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup returns the recall badge, standing, and campaign list for a vehicle.
// Every returned Result carries rate-limit metadata; the limiter is consulted
// before any upstream call and quota is consumed only after a confirmed
// success, so a failed fetch never charges the caller.
func (s *Service) Lookup(ctx context.Context, vehicleID string) (*Result, error) {
	if vehicleID == "" {
		return s.failed(ctx), dErrors.New(dErrors.CodeBadRequest, "vehicleId is required")
	}

	key := ratelimit.CallerKey(ctx)
	rl := s.limiter.Check(ctx, key)

	v, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return s.failedWith(rl), dErrors.New(dErrors.CodeNotFound, "vehicle not found")
		}
		s.logger.ErrorContext(ctx, "failed to load vehicle for recall lookup",
			"request_id", middleware.GetRequestID(ctx),
			"vehicle_id", vehicleID,
			"error", err.Error(),
		)
		return s.failedWith(rl), dErrors.New(dErrors.CodeInternal, "failed to load vehicle")
	}
	if v.Status != domain.VehicleActive {
		return s.failedWith(rl), dErrors.New(dErrors.CodeForbidden, "vehicle is not active")
	}

	if v.IsPlaceholder() {
		return s.placeholderResult(v, rl), nil
	}

	now := s.now()
	entry, cacheErr := s.cache.Find(ctx, vehicleID)
	if cacheErr != nil && !errors.Is(cacheErr, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "recall cache read failed, treating as miss",
			"request_id", middleware.GetRequestID(ctx),
			"vehicle_id", vehicleID,
			"error", cacheErr.Error(),
		)
		entry = nil
	}

	if entry != nil && entry.Fresh(now) {
		s.metrics.ObserveCacheHit()
		return s.fromEntry(ctx, entry, StateFresh, rl, ""), nil
	}
	s.metrics.ObserveCacheMiss()

	if !rl.Allowed {
		err := dErrors.New(dErrors.CodeRateLimited, "recall lookup rate limit exceeded")
		return s.failedWith(rl), err
	}

	// The fetch runs detached from the caller's cancellation: a disconnect
	// mid-fetch must not abort the upstream call, so the result can still be
	// cached for later readers. The clients carry their own per-call
	// timeouts, and WithoutCancel keeps request metadata for logging.
	recalls, fetchErr := s.fetch(context.WithoutCancel(ctx), v)
	if fetchErr != nil {
		if errors.Is(fetchErr, sentinel.ErrUpstreamRateLimited) && entry != nil {
			// Serve the prior entry untouched: fetched_at/expires_at keep
			// their old values so the next request retries the refresh.
			s.metrics.ObserveStaleServed()
			s.logger.WarnContext(ctx, "recall registry rate-limited, serving stale entry",
				"request_id", middleware.GetRequestID(ctx),
				"vehicle_id", vehicleID,
				"fetched_at", entry.FetchedAt,
			)
			warning := "recall data may be outdated: the recall registry is rate-limiting refreshes"
			return s.fromEntry(ctx, entry, StateStale, rl, warning), nil
		}

		// Fail open toward "no known issues" for this response only; an
		// empty result from a failed fetch is never persisted as fresh.
		s.logger.WarnContext(ctx, "recall registry unavailable, returning empty recall set",
			"request_id", middleware.GetRequestID(ctx),
			"vehicle_id", vehicleID,
			"error", fetchErr.Error(),
		)
		standing := ComputeStanding(nil, v.PhotoCount, v.DealerVerified)
		return &Result{
			State:     StateFetched,
			Badge:     ComputeBadge(nil),
			Standing:  &standing,
			Recalls:   []Record{},
			FetchedAt: now,
			ExpiresAt: now,
			RateLimit: rl,
		}, nil
	}

	s.limiter.RecordSuccess(ctx, key)

	badge := ComputeBadge(recalls)
	standing := ComputeStanding(recalls, v.PhotoCount, v.DealerVerified)
	fresh := CacheEntry{
		VehicleID:     v.ID,
		RecallCount:   badge.RecallCount,
		SeverityLevel: badge.Severity,
		Badge:         badge,
		Recalls:       recalls,
		FetchedAt:     now,
		ExpiresAt:     now.Add(s.ttl),
	}
	s.persist(ctx, fresh, StandingRecord{VehicleID: v.ID, Standing: standing, UpdatedAt: now})
	s.emitAudit(ctx, v.ID, badge)

	return &Result{
		State:     StateFetched,
		Badge:     badge,
		Standing:  &standing,
		Recalls:   recalls,
		FetchedAt: fresh.FetchedAt,
		ExpiresAt: fresh.ExpiresAt,
		RateLimit: rl,
	}, nil
}

// fetch resolves vehicle identity (via VIN decode when configured) and calls
// the registry.
func (s *Service) fetch(ctx context.Context, v *vehicle.Vehicle) ([]Record, error) {
	vehicleMake, vehicleModel, year := v.Make, v.Model, v.ModelYear

	if s.vins != nil && v.VIN != "" {
		start := time.Now()
		decoded, err := s.vins.Decode(ctx, v.VIN)
		s.metrics.ObserveUpstreamLatency("vin_decoder", time.Since(start))
		if err != nil {
			s.logger.DebugContext(ctx, "vin decode failed, using stored identity",
				"vehicle_id", v.ID,
				"error", err.Error(),
			)
		} else {
			if decoded.Make != "" {
				vehicleMake = decoded.Make
			}
			if decoded.Model != "" {
				vehicleModel = decoded.Model
			}
			if decoded.ModelYear != 0 {
				year = decoded.ModelYear
			}
		}
	}

	// Latency is measured on the wall clock; the injected clock only drives
	// cache freshness.
	start := time.Now()
	recalls, err := s.registry.RecallsByVehicle(ctx, vehicleMake, vehicleModel, year)
	s.metrics.ObserveUpstreamLatency("registry", time.Since(start))
	return recalls, err
}

// persist upserts the cache entry and standing on a detached context: the
// write is idempotent and benefits later readers even if this caller is gone.
func (s *Service) persist(ctx context.Context, entry CacheEntry, standing StandingRecord) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := s.cache.Upsert(wctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "failed to upsert recall cache entry",
			"vehicle_id", entry.VehicleID,
			"error", err.Error(),
		)
	}
	if err := s.standings.Upsert(wctx, standing); err != nil {
		s.logger.ErrorContext(ctx, "failed to upsert vehicle standing",
			"vehicle_id", standing.VehicleID,
			"error", err.Error(),
		)
	}
}

// fromEntry builds a response from a stored entry, attaching the persisted
// standing when one is readable.
func (s *Service) fromEntry(ctx context.Context, entry *CacheEntry, state State, rl *ratelimit.Result, warning string) *Result {
	var standing *Standing
	if record, err := s.standings.Find(ctx, entry.VehicleID); err == nil {
		standing = &record.Standing
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.WarnContext(ctx, "failed to load vehicle standing",
			"vehicle_id", entry.VehicleID,
			"error", err.Error(),
		)
	}

	return &Result{
		State:     state,
		Badge:     entry.Badge,
		Standing:  standing,
		Recalls:   entry.Recalls,
		FetchedAt: entry.FetchedAt,
		ExpiresAt: entry.ExpiresAt,
		Cached:    true,
		Warning:   warning,
		RateLimit: rl,
	}
}

func (s *Service) placeholderResult(v *vehicle.Vehicle, rl *ratelimit.Result) *Result {
	now := s.now()
	recalls := seedRecalls(v)
	standing := ComputeStanding(recalls, v.PhotoCount, v.DealerVerified)
	return &Result{
		State:     StateFetched,
		Badge:     ComputeBadge(recalls),
		Standing:  &standing,
		Recalls:   recalls,
		FetchedAt: now,
		ExpiresAt: now.Add(s.ttl),
		RateLimit: rl,
	}
}

func (s *Service) failed(ctx context.Context) *Result {
	return s.failedWith(s.limiter.Check(ctx, ratelimit.CallerKey(ctx)))
}

func (s *Service) failedWith(rl *ratelimit.Result) *Result {
	return &Result{RateLimit: rl}
}

func (s *Service) emitAudit(ctx context.Context, vehicleID string, badge Badge) {
	if s.publisher == nil {
		return
	}
	s.publisher.Emit(audit.Event{
		Action:    audit.ActionRecallRefreshed,
		ActorID:   middleware.GetUserID(ctx),
		SubjectID: vehicleID,
		Outcome:   badge.Severity,
		RequestID: middleware.GetRequestID(ctx),
	})
}
