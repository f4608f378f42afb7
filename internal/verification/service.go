package verification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"curbo/internal/audit"
	"curbo/internal/platform/middleware"
	dErrors "curbo/pkg/domain-errors"
	"curbo/pkg/platform/sentinel"
)

// Bot runs the document check battery against profile snapshots and persists
// the resulting audits. A flagged document is an expected outcome, not an
// error; the only hard failure for a single run is profile-not-found.
type Bot struct {
	profiles  ProfileSource
	audits    AuditStore
	publisher *audit.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

type BotOption func(*Bot)

func WithPublisher(p *audit.Publisher) BotOption {
	return func(b *Bot) { b.publisher = p }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) BotOption {
	return func(b *Bot) { b.now = now }
}

func NewBot(profiles ProfileSource, audits AuditStore, logger *slog.Logger, opts ...BotOption) *Bot {
	b := &Bot{
		profiles: profiles,
		audits:   audits,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RunForProfile checks every submitted document for one profile and upserts
// one audit record per document type. Re-running replaces prior audits.
func (b *Bot) RunForProfile(ctx context.Context, profileID string) ([]AuditRecord, error) {
	profile, err := b.profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "profile not found")
		}
		return nil, dErrors.New(dErrors.CodeInternal, "failed to load profile")
	}

	now := b.now()
	records := make([]AuditRecord, 0, len(profile.Documents))
	flagged := 0

	for _, doc := range profile.Documents {
		flags, checkResult := RunChecks(*profile, doc, now)

		status := StatusVerified
		if len(flags) > 0 {
			status = StatusFlagged
			flagged++
		}

		record := AuditRecord{
			ProfileID:    profile.ID,
			DocumentType: doc.Type,
			Status:       status,
			Flags:        flags,
			CheckResult:  checkResult,
			RanAt:        now,
		}
		if err := b.audits.Upsert(ctx, record); err != nil {
			b.logger.ErrorContext(ctx, "failed to upsert verification audit",
				"profile_id", profile.ID,
				"document_type", doc.Type,
				"error", err.Error(),
			)
			return nil, dErrors.New(dErrors.CodeInternal, "failed to persist verification audit")
		}
		records = append(records, record)
	}

	b.emitAudit(ctx, profile.ID, flagged)
	return records, nil
}

// BatchResult summarizes one sweep over pending profiles.
type BatchResult struct {
	Processed int      `json:"processed"`
	Flagged   int      `json:"flagged"`
	Failed    []string `json:"failed,omitempty"`
}

// RunPending sweeps every pending profile sequentially, continuing past
// per-profile failures rather than aborting the batch.
func (b *Bot) RunPending(ctx context.Context) (*BatchResult, error) {
	ids, err := b.profiles.ListPendingIDs(ctx)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list pending profiles")
	}

	result := &BatchResult{}
	for _, id := range ids {
		records, err := b.RunForProfile(ctx, id)
		if err != nil {
			b.logger.WarnContext(ctx, "verification run failed, continuing batch",
				"profile_id", id,
				"error", err.Error(),
			)
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Processed++
		for _, r := range records {
			if r.Status == StatusFlagged {
				result.Flagged++
				break
			}
		}
	}
	return result, nil
}

func (b *Bot) emitAudit(ctx context.Context, profileID string, flagged int) {
	if b.publisher == nil {
		return
	}
	outcome := string(StatusVerified)
	if flagged > 0 {
		outcome = string(StatusFlagged)
	}
	b.publisher.Emit(audit.Event{
		Action:    audit.ActionVerificationBotRun,
		ActorID:   middleware.GetUserID(ctx),
		SubjectID: profileID,
		Outcome:   outcome,
		RequestID: middleware.GetRequestID(ctx),
	})
}
