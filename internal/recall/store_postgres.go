package recall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"curbo/internal/domain"
	"curbo/pkg/platform/sentinel"
)

// PostgresCacheStore persists recall cache entries, upserting by vehicle id.
// The raw recall payload and badge are stored as JSONB.
type PostgresCacheStore struct {
	pool *pgxpool.Pool
}

func NewPostgresCacheStore(pool *pgxpool.Pool) *PostgresCacheStore {
	return &PostgresCacheStore{pool: pool}
}

func (s *PostgresCacheStore) Find(ctx context.Context, vehicleID string) (*CacheEntry, error) {
	const q = `
		SELECT vehicle_id, recall_count, severity_level, badge, payload,
		       fetched_at, expires_at
		FROM recall_cache
		WHERE vehicle_id = $1`

	var (
		e       CacheEntry
		badge   []byte
		payload []byte
	)
	err := s.pool.QueryRow(ctx, q, vehicleID).Scan(
		&e.VehicleID, &e.RecallCount, &e.SeverityLevel, &badge, &payload,
		&e.FetchedAt, &e.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find recall cache entry: %w", err)
	}

	if err := json.Unmarshal(badge, &e.Badge); err != nil {
		return nil, fmt.Errorf("decode cached badge: %w", err)
	}
	if err := json.Unmarshal(payload, &e.Recalls); err != nil {
		return nil, fmt.Errorf("decode cached recalls: %w", err)
	}
	return &e, nil
}

func (s *PostgresCacheStore) Upsert(ctx context.Context, entry CacheEntry) error {
	const q = `
		INSERT INTO recall_cache (
			vehicle_id, recall_count, severity_level, badge, payload,
			fetched_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (vehicle_id) DO UPDATE SET
			recall_count = EXCLUDED.recall_count,
			severity_level = EXCLUDED.severity_level,
			badge = EXCLUDED.badge,
			payload = EXCLUDED.payload,
			fetched_at = EXCLUDED.fetched_at,
			expires_at = EXCLUDED.expires_at`

	badge, err := json.Marshal(entry.Badge)
	if err != nil {
		return fmt.Errorf("encode badge: %w", err)
	}
	payload, err := json.Marshal(entry.Recalls)
	if err != nil {
		return fmt.Errorf("encode recalls: %w", err)
	}

	_, err = s.pool.Exec(ctx, q,
		entry.VehicleID, entry.RecallCount, entry.SeverityLevel, badge, payload,
		entry.FetchedAt, entry.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("upsert recall cache entry: %w", err)
	}
	return nil
}

// PostgresStandingStore persists vehicle standing, upserting by vehicle id.
type PostgresStandingStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStandingStore(pool *pgxpool.Pool) *PostgresStandingStore {
	return &PostgresStandingStore{pool: pool}
}

func (s *PostgresStandingStore) Find(ctx context.Context, vehicleID string) (*StandingRecord, error) {
	const q = `
		SELECT vehicle_id, score, grade, reasons, updated_at
		FROM vehicle_standing
		WHERE vehicle_id = $1`

	var (
		r     StandingRecord
		grade string
	)
	err := s.pool.QueryRow(ctx, q, vehicleID).Scan(
		&r.VehicleID, &r.Standing.Score, &grade, &r.Standing.Reasons, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find vehicle standing: %w", err)
	}

	r.Standing.Grade = domain.Grade(grade)
	return &r, nil
}

func (s *PostgresStandingStore) Upsert(ctx context.Context, record StandingRecord) error {
	const q = `
		INSERT INTO vehicle_standing (vehicle_id, score, grade, reasons, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (vehicle_id) DO UPDATE SET
			score = EXCLUDED.score,
			grade = EXCLUDED.grade,
			reasons = EXCLUDED.reasons,
			updated_at = EXCLUDED.updated_at`

	_, err := s.pool.Exec(ctx, q,
		record.VehicleID, record.Standing.Score, string(record.Standing.Grade),
		record.Standing.Reasons, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert vehicle standing: %w", err)
	}
	return nil
}
