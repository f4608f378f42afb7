package verification

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

// PostgresAuditStore persists bot audits, upserting by (profile id, document
// type). Flags and the check result are stored as JSONB.
type PostgresAuditStore struct {
	pool *pgxpool.Pool
}

func NewPostgresAuditStore(pool *pgxpool.Pool) *PostgresAuditStore {
	return &PostgresAuditStore{pool: pool}
}

func (s *PostgresAuditStore) Upsert(ctx context.Context, record AuditRecord) error {
	const q = `
		INSERT INTO verification_audits (
			profile_id, document_type, status, flags, bot_check_result, ran_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (profile_id, document_type) DO UPDATE SET
			status = EXCLUDED.status,
			flags = EXCLUDED.flags,
			bot_check_result = EXCLUDED.bot_check_result,
			ran_at = EXCLUDED.ran_at`

	flags, err := json.Marshal(record.Flags)
	if err != nil {
		return fmt.Errorf("encode flags: %w", err)
	}
	checkResult, err := json.Marshal(record.CheckResult)
	if err != nil {
		return fmt.Errorf("encode check result: %w", err)
	}

	_, err = s.pool.Exec(ctx, q,
		record.ProfileID, string(record.DocumentType), string(record.Status),
		flags, checkResult, record.RanAt,
	)
	if err != nil {
		return fmt.Errorf("upsert verification audit: %w", err)
	}
	return nil
}

func (s *PostgresAuditStore) FindByProfile(ctx context.Context, profileID string) ([]AuditRecord, error) {
	const q = `
		SELECT profile_id, document_type, status, flags, bot_check_result, ran_at
		FROM verification_audits
		WHERE profile_id = $1
		ORDER BY document_type`

	rows, err := s.pool.Query(ctx, q, profileID)
	if err != nil {
		return nil, fmt.Errorf("list verification audits: %w", err)
	}
	defer rows.Close()

	var out []AuditRecord
	for rows.Next() {
		var (
			r           AuditRecord
			docType     string
			status      string
			flags       []byte
			checkResult []byte
		)
		if err := rows.Scan(&r.ProfileID, &docType, &status, &flags, &checkResult, &r.RanAt); err != nil {
			return nil, fmt.Errorf("scan verification audit: %w", err)
		}
		r.DocumentType = DocumentType(docType)
		r.Status = Status(status)
		if err := json.Unmarshal(flags, &r.Flags); err != nil {
			return nil, fmt.Errorf("decode flags: %w", err)
		}
		if err := json.Unmarshal(checkResult, &r.CheckResult); err != nil {
			return nil, fmt.Errorf("decode check result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PostgresProfileStore reads profile snapshots and the pending worklist.
type PostgresProfileStore struct {
	pool *pgxpool.Pool
}

func NewPostgresProfileStore(pool *pgxpool.Pool) *PostgresProfileStore {
	return &PostgresProfileStore{pool: pool}
}

func (s *PostgresProfileStore) FindByID(ctx context.Context, profileID string) (*Profile, error) {
	const q = `
		SELECT id, role, phone, license, business, documents
		FROM profiles
		WHERE id = $1`

	var (
		p         Profile
		role      string
		license   []byte
		business  []byte
		documents []byte
	)
	err := s.pool.QueryRow(ctx, q, profileID).Scan(
		&p.ID, &role, &p.Phone, &license, &business, &documents,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	p.Role = domain.Role(role)
	if len(license) > 0 {
		if err := json.Unmarshal(license, &p.License); err != nil {
			return nil, fmt.Errorf("decode license: %w", err)
		}
	}
	if len(business) > 0 {
		if err := json.Unmarshal(business, &p.Business); err != nil {
			return nil, fmt.Errorf("decode business info: %w", err)
		}
	}
	if len(documents) > 0 {
		if err := json.Unmarshal(documents, &p.Documents); err != nil {
			return nil, fmt.Errorf("decode documents: %w", err)
		}
	}
	return &p, nil
}

func (s *PostgresProfileStore) ListPendingIDs(ctx context.Context) ([]string, error) {
	const q = `
		SELECT id FROM profiles
		WHERE verification_status = 'pending'
		ORDER BY created_at`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list pending profiles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
