package vehicle

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"curbo/pkg/platform/sentinel"
)

// PostgresStore reads vehicles from the listings table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) FindByID(ctx context.Context, vehicleID string) (*Vehicle, error) {
	const q = `
		SELECT id, dealer_id, status, inspection_status, title_type,
		       COALESCE(vin, ''), make, model, model_year,
		       photo_count, dealer_verified
		FROM vehicles
		WHERE id = $1`

	var v Vehicle
	err := s.pool.QueryRow(ctx, q, vehicleID).Scan(
		&v.ID, &v.DealerID, &v.Status, &v.InspectionStatus, &v.TitleType,
		&v.VIN, &v.Make, &v.Model, &v.ModelYear,
		&v.PhotoCount, &v.DealerVerified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return &v, nil
}
