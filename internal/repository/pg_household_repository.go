package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neighborly/backend/internal/model"
)

// PgHouseholdRepository is the PostgreSQL implementation of HouseholdRepository.
type PgHouseholdRepository struct {
	pool *pgxpool.Pool
}

// NewPgHouseholdRepository creates a PgHouseholdRepository.
func NewPgHouseholdRepository(pool *pgxpool.Pool) *PgHouseholdRepository {
	return &PgHouseholdRepository{pool: pool}
}

// FindOrCreateByAddress relies on the unique address index; the no-op
// DO UPDATE makes RETURNING yield the existing row on conflict.
func (r *PgHouseholdRepository) FindOrCreateByAddress(ctx context.Context, address string) (*model.Household, error) {
	var h model.Household
	err := r.pool.QueryRow(ctx,
		`INSERT INTO households (address) VALUES ($1)
		 ON CONFLICT (address) DO UPDATE SET address = EXCLUDED.address
		 RETURNING id, address, created_at`,
		address,
	).Scan(&h.ID, &h.Address, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// FindByID looks a household up by ID.
func (r *PgHouseholdRepository) FindByID(ctx context.Context, id string) (*model.Household, error) {
	var h model.Household
	err := r.pool.QueryRow(ctx,
		`SELECT id, address, created_at FROM households WHERE id = $1`, id,
	).Scan(&h.ID, &h.Address, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}
