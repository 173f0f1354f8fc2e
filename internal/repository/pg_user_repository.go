package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neighborly/backend/internal/model"
)

// PgUserRepository is the PostgreSQL implementation of UserRepository.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgUserRepository creates a PgUserRepository.
func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

// Ping checks the database connection (implements DB).
func (r *PgUserRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanUser(scan func(...any) error) (*model.User, error) {
	var u model.User
	if err := scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.HouseholdID, &u.SuspendedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

const userSelectCols = `id, email, name, role, household_id, suspended_at, created_at, updated_at`

// FindByID looks a user up by ID.
func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE id = $1`, id)
	return scanUser(row.Scan)
}

// FindByEmail looks a user up by email address.
func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userSelectCols+` FROM users WHERE email = $1`, email)
	return scanUser(row.Scan)
}

// Create inserts a user. An empty role defaults to resident.
func (r *PgUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleResident
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, role) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		user.Email, user.Name, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// List returns users ordered by created_at desc.
func (r *PgUserRepository) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userSelectCols+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Suspend sets or clears suspended_at for a user.
// suspend=true sets suspended_at=NOW(), suspend=false clears it.
func (r *PgUserRepository) Suspend(ctx context.Context, id string, suspend bool) error {
	var suspendedAt *time.Time
	if suspend {
		now := time.Now()
		suspendedAt = &now
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET suspended_at = $1, updated_at = NOW() WHERE id = $2`,
		suspendedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetHousehold links the user to a verified household.
func (r *PgUserRepository) SetHousehold(ctx context.Context, userID, householdID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET household_id = $1, updated_at = NOW() WHERE id = $2`,
		householdID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
