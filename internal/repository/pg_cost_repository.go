package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neighborly/backend/internal/costmodel"
	"github.com/neighborly/backend/internal/model"
	"github.com/shopspring/decimal"
)

// PgCostRepository is the PostgreSQL implementation of CostRepository.
type PgCostRepository struct {
	pool *pgxpool.Pool
}

// NewPgCostRepository creates a PgCostRepository.
func NewPgCostRepository(pool *pgxpool.Pool) *PgCostRepository {
	return &PgCostRepository{pool: pool}
}

const costSelectCols = `id, vendor_id, household_id, session_id, author_id, cost_kind,
	amount::text, currency, unit, period, quantity::text, notes, anonymous,
	deleted_at, deleted_by, override_amount::text, override_note, overridden_by, overridden_at,
	created_at, updated_at`

func scanCost(scan func(...any) error) (*model.Cost, error) {
	var c model.Cost
	var householdID, sessionID, authorID, deletedBy, overriddenBy *string
	var amount string
	var quantity, overrideAmount *string
	var kind, unit, period string
	if err := scan(
		&c.ID, &c.VendorID, &householdID, &sessionID, &authorID, &kind,
		&amount, &c.Currency, &unit, &period, &quantity, &c.Notes, &c.Anonymous,
		&c.DeletedAt, &deletedBy, &overrideAmount, &c.OverrideNote, &overriddenBy, &c.OverriddenAt,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.HouseholdID = deref(householdID)
	c.SessionID = deref(sessionID)
	c.AuthorID = deref(authorID)
	c.DeletedBy = deref(deletedBy)
	c.OverriddenBy = deref(overriddenBy)
	c.Kind = costmodel.Kind(kind)
	c.Unit = costmodel.Unit(unit)
	c.Period = costmodel.Period(period)

	var err error
	if c.Amount, err = parseDecimal(amount); err != nil {
		return nil, err
	}
	if c.Quantity, err = parseNullDecimal(quantity); err != nil {
		return nil, err
	}
	if c.OverrideAmount, err = parseNullDecimal(overrideAmount); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgCostRepository) list(ctx context.Context, query string, args ...any) ([]*model.Cost, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var costs []*model.Cost
	for rows.Next() {
		c, err := scanCost(rows.Scan)
		if err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

// ListForIdentity returns the identity's live rows for a vendor, newest first.
func (r *PgCostRepository) ListForIdentity(ctx context.Context, vendorID string, identity model.Identity) ([]*model.Cost, error) {
	if identity.UserID != "" {
		return r.list(ctx,
			`SELECT `+costSelectCols+` FROM costs
			 WHERE vendor_id = $1 AND author_id = $2 AND deleted_at IS NULL
			 ORDER BY created_at DESC`,
			vendorID, identity.UserID)
	}
	if identity.SessionID != "" {
		return r.list(ctx,
			`SELECT `+costSelectCols+` FROM costs
			 WHERE vendor_id = $1 AND session_id = $2 AND deleted_at IS NULL
			 ORDER BY created_at DESC`,
			vendorID, identity.SessionID)
	}
	return nil, nil
}

// Resubmitting replaces the amount and clears any earlier moderation on the
// row: the resident has entered new data.
const upsertSet = `household_id = EXCLUDED.household_id,
	amount = EXCLUDED.amount, currency = EXCLUDED.currency,
	unit = EXCLUDED.unit, period = EXCLUDED.period, quantity = EXCLUDED.quantity,
	notes = EXCLUDED.notes, anonymous = EXCLUDED.anonymous,
	deleted_at = NULL, deleted_by = NULL,
	override_amount = NULL, override_note = '', overridden_by = NULL, overridden_at = NULL,
	updated_at = NOW()`

const upsertByAuthor = `INSERT INTO costs
	(vendor_id, household_id, author_id, cost_kind, amount, currency, unit, period, quantity, notes, anonymous)
	VALUES ($1, $2, $3, $4, $5::text::numeric, $6, $7, $8, $9::text::numeric, $10, $11)
	ON CONFLICT (author_id, vendor_id, cost_kind) WHERE author_id IS NOT NULL
	DO UPDATE SET ` + upsertSet + `
	RETURNING id, created_at, updated_at`

const upsertBySession = `INSERT INTO costs
	(vendor_id, household_id, session_id, cost_kind, amount, currency, unit, period, quantity, notes, anonymous)
	VALUES ($1, $2, $3, $4, $5::text::numeric, $6, $7, $8, $9::text::numeric, $10, $11)
	ON CONFLICT (session_id, vendor_id, cost_kind) WHERE session_id IS NOT NULL
	DO UPDATE SET ` + upsertSet + `
	RETURNING id, created_at, updated_at`

// UpsertAll writes every row in a single transaction so a submission is
// applied completely or not at all.
func (r *PgCostRepository) UpsertAll(ctx context.Context, costs []*model.Cost) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, c := range costs {
		query, owner := upsertByAuthor, c.AuthorID
		if c.AuthorID == "" {
			query, owner = upsertBySession, c.SessionID
		}
		if owner == "" {
			return fmt.Errorf("cost %s for vendor %s has no author or session", c.Kind, c.VendorID)
		}
		amount := c.Amount
		if err := tx.QueryRow(ctx, query,
			c.VendorID, nullIfEmpty(c.HouseholdID), owner, string(c.Kind),
			numericArg(&amount), c.Currency, string(c.Unit), string(c.Period),
			numericArg(c.Quantity), c.Notes, c.Anonymous,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ListByVendor returns a vendor's rows, newest first.
func (r *PgCostRepository) ListByVendor(ctx context.Context, vendorID string, includeDeleted bool) ([]*model.Cost, error) {
	if includeDeleted {
		return r.list(ctx,
			`SELECT `+costSelectCols+` FROM costs WHERE vendor_id = $1 ORDER BY created_at DESC`,
			vendorID)
	}
	return r.list(ctx,
		`SELECT `+costSelectCols+` FROM costs WHERE vendor_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`,
		vendorID)
}

// ListByAuthor returns a resident's live rows across vendors.
func (r *PgCostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*model.Cost, error) {
	return r.list(ctx,
		`SELECT `+costSelectCols+` FROM costs WHERE author_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`,
		authorID)
}

// GetByID returns a row regardless of its deletion state.
func (r *PgCostRepository) GetByID(ctx context.Context, id string) (*model.Cost, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+costSelectCols+` FROM costs WHERE id = $1`, id)
	c, err := scanCost(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// SoftDelete hides a live row from residents.
func (r *PgCostRepository) SoftDelete(ctx context.Context, id, deletedBy string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE costs SET deleted_at = NOW(), deleted_by = $2, updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL`,
		id, deletedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrWrongState(ctx, id)
	}
	return nil
}

// Restore undoes a soft delete.
func (r *PgCostRepository) Restore(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE costs SET deleted_at = NULL, deleted_by = NULL, updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NOT NULL`,
		id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrWrongState(ctx, id)
	}
	return nil
}

func (r *PgCostRepository) missingOrWrongState(ctx context.Context, id string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM costs WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrNotLive
}

// Override records an admin correction of the amount. A nil amount clears it.
func (r *PgCostRepository) Override(ctx context.Context, id, adminID string, amount *decimal.Decimal, note string) error {
	var tag pgconn.CommandTag
	var err error
	if amount == nil {
		tag, err = r.pool.Exec(ctx,
			`UPDATE costs SET override_amount = NULL, override_note = '', overridden_by = NULL,
			 overridden_at = NULL, updated_at = NOW() WHERE id = $1`,
			id)
	} else {
		tag, err = r.pool.Exec(ctx,
			`UPDATE costs SET override_amount = $2::text::numeric, override_note = $3, overridden_by = $4,
			 overridden_at = NOW(), updated_at = NOW() WHERE id = $1`,
			id, numericArg(amount), note, adminID)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// StatsByVendor aggregates live resident rows per kind, honouring admin
// overrides. Preview session rows are not counted.
func (r *PgCostRepository) StatsByVendor(ctx context.Context, vendorID string) ([]*model.VendorCostStat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT cost_kind, COUNT(*),
		        COUNT(DISTINCT household_id),
		        ROUND(AVG(COALESCE(override_amount, amount)), 2)::text,
		        MIN(COALESCE(override_amount, amount))::text,
		        MAX(COALESCE(override_amount, amount))::text
		 FROM costs WHERE vendor_id = $1 AND deleted_at IS NULL AND author_id IS NOT NULL
		 GROUP BY cost_kind ORDER BY cost_kind`,
		vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*model.VendorCostStat
	for rows.Next() {
		var s model.VendorCostStat
		var kind, avg, lo, hi string
		if err := rows.Scan(&kind, &s.Count, &s.Households, &avg, &lo, &hi); err != nil {
			return nil, err
		}
		s.Kind = costmodel.Kind(kind)
		if s.Average, err = parseDecimal(avg); err != nil {
			return nil, err
		}
		if s.Min, err = parseDecimal(lo); err != nil {
			return nil, err
		}
		if s.Max, err = parseDecimal(hi); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}
