package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neighborly/backend/internal/costmodel"
	"github.com/neighborly/backend/internal/model"
)

// PgVendorRepository is the PostgreSQL implementation of VendorRepository.
type PgVendorRepository struct {
	pool *pgxpool.Pool
}

// NewPgVendorRepository creates a PgVendorRepository.
func NewPgVendorRepository(pool *pgxpool.Pool) *PgVendorRepository {
	return &PgVendorRepository{pool: pool}
}

const vendorSelectCols = `id, name, category, phone, website, created_by, hidden_at, created_at, updated_at`

func scanVendor(scan func(...any) error) (*model.Vendor, error) {
	var v model.Vendor
	var category string
	var createdBy *string
	if err := scan(&v.ID, &v.Name, &category, &v.Phone, &v.Website, &createdBy, &v.HiddenAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	// Rows written before categories were validated may hold free text.
	v.Category = costmodel.Classify(category)
	v.CreatedBy = deref(createdBy)
	return &v, nil
}

// NormalizeCategories rewrites stored category labels that are not a
// canonical key to the category they classify as, so category filters match
// the category readers are served. It returns the number of vendors updated.
func (r *PgVendorRepository) NormalizeCategories(ctx context.Context) (int64, error) {
	cats := costmodel.Categories()
	keys := make([]string, len(cats))
	for i, c := range cats {
		keys[i] = string(c)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT DISTINCT category FROM vendors WHERE NOT (category = ANY($1))`, keys)
	if err != nil {
		return 0, err
	}
	labels, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return 0, err
	}

	var updated int64
	for _, label := range labels {
		tag, err := tx.Exec(ctx,
			`UPDATE vendors SET category = $2, updated_at = NOW() WHERE category = $1`,
			label, string(costmodel.Classify(label)))
		if err != nil {
			return 0, err
		}
		updated += tag.RowsAffected()
	}
	return updated, tx.Commit(ctx)
}

// List returns vendors by name, optionally filtered by category.
func (r *PgVendorRepository) List(ctx context.Context, opts model.VendorListOptions) ([]*model.Vendor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+vendorSelectCols+` FROM vendors
		 WHERE ($1 = '' OR category = $1) AND ($2 OR hidden_at IS NULL)
		 ORDER BY name, id LIMIT $3 OFFSET $4`,
		string(opts.Category), opts.IncludeHidden, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*model.Vendor
	for rows.Next() {
		v, err := scanVendor(rows.Scan)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

// GetByID returns a vendor, hidden or not.
func (r *PgVendorRepository) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+vendorSelectCols+` FROM vendors WHERE id = $1`, id)
	v, err := scanVendor(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

// Create inserts a vendor.
func (r *PgVendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO vendors (name, category, phone, website, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		vendor.Name, string(vendor.Category), vendor.Phone, vendor.Website, nullIfEmpty(vendor.CreatedBy),
	).Scan(&vendor.ID, &vendor.CreatedAt, &vendor.UpdatedAt)
}

// SetHidden hides or unhides a vendor.
func (r *PgVendorRepository) SetHidden(ctx context.Context, id string, hidden bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE vendors SET hidden_at = CASE WHEN $2 THEN COALESCE(hidden_at, NOW()) ELSE NULL END,
		 updated_at = NOW() WHERE id = $1`,
		id, hidden)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
