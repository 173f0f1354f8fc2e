package repository

import (
	"context"

	"github.com/neighborly/backend/internal/model"
	"github.com/shopspring/decimal"
)

// DB is the liveness check used by the health endpoint.
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository persists residents and admins.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	List(ctx context.Context, limit, offset int) ([]*model.User, error)
	Suspend(ctx context.Context, id string, suspend bool) error
	SetHousehold(ctx context.Context, userID, householdID string) error
}

// HouseholdRepository persists verified home addresses.
type HouseholdRepository interface {
	// FindOrCreateByAddress returns the household for a normalized address,
	// creating it on first use.
	FindOrCreateByAddress(ctx context.Context, address string) (*model.Household, error)
	FindByID(ctx context.Context, id string) (*model.Household, error)
}

// VendorRepository persists service vendors.
type VendorRepository interface {
	List(ctx context.Context, opts model.VendorListOptions) ([]*model.Vendor, error)
	GetByID(ctx context.Context, id string) (*model.Vendor, error)
	Create(ctx context.Context, vendor *model.Vendor) error
	SetHidden(ctx context.Context, id string, hidden bool) error
}

// CostRepository persists cost rows.
type CostRepository interface {
	// ListForIdentity returns the live rows the identity has on file for a
	// vendor, newest first.
	ListForIdentity(ctx context.Context, vendorID string, identity model.Identity) ([]*model.Cost, error)
	// UpsertAll writes every row in one transaction, keyed by
	// (author or session, vendor, kind). Rows get their ID and timestamps filled in.
	UpsertAll(ctx context.Context, costs []*model.Cost) error
	ListByVendor(ctx context.Context, vendorID string, includeDeleted bool) ([]*model.Cost, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*model.Cost, error)
	GetByID(ctx context.Context, id string) (*model.Cost, error)
	SoftDelete(ctx context.Context, id, deletedBy string) error
	Restore(ctx context.Context, id string) error
	// Override sets the admin replacement amount; a nil amount clears it.
	Override(ctx context.Context, id, adminID string, amount *decimal.Decimal, note string) error
	StatsByVendor(ctx context.Context, vendorID string) ([]*model.VendorCostStat, error)
}
