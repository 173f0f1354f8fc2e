package service

import (
	"context"

	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/repository"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepository struct {
	findByIDFunc     func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc  func(ctx context.Context, email string) (*model.User, error)
	createFunc       func(ctx context.Context, user *model.User) error
	listFunc         func(ctx context.Context, limit, offset int) ([]*model.User, error)
	suspendFunc      func(ctx context.Context, id string, suspend bool) error
	setHouseholdFunc func(ctx context.Context, userID, householdID string) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}
func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}
func (m *mockUserRepository) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return nil, nil
}
func (m *mockUserRepository) Suspend(ctx context.Context, id string, suspend bool) error {
	if m.suspendFunc != nil {
		return m.suspendFunc(ctx, id, suspend)
	}
	return nil
}
func (m *mockUserRepository) SetHousehold(ctx context.Context, userID, householdID string) error {
	if m.setHouseholdFunc != nil {
		return m.setHouseholdFunc(ctx, userID, householdID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock HouseholdRepository
// ---------------------------------------------------------------------------

type mockHouseholdRepository struct {
	findOrCreateFunc func(ctx context.Context, address string) (*model.Household, error)
	findByIDFunc     func(ctx context.Context, id string) (*model.Household, error)
}

func (m *mockHouseholdRepository) FindOrCreateByAddress(ctx context.Context, address string) (*model.Household, error) {
	if m.findOrCreateFunc != nil {
		return m.findOrCreateFunc(ctx, address)
	}
	return &model.Household{ID: "hh-1", Address: address}, nil
}
func (m *mockHouseholdRepository) FindByID(ctx context.Context, id string) (*model.Household, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

// ---------------------------------------------------------------------------
// Mock VendorRepository
// ---------------------------------------------------------------------------

type mockVendorRepository struct {
	listFunc      func(ctx context.Context, opts model.VendorListOptions) ([]*model.Vendor, error)
	getByIDFunc   func(ctx context.Context, id string) (*model.Vendor, error)
	createFunc    func(ctx context.Context, vendor *model.Vendor) error
	setHiddenFunc func(ctx context.Context, id string, hidden bool) error
}

func (m *mockVendorRepository) List(ctx context.Context, opts model.VendorListOptions) ([]*model.Vendor, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}
func (m *mockVendorRepository) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockVendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, vendor)
	}
	vendor.ID = "vendor-new"
	return nil
}
func (m *mockVendorRepository) SetHidden(ctx context.Context, id string, hidden bool) error {
	if m.setHiddenFunc != nil {
		return m.setHiddenFunc(ctx, id, hidden)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock CostRepository
// ---------------------------------------------------------------------------

type mockCostRepository struct {
	listForIdentityFunc func(ctx context.Context, vendorID string, identity model.Identity) ([]*model.Cost, error)
	upsertAllFunc       func(ctx context.Context, costs []*model.Cost) error
	listByVendorFunc    func(ctx context.Context, vendorID string, includeDeleted bool) ([]*model.Cost, error)
	listByAuthorFunc    func(ctx context.Context, authorID string) ([]*model.Cost, error)
	getByIDFunc         func(ctx context.Context, id string) (*model.Cost, error)
	softDeleteFunc      func(ctx context.Context, id, deletedBy string) error
	restoreFunc         func(ctx context.Context, id string) error
	overrideFunc        func(ctx context.Context, id, adminID string, amount *decimal.Decimal, note string) error
	statsByVendorFunc   func(ctx context.Context, vendorID string) ([]*model.VendorCostStat, error)
}

func (m *mockCostRepository) ListForIdentity(ctx context.Context, vendorID string, identity model.Identity) ([]*model.Cost, error) {
	if m.listForIdentityFunc != nil {
		return m.listForIdentityFunc(ctx, vendorID, identity)
	}
	return nil, nil
}
func (m *mockCostRepository) UpsertAll(ctx context.Context, costs []*model.Cost) error {
	if m.upsertAllFunc != nil {
		return m.upsertAllFunc(ctx, costs)
	}
	return nil
}
func (m *mockCostRepository) ListByVendor(ctx context.Context, vendorID string, includeDeleted bool) ([]*model.Cost, error) {
	if m.listByVendorFunc != nil {
		return m.listByVendorFunc(ctx, vendorID, includeDeleted)
	}
	return nil, nil
}
func (m *mockCostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*model.Cost, error) {
	if m.listByAuthorFunc != nil {
		return m.listByAuthorFunc(ctx, authorID)
	}
	return nil, nil
}
func (m *mockCostRepository) GetByID(ctx context.Context, id string) (*model.Cost, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockCostRepository) SoftDelete(ctx context.Context, id, deletedBy string) error {
	if m.softDeleteFunc != nil {
		return m.softDeleteFunc(ctx, id, deletedBy)
	}
	return nil
}
func (m *mockCostRepository) Restore(ctx context.Context, id string) error {
	if m.restoreFunc != nil {
		return m.restoreFunc(ctx, id)
	}
	return nil
}
func (m *mockCostRepository) Override(ctx context.Context, id, adminID string, amount *decimal.Decimal, note string) error {
	if m.overrideFunc != nil {
		return m.overrideFunc(ctx, id, adminID, amount, note)
	}
	return nil
}
func (m *mockCostRepository) StatsByVendor(ctx context.Context, vendorID string) ([]*model.VendorCostStat, error) {
	if m.statsByVendorFunc != nil {
		return m.statsByVendorFunc(ctx, vendorID)
	}
	return nil, nil
}
