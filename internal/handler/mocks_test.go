package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/neighborly/backend/internal/costmodel"
	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/service"
	"github.com/neighborly/backend/pkg/auth"
	"github.com/shopspring/decimal"
)

const (
	testVendorID    = "9b2e4c1a-7d3f-4e8b-a6c2-5f1d0e3b7a49"
	testCostID      = "0c7d3e5f-1a2b-4c6d-8e9f-a0b1c2d3e4f5"
	testUserID      = "3d8a1f6c-2b7e-4e9d-a5c0-7f1b2e3d4c58"
	testOtherUserID = "5e6f7a8b-9c0d-4e1f-a2b3-c4d5e6f7a8b9"
	testMissingID   = "7a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
)

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

func newRequest(method, url, body string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, url, rd)
	r.Header.Set("Content-Type", "application/json")
	return r
}

func userAuthRequest(method, url, body string) *http.Request {
	r := newRequest(method, url, body)
	ctx := auth.WithUserID(r.Context(), "user-1")
	ctx = auth.WithIsAdmin(ctx, false)
	return r.WithContext(ctx)
}

func adminRequest(method, url, body string) *http.Request {
	r := newRequest(method, url, body)
	ctx := auth.WithUserID(r.Context(), "admin-1")
	ctx = auth.WithIsAdmin(ctx, true)
	return r.WithContext(ctx)
}

func previewRequest(method, url, body string) *http.Request {
	r := newRequest(method, url, body)
	return r.WithContext(auth.WithSessionID(r.Context(), "sess-1"))
}

// serve routes r through a mux so path values are populated.
func serve(pattern string, h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, r)
	return rec
}

// ---------------------------------------------------------------------------
// Mock CostService
// ---------------------------------------------------------------------------

type mockCostService struct {
	formFunc            func(ctx context.Context, vendorID string, identity model.Identity) (*costmodel.Form, error)
	submitFunc          func(ctx context.Context, vendorID string, identity model.Identity, in service.SubmitInput) ([]*model.Cost, error)
	listVendorCostsFunc func(ctx context.Context, vendorID string) ([]*model.Cost, error)
	vendorStatsFunc     func(ctx context.Context, vendorID string) ([]*model.VendorCostStat, error)
	myCostsFunc         func(ctx context.Context, userID string) ([]*model.Cost, error)
}

func (m *mockCostService) Form(ctx context.Context, vendorID string, identity model.Identity) (*costmodel.Form, error) {
	if m.formFunc != nil {
		return m.formFunc(ctx, vendorID, identity)
	}
	f := costmodel.NewForm(costmodel.CategoryPlumbing)
	return &f, nil
}
func (m *mockCostService) Submit(ctx context.Context, vendorID string, identity model.Identity, in service.SubmitInput) ([]*model.Cost, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, vendorID, identity, in)
	}
	return nil, nil
}
func (m *mockCostService) ListVendorCosts(ctx context.Context, vendorID string) ([]*model.Cost, error) {
	if m.listVendorCostsFunc != nil {
		return m.listVendorCostsFunc(ctx, vendorID)
	}
	return nil, nil
}
func (m *mockCostService) VendorStats(ctx context.Context, vendorID string) ([]*model.VendorCostStat, error) {
	if m.vendorStatsFunc != nil {
		return m.vendorStatsFunc(ctx, vendorID)
	}
	return nil, nil
}
func (m *mockCostService) MyCosts(ctx context.Context, userID string) ([]*model.Cost, error) {
	if m.myCostsFunc != nil {
		return m.myCostsFunc(ctx, userID)
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// Mock VendorService
// ---------------------------------------------------------------------------

type mockVendorService struct {
	listFunc      func(ctx context.Context, category string, limit, offset int, includeHidden bool) ([]*model.Vendor, error)
	getFunc       func(ctx context.Context, id string, includeHidden bool) (*model.Vendor, error)
	createFunc    func(ctx context.Context, userID string, in service.CreateVendorInput) (*model.Vendor, error)
	setHiddenFunc func(ctx context.Context, id string, hidden bool) error
}

func (m *mockVendorService) List(ctx context.Context, category string, limit, offset int, includeHidden bool) ([]*model.Vendor, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, category, limit, offset, includeHidden)
	}
	return nil, nil
}
func (m *mockVendorService) Get(ctx context.Context, id string, includeHidden bool) (*model.Vendor, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id, includeHidden)
	}
	return &model.Vendor{ID: id}, nil
}
func (m *mockVendorService) Create(ctx context.Context, userID string, in service.CreateVendorInput) (*model.Vendor, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, in)
	}
	return &model.Vendor{ID: "vendor-new", Name: in.Name}, nil
}
func (m *mockVendorService) SetHidden(ctx context.Context, id string, hidden bool) error {
	if m.setHiddenFunc != nil {
		return m.setHiddenFunc(ctx, id, hidden)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mock HouseholdService
// ---------------------------------------------------------------------------

type mockHouseholdService struct {
	verifyFunc  func(ctx context.Context, userID, address string) (*model.Household, error)
	forUserFunc func(ctx context.Context, userID string) (*model.Household, error)
}

func (m *mockHouseholdService) VerifyAddress(ctx context.Context, userID, address string) (*model.Household, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, userID, address)
	}
	return &model.Household{ID: "hh-1", Address: model.NormalizeAddress(address)}, nil
}
func (m *mockHouseholdService) ForUser(ctx context.Context, userID string) (*model.Household, error) {
	if m.forUserFunc != nil {
		return m.forUserFunc(ctx, userID)
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// Mock AdminCostService
// ---------------------------------------------------------------------------

type mockAdminCostService struct {
	listFunc       func(ctx context.Context, vendorID string, includeDeleted bool) ([]*model.Cost, error)
	softDeleteFunc func(ctx context.Context, id, adminID string) error
	restoreFunc    func(ctx context.Context, id string) error
	overrideFunc   func(ctx context.Context, id, adminID string, amount *decimal.Decimal, note string) (*model.Cost, error)
}

func (m *mockAdminCostService) List(ctx context.Context, vendorID string, includeDeleted bool) ([]*model.Cost, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, vendorID, includeDeleted)
	}
	return nil, nil
}
func (m *mockAdminCostService) SoftDelete(ctx context.Context, id, adminID string) error {
	if m.softDeleteFunc != nil {
		return m.softDeleteFunc(ctx, id, adminID)
	}
	return nil
}
func (m *mockAdminCostService) Restore(ctx context.Context, id string) error {
	if m.restoreFunc != nil {
		return m.restoreFunc(ctx, id)
	}
	return nil
}
func (m *mockAdminCostService) Override(ctx context.Context, id, adminID string, amount *decimal.Decimal, note string) (*model.Cost, error) {
	if m.overrideFunc != nil {
		return m.overrideFunc(ctx, id, adminID, amount, note)
	}
	return &model.Cost{ID: id}, nil
}

// ---------------------------------------------------------------------------
// Mock AdminUserService
// ---------------------------------------------------------------------------

type mockAdminUserService struct {
	listUsersFunc func(ctx context.Context, limit, offset int) ([]*model.User, error)
	suspendFunc   func(ctx context.Context, id string, suspend bool) error
	getUserFunc   func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockAdminUserService) ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx, limit, offset)
	}
	return nil, nil
}
func (m *mockAdminUserService) SuspendUser(ctx context.Context, id string, suspend bool) error {
	if m.suspendFunc != nil {
		return m.suspendFunc(ctx, id, suspend)
	}
	return nil
}
func (m *mockAdminUserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, id)
	}
	return nil, nil
}
