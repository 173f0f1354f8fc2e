package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/neighborly/backend/internal/costmodel"
	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/service"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// GET /api/vendors/{id}/costs/form
// ---------------------------------------------------------------------------

func TestCostHandler_Form_SignedIn(t *testing.T) {
	var gotIdentity model.Identity
	var gotVendor string
	h := NewCostHandler(&mockCostService{
		formFunc: func(ctx context.Context, vendorID string, identity model.Identity) (*costmodel.Form, error) {
			gotVendor, gotIdentity = vendorID, identity
			f := costmodel.NewForm(costmodel.CategoryHVAC)
			return &f, nil
		},
	})

	rec := serve("GET /api/vendors/{id}/costs/form", h.Form,
		userAuthRequest("GET", "/api/vendors/"+testVendorID+"/costs/form", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotVendor != testVendorID || gotIdentity.UserID != "user-1" {
		t.Errorf("unexpected call: vendor=%q identity=%+v", gotVendor, gotIdentity)
	}
	var form costmodel.Form
	if err := json.NewDecoder(rec.Body).Decode(&form); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if form.Category != costmodel.CategoryHVAC || len(form.Entries) != 2 {
		t.Errorf("unexpected form: %+v", form)
	}
}

func TestCostHandler_Form_SignedOutGetsTemplate(t *testing.T) {
	var gotIdentity model.Identity
	h := NewCostHandler(&mockCostService{
		formFunc: func(ctx context.Context, vendorID string, identity model.Identity) (*costmodel.Form, error) {
			gotIdentity = identity
			f := costmodel.NewForm(costmodel.CategoryPlumbing)
			return &f, nil
		},
	})

	rec := serve("GET /api/vendors/{id}/costs/form", h.Form,
		newRequest("GET", "/api/vendors/"+testVendorID+"/costs/form", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !gotIdentity.IsZero() {
		t.Errorf("expected zero identity, got %+v", gotIdentity)
	}
}

func TestCostHandler_Form_HiddenVendor(t *testing.T) {
	h := NewCostHandler(&mockCostService{
		formFunc: func(ctx context.Context, vendorID string, identity model.Identity) (*costmodel.Form, error) {
			return nil, service.ErrInvalidVendor
		},
	})

	rec := serve("GET /api/vendors/{id}/costs/form", h.Form,
		userAuthRequest("GET", "/api/vendors/"+testVendorID+"/costs/form", ""))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCostHandler_PreviewForm_UsesSession(t *testing.T) {
	var gotIdentity model.Identity
	h := NewCostHandler(&mockCostService{
		formFunc: func(ctx context.Context, vendorID string, identity model.Identity) (*costmodel.Form, error) {
			gotIdentity = identity
			f := costmodel.NewForm(costmodel.CategoryPlumbing)
			return &f, nil
		},
	})

	rec := serve("GET /api/preview/vendors/{id}/costs/form", h.PreviewForm,
		previewRequest("GET", "/api/preview/vendors/"+testVendorID+"/costs/form", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotIdentity.SessionID != "sess-1" || gotIdentity.UserID != "" {
		t.Errorf("expected session identity, got %+v", gotIdentity)
	}
}

// ---------------------------------------------------------------------------
// POST /api/vendors/{id}/costs
// ---------------------------------------------------------------------------

func TestCostHandler_Submit_Created(t *testing.T) {
	var gotIn service.SubmitInput
	h := NewCostHandler(&mockCostService{
		submitFunc: func(ctx context.Context, vendorID string, identity model.Identity, in service.SubmitInput) ([]*model.Cost, error) {
			gotIn = in
			return []*model.Cost{{ID: "c-1", VendorID: vendorID, Kind: costmodel.KindServiceCall, Amount: decimal.RequireFromString("150")}}, nil
		},
	})

	body := `{"entries":[{"cost_kind":"service_call","amount":"150.00"}],"notes":"fast","anonymous":true}`
	rec := serve("POST /api/vendors/{id}/costs", h.Submit,
		userAuthRequest("POST", "/api/vendors/"+testVendorID+"/costs", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(gotIn.Entries) != 1 || gotIn.Entries[0].Kind != costmodel.KindServiceCall {
		t.Fatalf("unexpected input: %+v", gotIn)
	}
	if !gotIn.Entries[0].Amount.Equal(decimal.RequireFromString("150")) {
		t.Errorf("expected amount 150, got %s", gotIn.Entries[0].Amount)
	}
	if gotIn.Notes != "fast" || !gotIn.Anonymous {
		t.Errorf("notes/anonymous not passed through: %+v", gotIn)
	}

	var resp struct {
		Costs []*model.Cost `json:"costs"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Costs) != 1 || resp.Costs[0].ID != "c-1" {
		t.Errorf("unexpected response: %+v", resp.Costs)
	}
}

func TestCostHandler_Submit_Unauthenticated(t *testing.T) {
	called := false
	h := NewCostHandler(&mockCostService{
		submitFunc: func(ctx context.Context, vendorID string, identity model.Identity, in service.SubmitInput) ([]*model.Cost, error) {
			called = true
			return nil, nil
		},
	})

	rec := serve("POST /api/vendors/{id}/costs", h.Submit,
		newRequest("POST", "/api/vendors/"+testVendorID+"/costs", `{"entries":[]}`))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if body := decodeError(t, rec.Body); body["error"] != "sign_in_required" {
		t.Errorf("expected sign_in_required, got %v", body)
	}
	if called {
		t.Error("service should not be called without a user")
	}
}

func TestCostHandler_Submit_InvalidJSON(t *testing.T) {
	h := NewCostHandler(&mockCostService{})

	for _, body := range []string{`{`, `{"entries":[],"extra":1}`, `{"entries":[{"cost_kind":"hourly","amount":"abc"}]}`} {
		rec := serve("POST /api/vendors/{id}/costs", h.Submit,
			userAuthRequest("POST", "/api/vendors/"+testVendorID+"/costs", body))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestCostHandler_Submit_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no entries", costmodel.ErrNoValidEntries, http.StatusUnprocessableEntity, "no_valid_entries"},
		{"address", costmodel.ErrAddressRequired, http.StatusConflict, "address_required"},
		{"auth", costmodel.ErrAuthRequired, http.StatusUnauthorized, "sign_in_required"},
		{"unknown kind", costmodel.ErrUnknownKind, http.StatusUnprocessableEntity, "unknown_cost_kind"},
		{"unstorable amount", costmodel.ErrInvalidAmount, http.StatusUnprocessableEntity, "invalid_amount"},
		{"in flight", service.ErrSubmitInFlight, http.StatusConflict, "submit_in_flight"},
		{"write failed", service.ErrSubmitFailed, http.StatusServiceUnavailable, "submit_failed"},
		{"suspended", service.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"hidden vendor", service.ErrInvalidVendor, http.StatusBadRequest, "invalid_vendor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewCostHandler(&mockCostService{
				submitFunc: func(ctx context.Context, vendorID string, identity model.Identity, in service.SubmitInput) ([]*model.Cost, error) {
					return nil, tc.err
				},
			})
			rec := serve("POST /api/vendors/{id}/costs", h.Submit,
				userAuthRequest("POST", "/api/vendors/"+testVendorID+"/costs", `{"entries":[]}`))

			if rec.Code != tc.status {
				t.Errorf("expected %d, got %d", tc.status, rec.Code)
			}
			if body := decodeError(t, rec.Body); body["error"] != tc.code {
				t.Errorf("expected error=%q, got %v", tc.code, body)
			}
		})
	}
}

func TestCostHandler_PreviewSubmit_RequiresSession(t *testing.T) {
	h := NewCostHandler(&mockCostService{})

	rec := serve("POST /api/preview/vendors/{id}/costs", h.PreviewSubmit,
		newRequest("POST", "/api/preview/vendors/"+testVendorID+"/costs", `{"entries":[]}`))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestCostHandler_PreviewSubmit_UsesSession(t *testing.T) {
	var gotIdentity model.Identity
	h := NewCostHandler(&mockCostService{
		submitFunc: func(ctx context.Context, vendorID string, identity model.Identity, in service.SubmitInput) ([]*model.Cost, error) {
			gotIdentity = identity
			return []*model.Cost{}, nil
		},
	})

	rec := serve("POST /api/preview/vendors/{id}/costs", h.PreviewSubmit,
		previewRequest("POST", "/api/preview/vendors/"+testVendorID+"/costs", `{"entries":[{"cost_kind":"service_call","amount":"90"}]}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotIdentity.SessionID != "sess-1" {
		t.Errorf("expected session identity, got %+v", gotIdentity)
	}
}

// ---------------------------------------------------------------------------
// Public views
// ---------------------------------------------------------------------------

func TestCostHandler_VendorCosts_EmptyIsArray(t *testing.T) {
	h := NewCostHandler(&mockCostService{})

	rec := serve("GET /api/vendors/{id}/costs", h.VendorCosts,
		newRequest("GET", "/api/vendors/"+testVendorID+"/costs", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(resp["costs"]) != "[]" {
		t.Errorf("expected empty array, got %s", resp["costs"])
	}
}

func TestCostHandler_VendorStats_NotFound(t *testing.T) {
	h := NewCostHandler(&mockCostService{
		vendorStatsFunc: func(ctx context.Context, vendorID string) ([]*model.VendorCostStat, error) {
			return nil, errNotFound()
		},
	})

	rec := serve("GET /api/vendors/{id}/costs/stats", h.VendorStats,
		newRequest("GET", "/api/vendors/"+testMissingID+"/costs/stats", ""))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCostHandler_MyCosts(t *testing.T) {
	var gotUser string
	h := NewCostHandler(&mockCostService{
		myCostsFunc: func(ctx context.Context, userID string) ([]*model.Cost, error) {
			gotUser = userID
			return []*model.Cost{{ID: "c-1"}}, nil
		},
	})

	rec := serve("GET /api/me/costs", h.MyCosts, userAuthRequest("GET", "/api/me/costs", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != "user-1" {
		t.Errorf("expected user-1, got %q", gotUser)
	}

	rec = serve("GET /api/me/costs", h.MyCosts, newRequest("GET", "/api/me/costs", ""))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without user, got %d", rec.Code)
	}
}
