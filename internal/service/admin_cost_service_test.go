package service

import (
	"context"
	"errors"
	"testing"

	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/repository"
	"github.com/shopspring/decimal"
)

func TestAdminCostService_List_RequiresVendor(t *testing.T) {
	svc := NewAdminCostService(&mockCostRepository{})

	if _, err := svc.List(context.Background(), "", true); !errors.Is(err, ErrInvalidVendor) {
		t.Errorf("expected ErrInvalidVendor, got %v", err)
	}
}

func TestAdminCostService_List_ForwardsIncludeDeleted(t *testing.T) {
	var captured bool
	svc := NewAdminCostService(&mockCostRepository{
		listByVendorFunc: func(ctx context.Context, vendorID string, includeDeleted bool) ([]*model.Cost, error) {
			captured = includeDeleted
			return nil, nil
		},
	})

	if _, err := svc.List(context.Background(), "v1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !captured {
		t.Error("expected includeDeleted=true to reach the repository")
	}
}

func TestAdminCostService_SoftDelete_RecordsAdmin(t *testing.T) {
	var capturedBy string
	svc := NewAdminCostService(&mockCostRepository{
		softDeleteFunc: func(ctx context.Context, id, deletedBy string) error {
			capturedBy = deletedBy
			return nil
		},
	})

	if err := svc.SoftDelete(context.Background(), "c1", "admin-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedBy != "admin-1" {
		t.Errorf("expected deleted_by=admin-1, got %q", capturedBy)
	}
}

func TestAdminCostService_Restore_PropagatesState(t *testing.T) {
	svc := NewAdminCostService(&mockCostRepository{
		restoreFunc: func(ctx context.Context, id string) error {
			return repository.ErrNotLive
		},
	})

	if err := svc.Restore(context.Background(), "c1"); !errors.Is(err, repository.ErrNotLive) {
		t.Errorf("expected ErrNotLive, got %v", err)
	}
}

func TestAdminCostService_Override(t *testing.T) {
	var capturedNote string
	var capturedAmount *decimal.Decimal
	svc := NewAdminCostService(&mockCostRepository{
		overrideFunc: func(ctx context.Context, id, adminID string, amount *decimal.Decimal, note string) error {
			capturedAmount, capturedNote = amount, note
			return nil
		},
		getByIDFunc: func(ctx context.Context, id string) (*model.Cost, error) {
			return &model.Cost{ID: id, Amount: decimal.NewFromInt(1500), OverrideAmount: capturedAmount}, nil
		},
	})

	got, err := svc.Override(context.Background(), "c1", "admin-1", amount("150"), "  extra zero  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedNote != "extra zero" {
		t.Errorf("expected trimmed note, got %q", capturedNote)
	}
	if !got.EffectiveAmount().Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected effective amount 150, got %s", got.EffectiveAmount())
	}
}

func TestAdminCostService_Override_RejectsUnstorableAmounts(t *testing.T) {
	svc := NewAdminCostService(&mockCostRepository{
		overrideFunc: func(ctx context.Context, id, adminID string, amount *decimal.Decimal, note string) error {
			t.Error("did not expect a write")
			return nil
		},
	})

	for _, a := range []string{"0", "-10", "0.004", "12.345", "10000000000"} {
		if _, err := svc.Override(context.Background(), "c1", "admin-1", amount(a), ""); !errors.Is(err, ErrInvalidOverride) {
			t.Errorf("amount %s: expected ErrInvalidOverride, got %v", a, err)
		}
	}
}

func TestAdminCostService_Override_ClearWithNil(t *testing.T) {
	called := false
	svc := NewAdminCostService(&mockCostRepository{
		overrideFunc: func(ctx context.Context, id, adminID string, amount *decimal.Decimal, note string) error {
			called = true
			if amount != nil {
				t.Errorf("expected nil amount, got %v", amount)
			}
			return nil
		},
		getByIDFunc: func(ctx context.Context, id string) (*model.Cost, error) {
			return &model.Cost{ID: id}, nil
		},
	})

	if _, err := svc.Override(context.Background(), "c1", "admin-1", nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected repository Override to be called")
	}
}
