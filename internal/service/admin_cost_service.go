package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/neighborly/backend/internal/costmodel"
	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/repository"
	"github.com/shopspring/decimal"
)

// AdminCostService provides admin-only moderation of submitted costs.
type AdminCostService interface {
	List(ctx context.Context, vendorID string, includeDeleted bool) ([]*model.Cost, error)
	SoftDelete(ctx context.Context, id, adminID string) error
	Restore(ctx context.Context, id string) error
	// Override replaces the amount shown to residents; a nil amount removes
	// an earlier override. It returns the updated row.
	Override(ctx context.Context, id, adminID string, amount *decimal.Decimal, note string) (*model.Cost, error)
}

type adminCostService struct {
	costs repository.CostRepository
}

// NewAdminCostService creates an AdminCostService.
func NewAdminCostService(costs repository.CostRepository) AdminCostService {
	return &adminCostService{costs: costs}
}

func (s *adminCostService) List(ctx context.Context, vendorID string, includeDeleted bool) ([]*model.Cost, error) {
	if vendorID == "" {
		return nil, ErrInvalidVendor
	}
	return s.costs.ListByVendor(ctx, vendorID, includeDeleted)
}

func (s *adminCostService) SoftDelete(ctx context.Context, id, adminID string) error {
	if err := s.costs.SoftDelete(ctx, id, adminID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "cost soft-deleted", "cost_id", id, "admin_id", adminID)
	return nil
}

func (s *adminCostService) Restore(ctx context.Context, id string) error {
	return s.costs.Restore(ctx, id)
}

func (s *adminCostService) Override(ctx context.Context, id, adminID string, amount *decimal.Decimal, note string) (*model.Cost, error) {
	if amount != nil && (!amount.IsPositive() || costmodel.CheckAmount(*amount) != nil) {
		return nil, ErrInvalidOverride
	}
	if err := s.costs.Override(ctx, id, adminID, amount, strings.TrimSpace(note)); err != nil {
		return nil, err
	}
	return s.costs.GetByID(ctx, id)
}
