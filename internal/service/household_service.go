package service

import (
	"context"
	"log/slog"

	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/repository"
)

// HouseholdService links residents to verified home addresses.
type HouseholdService interface {
	// VerifyAddress places the user in the household at address, creating
	// the household on first use.
	VerifyAddress(ctx context.Context, userID, address string) (*model.Household, error)
	// ForUser returns the user's household, or repository.ErrNotFound when
	// the user has not verified an address.
	ForUser(ctx context.Context, userID string) (*model.Household, error)
}

type householdService struct {
	users      repository.UserRepository
	households repository.HouseholdRepository
}

// NewHouseholdService creates a HouseholdService.
func NewHouseholdService(users repository.UserRepository, households repository.HouseholdRepository) HouseholdService {
	return &householdService{users: users, households: households}
}

func (s *householdService) VerifyAddress(ctx context.Context, userID, address string) (*model.Household, error) {
	normalized := model.NormalizeAddress(address)
	if normalized == "" {
		return nil, ErrInvalidAddress
	}
	h, err := s.households.FindOrCreateByAddress(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetHousehold(ctx, userID, h.ID); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "address verified", "user_id", userID, "household_id", h.ID)
	return h, nil
}

func (s *householdService) ForUser(ctx context.Context, userID string) (*model.Household, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.HouseholdID == nil {
		return nil, repository.ErrNotFound
	}
	return s.households.FindByID(ctx, *u.HouseholdID)
}
