package service

import (
	"context"
	"log/slog"

	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/repository"
)

// AdminUserService provides admin-only user management operations.
type AdminUserService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error)
	SuspendUser(ctx context.Context, id string, suspend bool) error
	GetUser(ctx context.Context, id string) (*model.User, error)
}

type adminUserService struct {
	userRepo repository.UserRepository
}

// NewAdminUserService creates an AdminUserService.
func NewAdminUserService(userRepo repository.UserRepository) AdminUserService {
	return &adminUserService{userRepo: userRepo}
}

func (s *adminUserService) ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SuspendUser blocks or unblocks a user. Suspended users keep their session
// cookie, but the role middleware turns them away on every request.
func (s *adminUserService) SuspendUser(ctx context.Context, id string, suspend bool) error {
	if err := s.userRepo.Suspend(ctx, id, suspend); err != nil {
		return err
	}
	slog.InfoContext(ctx, "user suspension changed", "user_id", id, "suspended", suspend)
	return nil
}

func (s *adminUserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}
