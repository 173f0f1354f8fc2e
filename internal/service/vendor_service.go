package service

import (
	"context"
	"strings"

	"github.com/neighborly/backend/internal/costmodel"
	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/repository"
)

// CreateVendorInput is the payload for adding a vendor.
type CreateVendorInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
}

// VendorService manages the vendor directory.
type VendorService interface {
	// List returns vendors. category may be any label ParseCategory accepts,
	// or empty for all categories.
	List(ctx context.Context, category string, limit, offset int, includeHidden bool) ([]*model.Vendor, error)
	// Get returns a vendor. Hidden vendors are reported as not found unless
	// includeHidden is set.
	Get(ctx context.Context, id string, includeHidden bool) (*model.Vendor, error)
	Create(ctx context.Context, userID string, in CreateVendorInput) (*model.Vendor, error)
	SetHidden(ctx context.Context, id string, hidden bool) error
}

// VendorServiceImpl is the VendorService implementation.
type VendorServiceImpl struct {
	repo repository.VendorRepository
}

// NewVendorService creates a VendorService.
func NewVendorService(repo repository.VendorRepository) VendorService {
	return &VendorServiceImpl{repo: repo}
}

func (s *VendorServiceImpl) List(ctx context.Context, category string, limit, offset int, includeHidden bool) ([]*model.Vendor, error) {
	opts := model.VendorListOptions{Limit: limit, Offset: offset, IncludeHidden: includeHidden}
	if category != "" {
		c, err := costmodel.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		opts.Category = c
	}
	return s.repo.List(ctx, opts)
}

func (s *VendorServiceImpl) Get(ctx context.Context, id string, includeHidden bool) (*model.Vendor, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.IsHidden() && !includeHidden {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

// Create validates the category against the closed category set; an unknown
// label fails with *costmodel.UnknownCategoryError carrying a suggestion.
func (s *VendorServiceImpl) Create(ctx context.Context, userID string, in CreateVendorInput) (*model.Vendor, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidVendor
	}
	c, err := costmodel.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	v := &model.Vendor{
		Name:      name,
		Category:  c,
		Phone:     strings.TrimSpace(in.Phone),
		Website:   strings.TrimSpace(in.Website),
		CreatedBy: userID,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VendorServiceImpl) SetHidden(ctx context.Context, id string, hidden bool) error {
	return s.repo.SetHidden(ctx, id, hidden)
}
