package model

import (
	"time"

	"github.com/neighborly/backend/internal/costmodel"
)

type Vendor struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Category  costmodel.Category `json:"category"`
	Phone     string             `json:"phone,omitempty"`
	Website   string             `json:"website,omitempty"`
	CreatedBy string             `json:"created_by,omitempty"`
	HiddenAt  *time.Time         `json:"hidden_at,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// IsHidden reports whether an admin has taken the vendor off public listings.
func (v *Vendor) IsHidden() bool {
	return v.HiddenAt != nil
}

// VendorListOptions carries filter and pagination parameters for listing vendors.
type VendorListOptions struct {
	// Category filters by category key; empty returns every category.
	Category      costmodel.Category
	IncludeHidden bool
	Limit         int
	Offset        int
}
