package model

import (
	"time"

	"github.com/neighborly/backend/internal/costmodel"
	"github.com/shopspring/decimal"
)

// Cost is one persisted cost row. There is at most one live row per
// (author, vendor, kind), or per (session, vendor, kind) for previews.
type Cost struct {
	ID          string           `json:"id"`
	VendorID    string           `json:"vendor_id"`
	HouseholdID string           `json:"household_id,omitempty"`
	SessionID   string           `json:"-"`
	AuthorID    string           `json:"author_id,omitempty"`
	Kind        costmodel.Kind   `json:"cost_kind"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    string           `json:"currency"`
	Unit        costmodel.Unit   `json:"unit,omitempty"`
	Period      costmodel.Period `json:"period,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Anonymous   bool             `json:"anonymous"`

	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy string     `json:"deleted_by,omitempty"`

	OverrideAmount *decimal.Decimal `json:"override_amount,omitempty"`
	OverrideNote   string           `json:"override_note,omitempty"`
	OverriddenBy   string           `json:"overridden_by,omitempty"`
	OverriddenAt   *time.Time       `json:"overridden_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDeleted reports whether an admin has soft-deleted the row.
func (c *Cost) IsDeleted() bool {
	return c.DeletedAt != nil
}

// EffectiveAmount is the admin override when one is set, else the amount
// the resident entered.
func (c *Cost) EffectiveAmount() decimal.Decimal {
	if c.OverrideAmount != nil {
		return *c.OverrideAmount
	}
	return c.Amount
}

// Public returns a copy safe to show other residents: anonymous rows lose
// their author and household, and moderation details are dropped.
func (c *Cost) Public() *Cost {
	out := *c
	out.Amount = c.EffectiveAmount()
	out.OverrideAmount = nil
	out.OverrideNote = ""
	out.OverriddenBy = ""
	out.OverriddenAt = nil
	out.DeletedBy = ""
	if c.Anonymous {
		out.AuthorID = ""
		out.HouseholdID = ""
	}
	return &out
}

// Persisted converts the row into the shape the cost form prefills from.
func (c *Cost) Persisted() costmodel.PersistedCost {
	amount := c.Amount
	p := costmodel.PersistedCost{
		Kind:      c.Kind,
		Amount:    &amount,
		Unit:      c.Unit,
		Period:    c.Period,
		Notes:     c.Notes,
		Anonymous: c.Anonymous,
		CreatedAt: c.CreatedAt,
	}
	if c.Quantity != nil {
		q := *c.Quantity
		p.Quantity = &q
	}
	return p
}

// PersistedCosts converts rows for costmodel.Merge.
func PersistedCosts(costs []*Cost) []costmodel.PersistedCost {
	out := make([]costmodel.PersistedCost, 0, len(costs))
	for _, c := range costs {
		out = append(out, c.Persisted())
	}
	return out
}

// CostFromRecord builds an unsaved row from a normalized record.
func CostFromRecord(r costmodel.Record) *Cost {
	c := &Cost{
		VendorID:    r.VendorID,
		HouseholdID: r.HouseholdID,
		SessionID:   r.SessionID,
		AuthorID:    r.AuthorID,
		Kind:        r.Kind,
		Amount:      r.Amount,
		Currency:    r.Currency,
		Unit:        r.Unit,
		Period:      r.Period,
		Notes:       r.Notes,
		Anonymous:   r.Anonymous,
	}
	if r.Quantity != nil {
		q := *r.Quantity
		c.Quantity = &q
	}
	return c
}

// VendorCostStat aggregates live costs of one kind for a vendor.
type VendorCostStat struct {
	Kind       costmodel.Kind  `json:"cost_kind"`
	Count      int             `json:"count"`
	Households int             `json:"households"`
	Average    decimal.Decimal `json:"average"`
	Min        decimal.Decimal `json:"min"`
	Max        decimal.Decimal `json:"max"`
}
