package costmodel

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is the only currency costs are recorded in.
const Currency = "USD"

// Scope holds the submission-level fields that do not live on entries.
// A signed-in resident sets AuthorID and HouseholdID; a preview session sets
// SessionID only.
type Scope struct {
	VendorID    string
	AuthorID    string
	HouseholdID string
	SessionID   string
	Anonymous   bool
}

// Record is one cost row ready to be upserted. At most one record per Kind
// is produced for a submission.
type Record struct {
	VendorID    string
	AuthorID    string
	HouseholdID string
	SessionID   string
	Kind        Kind
	Amount      decimal.Decimal
	Currency    string
	Unit        Unit
	Period      Period
	Quantity    *decimal.Decimal
	Notes       string
	Anonymous   bool
}

func (s Scope) check() error {
	if s.AuthorID == "" && s.SessionID == "" {
		return ErrAuthRequired
	}
	if s.AuthorID != "" && s.HouseholdID == "" {
		return ErrAddressRequired
	}
	return nil
}

// Normalize turns a form into the records to persist. Entries without a
// positive amount are dropped, a monthly plan with no period is recorded as
// monthly, and a repeated kind keeps its first entry. It fails with
// ErrAuthRequired, then ErrAddressRequired, then ErrInvalidAmount or
// ErrInvalidQuantity, then ErrNoValidEntries.
func Normalize(f Form, s Scope) ([]Record, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	notes := strings.TrimSpace(f.Notes)
	seen := make(map[Kind]bool, len(f.Entries))
	var out []Record
	for _, e := range f.Entries {
		if e.Amount == nil {
			continue
		}
		if err := CheckAmount(*e.Amount); err != nil {
			return nil, err
		}
		if !e.Amount.IsPositive() {
			continue
		}
		if e.Quantity != nil {
			if err := CheckQuantity(*e.Quantity); err != nil {
				return nil, err
			}
		}
		if seen[e.Kind] {
			continue
		}
		seen[e.Kind] = true

		period := e.Period
		if period == PeriodNone && e.Kind == KindMonthlyPlan {
			period = PeriodMonthly
		}
		rec := Record{
			VendorID:    s.VendorID,
			AuthorID:    s.AuthorID,
			HouseholdID: s.HouseholdID,
			SessionID:   s.SessionID,
			Kind:        e.Kind,
			Amount:      *e.Amount,
			Currency:    Currency,
			Unit:        e.Unit,
			Period:      period,
			Notes:       notes,
			Anonymous:   s.Anonymous,
		}
		if e.Quantity != nil {
			q := *e.Quantity
			rec.Quantity = &q
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, ErrNoValidEntries
	}
	return out, nil
}
