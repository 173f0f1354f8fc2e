package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/neighborly/backend/internal/costmodel"
	"github.com/neighborly/backend/internal/guard"
	"github.com/neighborly/backend/internal/metrics"
	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/repository"
	"github.com/shopspring/decimal"
)

// DefaultSubmitTimeout bounds how long a submission may spend writing.
const DefaultSubmitTimeout = 15 * time.Second

// EntryInput is one cost line as posted by the form. A nil Amount leaves the
// entry empty; Unit and Period are only changed when set.
type EntryInput struct {
	Kind     costmodel.Kind    `json:"cost_kind"`
	Amount   *decimal.Decimal  `json:"amount"`
	Quantity *decimal.Decimal  `json:"quantity"`
	Unit     *costmodel.Unit   `json:"unit,omitempty"`
	Period   *costmodel.Period `json:"period,omitempty"`
}

// SubmitInput is a whole cost form submission.
type SubmitInput struct {
	Entries   []EntryInput `json:"entries"`
	Notes     string       `json:"notes"`
	Anonymous bool         `json:"anonymous"`
}

// CostService builds cost forms and saves what residents submit.
type CostService interface {
	// Form returns the cost form for a vendor, prefilled with what the
	// identity saved before. A failed prefill read serves the bare template.
	Form(ctx context.Context, vendorID string, identity model.Identity) (*costmodel.Form, error)
	Submit(ctx context.Context, vendorID string, identity model.Identity, in SubmitInput) ([]*model.Cost, error)
	// ListVendorCosts returns live costs for a vendor as other residents may see them.
	ListVendorCosts(ctx context.Context, vendorID string) ([]*model.Cost, error)
	VendorStats(ctx context.Context, vendorID string) ([]*model.VendorCostStat, error)
	MyCosts(ctx context.Context, userID string) ([]*model.Cost, error)
}

// CostServiceImpl is the CostService implementation.
type CostServiceImpl struct {
	costs         repository.CostRepository
	vendors       repository.VendorRepository
	users         repository.UserRepository
	guard         guard.Guard
	metrics       *metrics.Metrics
	submitTimeout time.Duration
}

// NewCostService creates a CostService. A nil guard falls back to an
// in-process guard; nil metrics disables reporting.
func NewCostService(
	costs repository.CostRepository,
	vendors repository.VendorRepository,
	users repository.UserRepository,
	g guard.Guard,
	m *metrics.Metrics,
	submitTimeout time.Duration,
) *CostServiceImpl {
	if g == nil {
		g = guard.NewLocalGuard()
	}
	if submitTimeout <= 0 {
		submitTimeout = DefaultSubmitTimeout
	}
	return &CostServiceImpl{
		costs:         costs,
		vendors:       vendors,
		users:         users,
		guard:         g,
		metrics:       m,
		submitTimeout: submitTimeout,
	}
}

// openVendor returns a vendor that accepts costs.
func (s *CostServiceImpl) openVendor(ctx context.Context, vendorID string) (*model.Vendor, error) {
	v, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if v.IsHidden() {
		return nil, ErrInvalidVendor
	}
	return v, nil
}

func (s *CostServiceImpl) Form(ctx context.Context, vendorID string, identity model.Identity) (*costmodel.Form, error) {
	v, err := s.openVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	form := costmodel.NewForm(v.Category)
	if identity.IsZero() {
		return &form, nil
	}

	rows, err := s.costs.ListForIdentity(ctx, v.ID, identity)
	if err != nil {
		slog.WarnContext(ctx, "cost prefill failed, serving empty form",
			"error", err, "vendor_id", v.ID, "identity", identity.Key())
		s.metrics.IncPrefillFailure()
		return &form, nil
	}
	form = form.Prefill(model.PersistedCosts(rows))
	return &form, nil
}

func (s *CostServiceImpl) Submit(ctx context.Context, vendorID string, identity model.Identity, in SubmitInput) (_ []*model.Cost, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveSubmit(err, time.Since(start)) }()

	if identity.IsZero() {
		return nil, costmodel.ErrAuthRequired
	}
	v, err := s.openVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	scope, err := s.scopeFor(ctx, v.ID, identity, in.Anonymous)
	if err != nil {
		return nil, err
	}

	onFile, err := s.costs.ListForIdentity(ctx, v.ID, identity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	form, err := buildForm(costmodel.NewForm(v.Category).Offer(kindsOf(onFile)...), in)
	if err != nil {
		return nil, err
	}
	records, err := costmodel.Normalize(form, scope)
	if err != nil {
		return nil, err
	}

	lease, err := s.guard.Acquire(ctx, submitKey(identity, v.ID), s.submitTimeout)
	switch {
	case errors.Is(err, guard.ErrHeld):
		return nil, fmt.Errorf("%w: %w", ErrSubmitInFlight, err)
	case err != nil:
		// The upsert alone keeps rows unique; the guard only saves duplicate work.
		slog.WarnContext(ctx, "submit guard unavailable", "error", err, "vendor_id", v.ID)
	default:
		defer func() {
			if rerr := lease.Release(context.WithoutCancel(ctx)); rerr != nil {
				slog.WarnContext(ctx, "submit guard release failed", "error", rerr, "vendor_id", v.ID)
			}
		}()
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.submitTimeout)
	defer cancel()

	costs := make([]*model.Cost, len(records))
	for i, r := range records {
		costs[i] = model.CostFromRecord(r)
	}
	if err := s.costs.UpsertAll(writeCtx, costs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	for _, c := range costs {
		s.metrics.AddEntriesWritten(c.Kind, 1)
	}
	slog.InfoContext(ctx, "costs submitted", "vendor_id", v.ID, "identity", identity.Key(), "entries", len(costs))
	return costs, nil
}

// scopeFor resolves the submission scope. Residents submit on behalf of their
// verified household; a preview session has no household.
func (s *CostServiceImpl) scopeFor(ctx context.Context, vendorID string, identity model.Identity, anonymous bool) (costmodel.Scope, error) {
	scope := costmodel.Scope{VendorID: vendorID, Anonymous: anonymous}
	if identity.UserID == "" {
		scope.SessionID = identity.SessionID
		return scope, nil
	}
	u, err := s.users.FindByID(ctx, identity.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return scope, costmodel.ErrAuthRequired
	}
	if err != nil {
		return scope, err
	}
	if u.IsSuspended() {
		return scope, ErrForbidden
	}
	scope.AuthorID = u.ID
	if u.HouseholdID != nil {
		scope.HouseholdID = *u.HouseholdID
	}
	return scope, nil
}

// buildForm applies posted entries to the offered form, matching by kind.
func buildForm(form costmodel.Form, in SubmitInput) (costmodel.Form, error) {
	seen := make(map[costmodel.Kind]bool, len(in.Entries))
	for _, e := range in.Entries {
		i := form.IndexOf(e.Kind)
		if i < 0 {
			return form, fmt.Errorf("%w: %q", costmodel.ErrUnknownKind, e.Kind)
		}
		if seen[e.Kind] {
			return form, fmt.Errorf("%w: %q", costmodel.ErrDuplicateKind, e.Kind)
		}
		seen[e.Kind] = true

		var err error
		form, err = form.Apply(i, costmodel.Patch{
			Amount:   e.Amount,
			Quantity: e.Quantity,
			Unit:     e.Unit,
			Period:   e.Period,
		})
		if err != nil {
			return form, err
		}
	}
	return form.WithNotes(in.Notes), nil
}

func kindsOf(costs []*model.Cost) []costmodel.Kind {
	out := make([]costmodel.Kind, 0, len(costs))
	for _, c := range costs {
		out = append(out, c.Kind)
	}
	return out
}

func submitKey(identity model.Identity, vendorID string) string {
	return "cost-submit:" + identity.Key() + ":" + vendorID
}

func (s *CostServiceImpl) ListVendorCosts(ctx context.Context, vendorID string) ([]*model.Cost, error) {
	if _, err := s.openVendor(ctx, vendorID); err != nil {
		return nil, err
	}
	rows, err := s.costs.ListByVendor(ctx, vendorID, false)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Cost, 0, len(rows))
	for _, c := range rows {
		// Preview sessions are throwaway; only residents' costs are published.
		if c.AuthorID == "" {
			continue
		}
		out = append(out, c.Public())
	}
	return out, nil
}

func (s *CostServiceImpl) VendorStats(ctx context.Context, vendorID string) ([]*model.VendorCostStat, error) {
	if _, err := s.openVendor(ctx, vendorID); err != nil {
		return nil, err
	}
	return s.costs.StatsByVendor(ctx, vendorID)
}

func (s *CostServiceImpl) MyCosts(ctx context.Context, userID string) ([]*model.Cost, error) {
	return s.costs.ListByAuthor(ctx, userID)
}
