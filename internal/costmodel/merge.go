package costmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersistedCost is a previously saved cost row as read back for prefill.
type PersistedCost struct {
	Kind      Kind
	Amount    *decimal.Decimal
	Unit      Unit
	Period    Period
	Quantity  *decimal.Decimal
	Notes     string
	Anonymous bool
	CreatedAt time.Time
}

// latestByKind keeps the most recent row per kind and remembers the order in
// which kinds were first seen.
func latestByKind(rows []PersistedCost) (map[Kind]PersistedCost, []Kind) {
	latest := make(map[Kind]PersistedCost, len(rows))
	var order []Kind
	for _, r := range rows {
		cur, seen := latest[r.Kind]
		if !seen {
			order = append(order, r.Kind)
			latest[r.Kind] = r
			continue
		}
		if r.CreatedAt.After(cur.CreatedAt) {
			latest[r.Kind] = r
		}
	}
	return latest, order
}

func overlay(base Entry, r PersistedCost) Entry {
	out := base.clone()
	if r.Amount != nil {
		a := *r.Amount
		out.Amount = &a
	}
	if r.Quantity != nil {
		q := *r.Quantity
		out.Quantity = &q
	}
	if r.Unit != "" {
		out.Unit = r.Unit
	}
	if r.Period != "" {
		out.Period = r.Period
	}
	return out
}

// Merge overlays saved rows onto template entries. The latest row of a kind
// wins; template values fill any field the row left empty. Kinds the user has
// on file that the template does not offer are appended after the template
// entries, in the order they first appear in rows. The result never holds two
// entries of the same kind.
func Merge(template []Entry, rows []PersistedCost) []Entry {
	latest, order := latestByKind(rows)

	out := make([]Entry, 0, len(template)+len(order))
	used := make(map[Kind]bool, len(template))
	for _, e := range template {
		if used[e.Kind] {
			continue
		}
		used[e.Kind] = true
		if r, ok := latest[e.Kind]; ok {
			out = append(out, overlay(e, r))
			continue
		}
		out = append(out, e.clone())
	}
	for _, k := range order {
		if used[k] || !k.Valid() {
			continue
		}
		used[k] = true
		out = append(out, overlay(blankEntry(k), latest[k]))
	}
	return out
}

// PrefillNotes returns the notes of the most recently saved row.
func PrefillNotes(rows []PersistedCost) string {
	var notes string
	var at time.Time
	for i, r := range rows {
		if i == 0 || r.CreatedAt.After(at) {
			notes, at = r.Notes, r.CreatedAt
		}
	}
	return notes
}

// Prefill returns a copy of the form with saved rows merged in.
func (f Form) Prefill(rows []PersistedCost) Form {
	out := f.clone()
	out.Entries = Merge(f.Entries, rows)
	if len(rows) > 0 && out.Notes == "" {
		out.Notes = PrefillNotes(rows)
	}
	return out
}

// Offer returns a copy of the form extended with blank entries for kinds it
// does not hold yet, such as kinds the user has on file for this vendor.
// Unknown kinds are ignored.
func (f Form) Offer(kinds ...Kind) Form {
	rows := make([]PersistedCost, len(kinds))
	for i, k := range kinds {
		rows[i] = PersistedCost{Kind: k}
	}
	out := f.clone()
	out.Entries = Merge(f.Entries, rows)
	return out
}
