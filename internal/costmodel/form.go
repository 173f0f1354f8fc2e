package costmodel

import "github.com/shopspring/decimal"

// Stored amounts and quantities keep two decimal places. Amounts stay below
// 10^10 and quantities below 10^8.
const valuePlaces = 2

var (
	amountLimit   = decimal.New(1, 10)
	quantityLimit = decimal.New(1, 8)
)

func storable(d, limit decimal.Decimal) bool {
	return d.Equal(d.Truncate(valuePlaces)) && d.Abs().LessThan(limit)
}

// CheckAmount reports ErrInvalidAmount for an amount that cannot be stored
// exactly.
func CheckAmount(d decimal.Decimal) error {
	if !storable(d, amountLimit) {
		return ErrInvalidAmount
	}
	return nil
}

// CheckQuantity reports ErrInvalidQuantity for a quantity that cannot be
// stored exactly.
func CheckQuantity(d decimal.Decimal) error {
	if !storable(d, quantityLimit) {
		return ErrInvalidQuantity
	}
	return nil
}

// Entry is one priced line of a cost form. A nil Amount means "not entered".
type Entry struct {
	Kind     Kind             `json:"cost_kind"`
	Amount   *decimal.Decimal `json:"amount"`
	Unit     Unit             `json:"unit,omitempty"`
	Period   Period           `json:"period,omitempty"`
	Quantity *decimal.Decimal `json:"quantity"`
}

// HasValue reports whether the user has typed anything into this entry.
func (e Entry) HasValue() bool {
	return e.Amount != nil || e.Quantity != nil
}

func (e Entry) clone() Entry {
	out := e
	if e.Amount != nil {
		a := *e.Amount
		out.Amount = &a
	}
	if e.Quantity != nil {
		q := *e.Quantity
		out.Quantity = &q
	}
	return out
}

// Form is the working state of one cost submission. Notes belong to the
// submission as a whole; entries carry pricing data only.
type Form struct {
	Category Category `json:"category"`
	Entries  []Entry  `json:"entries"`
	Notes    string   `json:"notes"`
	Guidance string   `json:"guidance,omitempty"`
}

// NewForm starts an empty form for a category.
func NewForm(c Category) Form {
	t := TemplateFor(c)
	return Form{Category: c, Entries: t.Entries(), Guidance: t.Guidance}
}

func (f Form) clone() Form {
	out := f
	out.Entries = make([]Entry, len(f.Entries))
	for i, e := range f.Entries {
		out.Entries[i] = e.clone()
	}
	return out
}

// HasValues reports whether any entry holds user input.
func (f Form) HasValues() bool {
	for _, e := range f.Entries {
		if e.HasValue() {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the entry with the given kind, or -1.
func (f Form) IndexOf(k Kind) int {
	for i, e := range f.Entries {
		if e.Kind == k {
			return i
		}
	}
	return -1
}

// ChangeCategory switches the form to another category. The entry set is
// replaced with the new template only while nothing has been entered;
// otherwise the form is returned unchanged, so Category keeps describing the
// entries it holds. The returned bool reports whether the entries were replaced.
func (f Form) ChangeCategory(c Category) (Form, bool) {
	if f.HasValues() {
		return f.clone(), false
	}
	out := NewForm(c)
	out.Notes = f.Notes
	return out, true
}

// Patch is a partial edit of one entry. Nil pointers leave a field alone;
// the Clear flags reset a field to "not entered".
type Patch struct {
	Amount        *decimal.Decimal
	ClearAmount   bool
	Quantity      *decimal.Decimal
	ClearQuantity bool
	Unit          *Unit
	Period        *Period
}

// Apply returns a copy of the form with p applied to the entry at index.
// The number of entries and the kind at every index never change.
func (f Form) Apply(index int, p Patch) (Form, error) {
	if index < 0 || index >= len(f.Entries) {
		return f, ErrIndexOutOfRange
	}
	if p.Amount != nil {
		if p.Amount.IsNegative() {
			return f, ErrNegativeValue
		}
		if err := CheckAmount(*p.Amount); err != nil {
			return f, err
		}
	}
	if (p.Unit != nil && !p.Unit.Valid()) || (p.Period != nil && !p.Period.Valid()) {
		return f, ErrInvalidEntry
	}
	if p.Quantity != nil {
		if p.Quantity.IsNegative() {
			return f, ErrNegativeValue
		}
		if !f.Entries[index].Kind.TakesQuantity() {
			return f, ErrQuantityNotAllowed
		}
		if err := CheckQuantity(*p.Quantity); err != nil {
			return f, err
		}
	}

	out := f.clone()
	e := &out.Entries[index]
	switch {
	case p.ClearAmount:
		e.Amount = nil
	case p.Amount != nil:
		a := *p.Amount
		e.Amount = &a
	}
	switch {
	case p.ClearQuantity:
		e.Quantity = nil
	case p.Quantity != nil:
		q := *p.Quantity
		e.Quantity = &q
	}
	if p.Unit != nil {
		e.Unit = *p.Unit
	}
	if p.Period != nil {
		e.Period = *p.Period
	}
	return out, nil
}

// WithNotes sets the submission-level notes.
func (f Form) WithNotes(notes string) Form {
	out := f.clone()
	out.Notes = notes
	return out
}
