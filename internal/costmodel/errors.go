package costmodel

import (
	"errors"
	"fmt"
)

// FailureKind groups engine failures by how a caller should surface them.
type FailureKind string

const (
	// FailureValidation means the input needs fixing before anything is persisted.
	FailureValidation FailureKind = "validation"
	// FailureAddress means the payer has no verified household address.
	FailureAddress FailureKind = "address"
	// FailureAuth means there is no acting identity; the user has to sign in.
	FailureAuth FailureKind = "auth"
)

// Failure is the explicit failure value returned by engine operations.
// Two failures match under errors.Is when their codes are equal.
type Failure struct {
	Kind    FailureKind
	Code    string
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// Is matches failures by code so wrapped copies still compare equal.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Code == f.Code
}

var (
	ErrNoValidEntries     = &Failure{Kind: FailureValidation, Code: "no_valid_entries", Message: "enter at least one cost greater than zero"}
	ErrAddressRequired    = &Failure{Kind: FailureAddress, Code: "address_required", Message: "verify your home address before adding costs"}
	ErrAuthRequired       = &Failure{Kind: FailureAuth, Code: "sign_in_required", Message: "sign in to add costs"}
	ErrIndexOutOfRange    = &Failure{Kind: FailureValidation, Code: "entry_out_of_range", Message: "cost entry index out of range"}
	ErrNegativeValue      = &Failure{Kind: FailureValidation, Code: "negative_value", Message: "amounts and quantities cannot be negative"}
	ErrQuantityNotAllowed = &Failure{Kind: FailureValidation, Code: "quantity_not_allowed", Message: "this cost type does not take a quantity"}
	ErrUnknownKind        = &Failure{Kind: FailureValidation, Code: "unknown_cost_kind", Message: "cost type is not offered for this vendor"}
	ErrDuplicateKind      = &Failure{Kind: FailureValidation, Code: "duplicate_cost_kind", Message: "each cost type can be entered once"}
	ErrInvalidAmount      = &Failure{Kind: FailureValidation, Code: "invalid_amount", Message: "amounts take at most two decimal places and must be below 10,000,000,000"}
	ErrInvalidQuantity    = &Failure{Kind: FailureValidation, Code: "invalid_quantity", Message: "quantities take at most two decimal places and must be below 100,000,000"}
	ErrInvalidEntry       = &Failure{Kind: FailureValidation, Code: "invalid_entry", Message: "cost entry has an unknown unit or period"}
	ErrUnknownCategory    = &Failure{Kind: FailureValidation, Code: "unknown_category", Message: "unknown vendor category"}
)

// KindOf reports the FailureKind carried by err, or "" when err is not a Failure.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// CodeOf reports the failure code carried by err, or "" when err is not a Failure.
func CodeOf(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Code
	}
	return ""
}

// UnknownCategoryError is returned by ParseCategory. Suggestion holds the
// closest known category, if any was close enough to be useful.
type UnknownCategoryError struct {
	Label      string
	Suggestion Category
}

func (e *UnknownCategoryError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown vendor category %q (did you mean %q?)", e.Label, e.Suggestion)
	}
	return fmt.Sprintf("unknown vendor category %q", e.Label)
}

func (e *UnknownCategoryError) Unwrap() error { return ErrUnknownCategory }
