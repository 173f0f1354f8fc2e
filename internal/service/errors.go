package service

import "errors"

// ErrForbidden is returned when a user tries to act on something they do not own
// or are not allowed to moderate.
var ErrForbidden = errors.New("forbidden")

var (
	// ErrSubmitInFlight means an earlier submission for the same identity and
	// vendor is still being written.
	ErrSubmitInFlight = errors.New("a submission for this vendor is already being saved")
	// ErrSubmitFailed wraps storage failures while saving a submission. The
	// write is transactional, so retrying is safe.
	ErrSubmitFailed = errors.New("saving costs failed, please try again")
	// ErrInvalidVendor is returned for a hidden vendor or invalid vendor input.
	ErrInvalidVendor = errors.New("invalid vendor")
	// ErrInvalidAddress is returned when an address is blank after normalization.
	ErrInvalidAddress = errors.New("address is required")
	// ErrInvalidOverride is returned for an override amount that is not
	// positive or does not fit a stored amount.
	ErrInvalidOverride = errors.New("override amount must be greater than zero with at most two decimal places")
)
