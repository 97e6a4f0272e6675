package booking

import "errors"

// Sentinel outcomes of booking operations. Conflicts and duplicates are
// normal declined results, never internal failures; handlers translate them
// into user-facing responses.
var (
	// ErrSlotExists signals an attempt to publish an availability slot for a
	// (doctor, date, time) tuple that already has one. Creating it again is
	// a no-op reported informationally.
	ErrSlotExists = errors.New("availability slot already exists")

	// ErrSlotUnavailable signals that the requested tuple is not an open
	// slot: it is missing, flagged unavailable, or held by an active
	// appointment. The caller should re-query current availability.
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrSlotTaken signals that the storage uniqueness constraint rejected
	// the write: a concurrent booker won the slot after our pre-check.
	ErrSlotTaken = errors.New("slot was just taken")

	// ErrAlreadyCancelled signals a cancel of an already-cancelled
	// appointment. A no-op reported informationally.
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")

	ErrNotFound = errors.New("appointment not found")
	ErrNotOwner = errors.New("appointment is not assigned to requester")
)

// ValidationError marks malformed or out-of-range input. No state is
// mutated when one is returned.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
