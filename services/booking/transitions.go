package booking

import (
	"fmt"

	"glowbook/models"
)

// ValidationError reports an illegal booking status transition. It is
// raised before any remote write is issued.
type ValidationError struct {
	BookingID string
	From      string
	To        string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking %s: illegal status transition %q -> %q", e.BookingID, e.From, e.To)
}

// legalTransitions closes over the booking state machine:
// pending -> confirmed -> completed, with cancellation allowed from
// pending or confirmed. Completed and cancelled are terminal.
var legalTransitions = map[string]map[string]bool{
	models.BookingStatusPending: {
		models.BookingStatusConfirmed: true,
		models.BookingStatusCancelled: true,
	},
	models.BookingStatusConfirmed: {
		models.BookingStatusCompleted: true,
		models.BookingStatusCancelled: true,
	},
	models.BookingStatusCompleted: {},
	models.BookingStatusCancelled: {},
}

// ValidateTransition checks that moving a booking from one status to
// another is legal. Unknown statuses are rejected outright.
func ValidateTransition(bookingID, from, to string) error {
	targets, known := legalTransitions[from]
	if !known {
		return &ValidationError{BookingID: bookingID, From: from, To: to}
	}
	if _, known := legalTransitions[to]; !known {
		return &ValidationError{BookingID: bookingID, From: from, To: to}
	}
	if !targets[to] {
		return &ValidationError{BookingID: bookingID, From: from, To: to}
	}
	return nil
}
