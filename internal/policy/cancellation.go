// Package policy holds client-side gates for booking actions. They only decide
// whether the UI offers an action; the backend re-validates every mutation.
package policy

import (
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
)

// MinCancelLead is how long before a session a booking can still be cancelled.
const MinCancelLead = 2 * time.Hour

// CanCancel reports whether booking may be cancelled at now.
//
// slotStart is the start time of the booked slot, interpreted in now's
// location. When it is nil (the projection had no slot detail) only the
// date is compared: the booking must be on a later day than now.
func CanCancel(booking *model.Booking, slotStart *calendar.TimeOfDay, now time.Time) bool {
	if booking == nil || !booking.IsConfirmed() {
		return false
	}

	if slotStart == nil {
		return booking.BookingDate.After(calendar.DateOf(now))
	}

	sessionStart := booking.BookingDate.At(*slotStart, now.Location())
	return sessionStart.Sub(now) >= MinCancelLead
}

// CancelDeadline returns the last instant a cancellation is accepted, or
// false when the deadline cannot be computed.
func CancelDeadline(booking *model.Booking, slotStart *calendar.TimeOfDay, loc *time.Location) (time.Time, bool) {
	if booking == nil || slotStart == nil {
		return time.Time{}, false
	}
	return booking.BookingDate.At(*slotStart, loc).Add(-MinCancelLead), true
}
