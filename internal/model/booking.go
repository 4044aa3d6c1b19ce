package model

import "github.com/pluggkompis/pluggkompis_bot/internal/calendar"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusAttended  BookingStatus = "Attended"
)

// Booking is the client-side projection of a backend booking.
type Booking struct {
	ID             string        `json:"id"`
	TimeSlotID     string        `json:"time_slot_id"`
	BookingDate    calendar.Date `json:"booking_date"`
	Status         BookingStatus `json:"status"`
	BookedByUserID string        `json:"booked_by_user_id"`
	ChildID        *string       `json:"child_id,omitempty"`
	ChildName      string        `json:"child_name,omitempty"`
	VenueName      string        `json:"venue_name,omitempty"`
	Notes          string        `json:"notes"`

	// StartTime is set only when the projection carried time-slot detail.
	StartTime *calendar.TimeOfDay `json:"start_time,omitempty"`
	EndTime   *calendar.TimeOfDay `json:"end_time,omitempty"`
}

// IsConfirmed reports whether the booking is still active.
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}
