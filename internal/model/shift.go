package model

import "github.com/pluggkompis/pluggkompis_bot/internal/calendar"

// Shift is a volunteer's assignment to one occurrence of a time slot.
type Shift struct {
	ID         string             `json:"id"`
	TimeSlotID string             `json:"time_slot_id"`
	VenueName  string             `json:"venue_name"`
	Date       calendar.Date      `json:"date"`
	StartTime  calendar.TimeOfDay `json:"start_time"`
	EndTime    calendar.TimeOfDay `json:"end_time"`
	Attended   bool               `json:"attended"`
}

// Hours returns the shift length in hours.
func (s *Shift) Hours() float64 {
	return s.EndTime.Hours() - s.StartTime.Hours()
}

// Attendance is one booking row on a coordinator's attendance list.
type Attendance struct {
	BookingID string        `json:"booking_id"`
	ChildName string        `json:"child_name"`
	Status    BookingStatus `json:"status"`
}

// Attended reports whether the booking has been marked as attended.
func (a *Attendance) Attended() bool {
	return a.Status == BookingStatusAttended
}
