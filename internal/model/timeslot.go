package model

import "github.com/pluggkompis/pluggkompis_bot/internal/calendar"

type SlotStatus string

const (
	SlotStatusOpen      SlotStatus = "Open"
	SlotStatusFull      SlotStatus = "Full"
	SlotStatusCancelled SlotStatus = "Cancelled"
)

// TimeSlot is a coordinator-defined session at a venue. It is a read-only
// snapshot of the backend; capacity and status may already be stale.
type TimeSlot struct {
	ID              string             `json:"id"`
	VenueID         string             `json:"venue_id"`
	Recurrence      Recurrence         `json:"recurrence"`
	StartTime       calendar.TimeOfDay `json:"start_time"`
	EndTime         calendar.TimeOfDay `json:"end_time"`
	MaxCapacity     int                `json:"max_capacity"`
	CurrentBookings int                `json:"current_bookings"`
	Subjects        []Subject          `json:"subjects"`
	Status          SlotStatus         `json:"status"` // authoritative, never inferred locally
}

// IsCancelled reports the backend's cancellation flag.
func (s *TimeSlot) IsCancelled() bool {
	return s.Status == SlotStatusCancelled
}

// SubjectNames returns subject names in backend order.
func (s *TimeSlot) SubjectNames() []string {
	names := make([]string, 0, len(s.Subjects))
	for _, subj := range s.Subjects {
		names = append(names, subj.Name)
	}
	return names
}
