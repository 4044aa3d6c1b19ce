package model

import "time"

// VolunteerApplication is a volunteer's request to work at a venue.
type VolunteerApplication struct {
	ID            string     `json:"id"`
	VenueID       string     `json:"venue_id"`
	VenueName     string     `json:"venue_name"`
	VolunteerID   string     `json:"volunteer_id"`
	VolunteerName string     `json:"volunteer_name"`
	Motivation    string     `json:"motivation"`
	Status        string     `json:"status"` // Pending, Approved, Declined
	AppliedAt     time.Time  `json:"applied_at"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
}

const (
	ApplicationStatusPending  = "Pending"
	ApplicationStatusApproved = "Approved"
	ApplicationStatusDeclined = "Declined"
)

func (a *VolunteerApplication) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

func (a *VolunteerApplication) IsApproved() bool {
	return a.Status == ApplicationStatusApproved
}

func (a *VolunteerApplication) IsDeclined() bool {
	return a.Status == ApplicationStatusDeclined
}
