package api

import (
	"fmt"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/schedule"
)

type subjectDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type timeSlotDTO struct {
	ID                 string       `json:"id"`
	VenueID            string       `json:"venueId"`
	DayOfWeek          string       `json:"dayOfWeek"`
	StartTime          string       `json:"startTime"`
	EndTime            string       `json:"endTime"`
	MaxStudents        int          `json:"maxStudents"`
	CurrentBookings    int          `json:"currentBookings"`
	IsRecurring        bool         `json:"isRecurring"`
	SpecificDate       *string      `json:"specificDate"`
	RecurringStartDate *string      `json:"recurringStartDate"`
	RecurringEndDate   *string      `json:"recurringEndDate"`
	Status             string       `json:"status"`
	Subjects           []subjectDTO `json:"subjects"`
}

type bookingDTO struct {
	ID             string  `json:"id"`
	TimeSlotID     string  `json:"timeSlotId"`
	BookingDate    string  `json:"bookingDate"`
	Status         string  `json:"status"`
	BookedByUserID string  `json:"bookedByUserId"`
	ChildID        *string `json:"childId"`
	ChildName      string  `json:"childName"`
	VenueName      string  `json:"venueName"`
	Notes          string  `json:"notes"`
	StartTime      *string `json:"startTime"`
	EndTime        *string `json:"endTime"`
}

type userDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type childDTO struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	BirthYear   int    `json:"birthYear"`
	SchoolGrade int    `json:"schoolGrade"`
}

type venueDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	IsActive    bool    `json:"isActive"`
}

type applicationDTO struct {
	ID            string     `json:"id"`
	VenueID       string     `json:"venueId"`
	VenueName     string     `json:"venueName"`
	VolunteerID   string     `json:"volunteerId"`
	VolunteerName string     `json:"volunteerName"`
	Motivation    string     `json:"motivation"`
	Status        string     `json:"status"`
	AppliedAt     time.Time  `json:"appliedAt"`
	ReviewedAt    *time.Time `json:"reviewedAt"`
}

type shiftDTO struct {
	ID         string `json:"id"`
	TimeSlotID string `json:"timeSlotId"`
	VenueName  string `json:"venueName"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Attended   bool   `json:"attended"`
}

type attendanceDTO struct {
	BookingID string `json:"bookingId"`
	ChildName string `json:"childName"`
	Status    string `json:"status"`
}

// toTimeSlot converts the wire projection. Any projection that cannot be
// turned into a usable slot (unparseable times or dates, both or neither
// recurrence variant, end not after start) is rejected with
// ErrInvalidSlotDefinition so list callers can skip it.
func toTimeSlot(d timeSlotDTO) (*model.TimeSlot, error) {
	start, err := calendar.ParseTimeOfDay(d.StartTime)
	if err != nil {
		return nil, invalidSlot(d.ID, err)
	}
	end, err := calendar.ParseTimeOfDay(d.EndTime)
	if err != nil {
		return nil, invalidSlot(d.ID, err)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: slot %s ends %s before it starts %s", schedule.ErrInvalidSlotDefinition, d.ID, end, start)
	}

	rec, err := toRecurrence(d)
	if err != nil {
		return nil, err
	}

	slot := &model.TimeSlot{
		ID:              d.ID,
		VenueID:         d.VenueID,
		Recurrence:      rec,
		StartTime:       start,
		EndTime:         end,
		MaxCapacity:     d.MaxStudents,
		CurrentBookings: d.CurrentBookings,
		Status:          model.SlotStatus(d.Status),
	}
	for _, s := range d.Subjects {
		slot.Subjects = append(slot.Subjects, model.Subject{ID: s.ID, Name: s.Name, Icon: s.Icon})
	}

	if err := schedule.Validate(slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func toRecurrence(d timeSlotDTO) (model.Recurrence, error) {
	hasDate := d.SpecificDate != nil && *d.SpecificDate != ""

	switch {
	case d.IsRecurring && hasDate:
		return model.Recurrence{}, fmt.Errorf("%w: slot %s is recurring and has specificDate", schedule.ErrInvalidSlotDefinition, d.ID)
	case !d.IsRecurring && !hasDate:
		return model.Recurrence{}, fmt.Errorf("%w: slot %s has no specificDate", schedule.ErrInvalidSlotDefinition, d.ID)
	case !d.IsRecurring:
		date, err := calendar.ParseDate(*d.SpecificDate)
		if err != nil {
			return model.Recurrence{}, invalidSlot(d.ID, err)
		}
		return model.OneOff(date), nil
	}

	day, err := calendar.ParseWeekday(d.DayOfWeek)
	if err != nil {
		return model.Recurrence{}, fmt.Errorf("%w: slot %s: %v", schedule.ErrInvalidSlotDefinition, d.ID, err)
	}

	var from calendar.Date
	if d.RecurringStartDate != nil && *d.RecurringStartDate != "" {
		if from, err = calendar.ParseDate(*d.RecurringStartDate); err != nil {
			return model.Recurrence{}, invalidSlot(d.ID, err)
		}
	}

	var until *calendar.Date
	if d.RecurringEndDate != nil && *d.RecurringEndDate != "" {
		u, err := calendar.ParseDate(*d.RecurringEndDate)
		if err != nil {
			return model.Recurrence{}, invalidSlot(d.ID, err)
		}
		until = &u
	}

	return model.Weekly(day, from, until), nil
}

func invalidSlot(id string, err error) error {
	return fmt.Errorf("%w: slot %s: %v", schedule.ErrInvalidSlotDefinition, id, err)
}

func toBooking(d bookingDTO) (*model.Booking, error) {
	date, err := calendar.ParseDate(d.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", d.ID, err)
	}

	b := &model.Booking{
		ID:             d.ID,
		TimeSlotID:     d.TimeSlotID,
		BookingDate:    date,
		Status:         model.BookingStatus(d.Status),
		BookedByUserID: d.BookedByUserID,
		ChildID:        d.ChildID,
		ChildName:      d.ChildName,
		VenueName:      d.VenueName,
		Notes:          d.Notes,
	}

	// Slot times are optional in some projections; a malformed one is
	// treated as missing rather than failing the whole list.
	if d.StartTime != nil {
		if t, err := calendar.ParseTimeOfDay(*d.StartTime); err == nil {
			b.StartTime = &t
		}
	}
	if d.EndTime != nil {
		if t, err := calendar.ParseTimeOfDay(*d.EndTime); err == nil {
			b.EndTime = &t
		}
	}
	return b, nil
}

func toUser(d userDTO) model.User {
	return model.User{
		ID:        d.ID,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Role:      model.Role(d.Role),
	}
}

func toChild(d childDTO) model.Child {
	return model.Child{
		ID:          d.ID,
		FirstName:   d.FirstName,
		BirthYear:   d.BirthYear,
		SchoolGrade: d.SchoolGrade,
	}
}

func toVenue(d venueDTO) model.Venue {
	return model.Venue{
		ID:          d.ID,
		Name:        d.Name,
		Address:     d.Address,
		City:        d.City,
		Description: d.Description,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		IsActive:    d.IsActive,
	}
}

func toApplication(d applicationDTO) model.VolunteerApplication {
	return model.VolunteerApplication{
		ID:            d.ID,
		VenueID:       d.VenueID,
		VenueName:     d.VenueName,
		VolunteerID:   d.VolunteerID,
		VolunteerName: d.VolunteerName,
		Motivation:    d.Motivation,
		Status:        d.Status,
		AppliedAt:     d.AppliedAt,
		ReviewedAt:    d.ReviewedAt,
	}
}

func toShift(d shiftDTO) (model.Shift, error) {
	date, err := calendar.ParseDate(d.Date)
	if err != nil {
		return model.Shift{}, fmt.Errorf("shift %s: %w", d.ID, err)
	}
	start, err := calendar.ParseTimeOfDay(d.StartTime)
	if err != nil {
		return model.Shift{}, fmt.Errorf("shift %s: %w", d.ID, err)
	}
	end, err := calendar.ParseTimeOfDay(d.EndTime)
	if err != nil {
		return model.Shift{}, fmt.Errorf("shift %s: %w", d.ID, err)
	}
	return model.Shift{
		ID:         d.ID,
		TimeSlotID: d.TimeSlotID,
		VenueName:  d.VenueName,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Attended:   d.Attended,
	}, nil
}
