package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
)

type attendanceRequest struct {
	Attended bool `json:"attended"`
}

func (c *Client) PendingApplications(ctx context.Context, token, venueID string) ([]model.VolunteerApplication, error) {
	q := url.Values{}
	q.Set("status", model.ApplicationStatusPending)

	var dtos []applicationDTO
	path := "/api/coordinator/venues/" + url.PathEscape(venueID) + "/applications"
	if err := c.do(ctx, http.MethodGet, path, requestOptions{token: token, query: q}, &dtos); err != nil {
		return nil, err
	}
	apps := make([]model.VolunteerApplication, 0, len(dtos))
	for _, d := range dtos {
		apps = append(apps, toApplication(d))
	}
	return apps, nil
}

// ReviewApplication approves or declines an application.
func (c *Client) ReviewApplication(ctx context.Context, token, applicationID string, approve bool) error {
	action := "decline"
	if approve {
		action = "approve"
	}
	path := "/api/coordinator/applications/" + url.PathEscape(applicationID) + "/" + action
	if err := c.do(ctx, http.MethodPut, path, requestOptions{token: token}, nil); err != nil {
		return fmt.Errorf("%s application: %w", action, err)
	}
	return nil
}

func (c *Client) SlotBookings(ctx context.Context, token, slotID string, date calendar.Date) ([]model.Attendance, error) {
	q := url.Values{}
	q.Set("date", date.String())

	var dtos []attendanceDTO
	path := "/api/coordinator/timeslots/" + url.PathEscape(slotID) + "/bookings"
	if err := c.do(ctx, http.MethodGet, path, requestOptions{token: token, query: q}, &dtos); err != nil {
		return nil, err
	}
	rows := make([]model.Attendance, 0, len(dtos))
	for _, d := range dtos {
		rows = append(rows, model.Attendance{
			BookingID: d.BookingID,
			ChildName: d.ChildName,
			Status:    model.BookingStatus(d.Status),
		})
	}
	return rows, nil
}

func (c *Client) MarkAttendance(ctx context.Context, token, bookingID string, attended bool) error {
	path := "/api/coordinator/bookings/" + url.PathEscape(bookingID) + "/attendance"
	err := c.do(ctx, http.MethodPut, path, requestOptions{token: token, body: attendanceRequest{Attended: attended}}, nil)
	if err != nil {
		return fmt.Errorf("mark attendance: %w", err)
	}
	return nil
}
