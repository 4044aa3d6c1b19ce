package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
)

type applyRequest struct {
	VenueID    string `json:"venueId"`
	Motivation string `json:"motivation"`
}

type shiftRequest struct {
	TimeSlotID string        `json:"timeSlotId"`
	Date       calendar.Date `json:"date"`
}

func (c *Client) ApplyToVenue(ctx context.Context, token, venueID, motivation string) (*model.VolunteerApplication, error) {
	var dto applicationDTO
	err := c.do(ctx, http.MethodPost, "/api/volunteers/apply", requestOptions{
		token: token,
		body:  applyRequest{VenueID: venueID, Motivation: motivation},
	}, &dto)
	if err != nil {
		return nil, fmt.Errorf("apply to venue: %w", err)
	}
	a := toApplication(dto)
	return &a, nil
}

func (c *Client) SignUpShift(ctx context.Context, token, slotID string, date calendar.Date) (*model.Shift, error) {
	var dto shiftDTO
	err := c.do(ctx, http.MethodPost, "/api/volunteers/shifts", requestOptions{
		token: token,
		body:  shiftRequest{TimeSlotID: slotID, Date: date},
	}, &dto)
	if err != nil {
		return nil, fmt.Errorf("sign up shift: %w", err)
	}
	s, err := toShift(dto)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) MyShifts(ctx context.Context, token string) ([]model.Shift, error) {
	var dtos []shiftDTO
	if err := c.do(ctx, http.MethodGet, "/api/volunteers/shifts", requestOptions{token: token}, &dtos); err != nil {
		return nil, err
	}
	shifts := make([]model.Shift, 0, len(dtos))
	for _, d := range dtos {
		s, err := toShift(d)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, nil
}

// ExportHours downloads the volunteer's hour report for [from, to] as a PDF.
func (c *Client) ExportHours(ctx context.Context, token string, from, to calendar.Date) ([]byte, error) {
	q := url.Values{}
	q.Set("from", from.String())
	q.Set("to", to.String())

	body, _, err := c.download(ctx, "/api/volunteers/hours/export", requestOptions{token: token, query: q})
	if err != nil {
		return nil, fmt.Errorf("export hours: %w", err)
	}
	return body, nil
}
