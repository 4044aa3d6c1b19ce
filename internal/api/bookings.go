package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
)

// BookingRequest creates a booking for one occurrence of a slot.
type BookingRequest struct {
	TimeSlotID  string        `json:"timeSlotId"`
	BookingDate calendar.Date `json:"bookingDate"`
	ChildID     *string       `json:"childId,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

func (c *Client) MyBookings(ctx context.Context, token string) ([]*model.Booking, error) {
	var dtos []bookingDTO
	if err := c.do(ctx, http.MethodGet, "/api/bookings/my", requestOptions{token: token}, &dtos); err != nil {
		return nil, err
	}
	bookings := make([]*model.Booking, 0, len(dtos))
	for _, d := range dtos {
		b, err := toBooking(d)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// CreateBooking posts req with a fresh Idempotency-Key so a retried request
// does not double-book.
func (c *Client) CreateBooking(ctx context.Context, token string, req BookingRequest) (*model.Booking, error) {
	var dto bookingDTO
	err := c.do(ctx, http.MethodPost, "/api/bookings", requestOptions{
		token:          token,
		body:           req,
		idempotencyKey: uuid.NewString(),
	}, &dto)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return toBooking(dto)
}

func (c *Client) CancelBooking(ctx context.Context, token, bookingID string) error {
	path := "/api/bookings/" + url.PathEscape(bookingID) + "/cancel"
	if err := c.do(ctx, http.MethodPut, path, requestOptions{token: token}, nil); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	return nil
}
