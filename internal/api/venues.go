package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/schedule"
)

func (c *Client) Venues(ctx context.Context) ([]model.Venue, error) {
	var dtos []venueDTO
	if err := c.do(ctx, http.MethodGet, "/api/venues", requestOptions{}, &dtos); err != nil {
		return nil, err
	}
	venues := make([]model.Venue, 0, len(dtos))
	for _, d := range dtos {
		venues = append(venues, toVenue(d))
	}
	return venues, nil
}

func (c *Client) Venue(ctx context.Context, id string) (*model.Venue, error) {
	var dto venueDTO
	if err := c.do(ctx, http.MethodGet, "/api/venues/"+url.PathEscape(id), requestOptions{}, &dto); err != nil {
		return nil, err
	}
	v := toVenue(dto)
	return &v, nil
}

// VenueTimeSlots lists a venue's slots. Slots with an invalid recurrence are
// dropped from the result and reported through the joined error, so callers
// get the usable slots together with what was wrong.
func (c *Client) VenueTimeSlots(ctx context.Context, venueID string) ([]*model.TimeSlot, error) {
	var dtos []timeSlotDTO
	if err := c.do(ctx, http.MethodGet, "/api/venues/"+url.PathEscape(venueID)+"/timeslots", requestOptions{}, &dtos); err != nil {
		return nil, err
	}

	slots := make([]*model.TimeSlot, 0, len(dtos))
	var errs []error
	for _, d := range dtos {
		slot, err := toTimeSlot(d)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		slots = append(slots, slot)
	}
	return slots, errors.Join(errs...)
}

func (c *Client) TimeSlot(ctx context.Context, id string) (*model.TimeSlot, error) {
	var dto timeSlotDTO
	if err := c.do(ctx, http.MethodGet, "/api/timeslots/"+url.PathEscape(id), requestOptions{}, &dto); err != nil {
		return nil, err
	}
	return toTimeSlot(dto)
}

// IsInvalidSlot reports whether err came from a malformed slot projection.
func IsInvalidSlot(err error) bool {
	return errors.Is(err, schedule.ErrInvalidSlotDefinition)
}
