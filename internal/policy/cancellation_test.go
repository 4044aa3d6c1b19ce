package policy

import (
	"testing"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func tod(t time.Time) *calendar.TimeOfDay {
	return &calendar.TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

func TestCanCancel_TwoHourWindow(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, loc)
	booking := &model.Booking{
		ID:          "b1",
		BookingDate: calendar.DateOf(now),
		Status:      model.BookingStatusConfirmed,
	}

	assert.False(t, CanCancel(booking, tod(now.Add(90*time.Minute)), now))
	assert.True(t, CanCancel(booking, tod(now.Add(150*time.Minute)), now))
	assert.True(t, CanCancel(booking, tod(now.Add(2*time.Hour)), now))
	assert.False(t, CanCancel(booking, tod(now.Add(2*time.Hour-time.Second)), now))
	// Already started.
	assert.False(t, CanCancel(booking, tod(now.Add(-30*time.Minute)), now))
}

func TestCanCancel_AcrossMidnight(t *testing.T) {
	now := time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC)
	booking := &model.Booking{
		BookingDate: calendar.NewDate(2026, time.March, 11),
		Status:      model.BookingStatusConfirmed,
	}

	assert.False(t, CanCancel(booking, &calendar.TimeOfDay{Hour: 0, Minute: 30}, now))
	assert.True(t, CanCancel(booking, &calendar.TimeOfDay{Hour: 1}, now))
}

func TestCanCancel_OnlyConfirmed(t *testing.T) {
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	start := &calendar.TimeOfDay{Hour: 18}

	for _, status := range []model.BookingStatus{model.BookingStatusCancelled, model.BookingStatusAttended, "Unknown"} {
		booking := &model.Booking{
			BookingDate: calendar.NewDate(2026, time.April, 1),
			Status:      status,
		}
		assert.False(t, CanCancel(booking, start, now), status)
		assert.False(t, CanCancel(booking, nil, now), status)
	}
	assert.False(t, CanCancel(nil, start, now))
}

func TestCanCancel_DateOnlyFallback(t *testing.T) {
	now := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	booking := &model.Booking{Status: model.BookingStatusConfirmed}

	booking.BookingDate = calendar.NewDate(2026, time.March, 11)
	assert.True(t, CanCancel(booking, nil, now))

	booking.BookingDate = calendar.NewDate(2026, time.March, 10)
	assert.False(t, CanCancel(booking, nil, now))

	booking.BookingDate = calendar.NewDate(2026, time.March, 9)
	assert.False(t, CanCancel(booking, nil, now))
}

func TestCancelDeadline(t *testing.T) {
	booking := &model.Booking{BookingDate: calendar.NewDate(2026, time.March, 11)}

	deadline, ok := CancelDeadline(booking, &calendar.TimeOfDay{Hour: 16}, time.UTC)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, time.March, 11, 14, 0, 0, 0, time.UTC), deadline)

	_, ok = CancelDeadline(booking, nil, time.UTC)
	assert.False(t, ok)
}
