package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/availability"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/schedule"
	"github.com/pluggkompis/pluggkompis_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWeek(t *testing.T) *service.WeekView {
	t.Helper()
	slot := &model.TimeSlot{
		ID:              "mon",
		Recurrence:      model.Weekly(calendar.Monday, calendar.Date{}, nil),
		StartTime:       calendar.TimeOfDay{Hour: 15},
		EndTime:         calendar.TimeOfDay{Hour: 17, Minute: 30},
		MaxCapacity:     10,
		CurrentBookings: 7,
		Subjects:        []model.Subject{{Name: "Matematik"}},
	}
	anchor := calendar.NewDate(2026, time.March, 11)
	occ, err := schedule.WeekOccurrences([]*model.TimeSlot{slot}, anchor, time.UTC)
	require.NoError(t, err)

	view := &service.WeekView{
		Venue: model.Venue{Name: "Årsta bibliotek"},
		Days:  calendar.WeekOf(anchor),
	}
	for _, o := range occ {
		view.Slots = append(view.Slots, service.SlotView{Occurrence: o, Availability: availability.Summarize(o.Slot)})
	}
	return view
}

func TestWeekImage(t *testing.T) {
	data, err := WeekImage(sampleWeek(t), time.Date(2026, time.March, 9, 16, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestWeekImage_Empty(t *testing.T) {
	view := &service.WeekView{Days: calendar.WeekOf(calendar.NewDate(2026, time.March, 11))}
	data, err := WeekImage(view, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = WeekImage(nil, time.Now())
	assert.Error(t, err)
}

func TestCalculateHourRange(t *testing.T) {
	week := sampleWeek(t)
	hours := calculateHourRange(week.Slots)
	assert.Equal(t, 14, hours.start)
	assert.Equal(t, 19, hours.end)
	assert.Equal(t, 6, hours.total)
}

func TestSlotColor(t *testing.T) {
	assert.Equal(t, slotCancelledColor, slotColor(availability.Summary{Cancelled: true, Tier: availability.TierAmple}))
	assert.Equal(t, slotLimitedColor, slotColor(availability.Summary{Tier: availability.TierLimited}))
	assert.Equal(t, "3/10 lediga", seatLabel(availability.Summary{Remaining: 3, Capacity: 10}))
}
