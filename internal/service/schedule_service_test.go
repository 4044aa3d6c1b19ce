package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/availability"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVenues_SwedishOrder(t *testing.T) {
	backend := newFakeBackend()
	backend.venues = []model.Venue{
		{ID: "3", Name: "Östermalm", IsActive: true},
		{ID: "1", Name: "Alby", IsActive: true},
		{ID: "2", Name: "Årsta", IsActive: true},
		{ID: "4", Name: "Zinkensdamm", IsActive: true},
		{ID: "5", Name: "Ängby", IsActive: true},
		{ID: "6", Name: "Stängd", IsActive: false},
	}
	svc := NewScheduleService(backend, time.UTC, zap.NewNop())

	venues, err := svc.Venues(context.Background())
	require.NoError(t, err)

	var names []string
	for _, v := range venues {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"Alby", "Zinkensdamm", "Årsta", "Ängby", "Östermalm"}, names)
}

func TestVenueWeek(t *testing.T) {
	backend := newFakeBackend()
	backend.venues = []model.Venue{{ID: "v1", Name: "Alby", IsActive: true}}
	backend.slots["mon"] = weeklySlot("mon", calendar.Monday, 15, 10, 2)
	backend.slots["wed"] = weeklySlot("wed", calendar.Wednesday, 16, 10, 9)
	oneOff := weeklySlot("sat", calendar.Saturday, 10, 5, 0)
	oneOff.Recurrence = model.OneOff(calendar.NewDate(2026, time.March, 14))
	backend.slots["sat"] = oneOff
	backend.slotErr = fmt.Errorf("%w: slot broken", schedule.ErrInvalidSlotDefinition)

	svc := NewScheduleService(backend, time.UTC, zap.NewNop())
	week, err := svc.VenueWeek(context.Background(), "v1", calendar.NewDate(2026, time.March, 11))
	require.NoError(t, err)

	assert.Equal(t, "Alby", week.Venue.Name)
	assert.Equal(t, calendar.NewDate(2026, time.March, 9), week.Days[0])
	assert.Equal(t, calendar.NewDate(2026, time.March, 15), week.Days[6])
	assert.Equal(t, 1, week.Skipped)

	require.Len(t, week.Slots, 3)
	assert.Equal(t, "mon", week.Slots[0].SlotID)
	assert.Equal(t, "wed", week.Slots[1].SlotID)
	assert.Equal(t, "sat", week.Slots[2].SlotID)
	assert.Equal(t, availability.TierAmple, week.Slots[0].Availability.Tier)
	assert.Equal(t, availability.TierFull, week.Slots[1].Availability.Tier)

	days := week.ByDay()
	assert.Len(t, days[0], 1)
	assert.Len(t, days[5], 1)
	assert.Empty(t, days[6])

	v, ok := week.Find("wed", calendar.NewDate(2026, time.March, 11))
	assert.True(t, ok)
	assert.Equal(t, 1, v.Availability.Remaining)
	_, ok = week.Find("wed", calendar.NewDate(2026, time.March, 12))
	assert.False(t, ok)
}

func TestVenueWeek_UnknownVenue(t *testing.T) {
	svc := NewScheduleService(newFakeBackend(), time.UTC, zap.NewNop())
	_, err := svc.VenueWeek(context.Background(), "nope", calendar.NewDate(2026, time.March, 11))
	assert.Error(t, err)
}

func TestOccurrence(t *testing.T) {
	backend := newFakeBackend()
	backend.slots["mon"] = weeklySlot("mon", calendar.Monday, 15, 10, 4)
	svc := NewScheduleService(backend, time.UTC, zap.NewNop())
	ctx := context.Background()

	v, err := svc.Occurrence(ctx, "mon", calendar.NewDate(2026, time.March, 16))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 16, 15, 0, 0, 0, time.UTC), v.Start)
	assert.Equal(t, 6, v.Availability.Remaining)

	_, err = svc.Occurrence(ctx, "mon", calendar.NewDate(2026, time.March, 17))
	assert.ErrorIs(t, err, ErrNotAnOccurrence)
}
