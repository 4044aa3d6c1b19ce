package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newVolunteerService(backend *fakeBackend) *VolunteerService {
	svc := NewVolunteerService(backend, time.UTC, zap.NewNop())
	svc.now = fixedClock(bookingNow)
	return svc
}

func TestVolunteer_Apply(t *testing.T) {
	svc := newVolunteerService(newFakeBackend())
	sess := session(model.RoleVolunteer, bookingNow)

	_, err := svc.Apply(context.Background(), sess, "v1", "för kort")
	assert.ErrorIs(t, err, ErrInvalidMotivation)

	app, err := svc.Apply(context.Background(), sess, "v1", "  "+strings.Repeat("Jag gillar matte. ", 3)+"  ")
	require.NoError(t, err)
	assert.True(t, app.IsPending())
	assert.False(t, strings.HasPrefix(app.Motivation, " "))

	_, err = svc.Apply(context.Background(), session(model.RoleParent, bookingNow), "v1", strings.Repeat("x", 30))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestVolunteer_SignUpShift(t *testing.T) {
	backend := newFakeBackend()
	backend.slots["mon"] = weeklySlot("mon", calendar.Monday, 15, 10, 2)
	svc := newVolunteerService(backend)
	sess := session(model.RoleVolunteer, bookingNow)

	shift, err := svc.SignUpShift(context.Background(), sess, "mon", calendar.NewDate(2026, time.March, 16))
	require.NoError(t, err)
	assert.Equal(t, "mon", shift.TimeSlotID)

	_, err = svc.SignUpShift(context.Background(), sess, "mon", calendar.NewDate(2026, time.March, 17))
	assert.ErrorIs(t, err, ErrNotAnOccurrence)

	_, err = svc.SignUpShift(context.Background(), sess, "mon", calendar.NewDate(2026, time.March, 9))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestVolunteer_UpcomingShifts(t *testing.T) {
	backend := newFakeBackend()
	backend.shifts = []model.Shift{
		{ID: "late", Date: calendar.NewDate(2026, time.March, 20), StartTime: calendar.TimeOfDay{Hour: 15}},
		{ID: "past", Date: calendar.NewDate(2026, time.March, 2)},
		{ID: "today", Date: calendar.NewDate(2026, time.March, 10), StartTime: calendar.TimeOfDay{Hour: 9}},
	}
	svc := newVolunteerService(backend)

	shifts, err := svc.UpcomingShifts(context.Background(), session(model.RoleVolunteer, bookingNow))
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	assert.Equal(t, "today", shifts[0].ID)
	assert.Equal(t, "late", shifts[1].ID)
}

func TestVolunteer_ExportHours(t *testing.T) {
	svc := newVolunteerService(newFakeBackend())
	sess := session(model.RoleVolunteer, bookingNow)

	pdf, err := svc.ExportHours(context.Background(), sess, calendar.Date{}, calendar.Date{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf))

	_, err = svc.ExportHours(context.Background(), sess,
		calendar.NewDate(2026, time.April, 1), calendar.NewDate(2026, time.March, 1))
	assert.Error(t, err)
}

func TestCoordinator_RoleGate(t *testing.T) {
	backend := newFakeBackend()
	svc := NewCoordinatorService(backend, zap.NewNop())
	svc.now = fixedClock(bookingNow)

	_, err := svc.PendingApplications(context.Background(), session(model.RoleVolunteer, bookingNow), "v1")
	assert.ErrorIs(t, err, ErrForbidden)

	coord := session(model.RoleCoordinator, bookingNow)
	apps, err := svc.PendingApplications(context.Background(), coord, "v1")
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	require.NoError(t, svc.Review(context.Background(), coord, "a1", true))
	assert.True(t, backend.reviewed["a1"])

	rows, err := svc.SlotAttendance(context.Background(), coord, "mon", calendar.NewDate(2026, time.March, 16))
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, svc.MarkAttendance(context.Background(), coord, "b1", true))
	assert.True(t, backend.marked["b1"])
}
