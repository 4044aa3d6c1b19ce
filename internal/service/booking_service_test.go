package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/api"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Tuesday.
var bookingNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newBookingService(backend *fakeBackend) *BookingService {
	svc := NewBookingService(backend, time.UTC, zap.NewNop())
	svc.now = fixedClock(bookingNow)
	return svc
}

func TestBook_ParentWithChild(t *testing.T) {
	backend := newFakeBackend()
	backend.slots["mon"] = weeklySlot("mon", calendar.Monday, 15, 10, 2)
	svc := newBookingService(backend)

	child := "c1"
	sess := session(model.RoleParent, bookingNow, model.Child{ID: "c1", FirstName: "Elsa"})
	b, err := svc.Book(context.Background(), sess, BookRequest{
		SlotID: "mon", Date: calendar.NewDate(2026, time.March, 16), ChildID: &child,
	})
	require.NoError(t, err)
	assert.Equal(t, "new", b.ID)
	require.Len(t, backend.created, 1)
	assert.Equal(t, &child, backend.created[0].ChildID)
}

func TestBook_Rejections(t *testing.T) {
	backend := newFakeBackend()
	backend.slots["mon"] = weeklySlot("mon", calendar.Monday, 15, 10, 2)
	full := weeklySlot("full", calendar.Monday, 15, 10, 10)
	backend.slots["full"] = full
	cancelled := weeklySlot("cancelled", calendar.Monday, 15, 10, 0)
	cancelled.Status = model.SlotStatusCancelled
	backend.slots["cancelled"] = cancelled
	svc := newBookingService(backend)

	student := session(model.RoleStudent, bookingNow)
	monday := calendar.NewDate(2026, time.March, 16)

	_, err := svc.Book(context.Background(), student, BookRequest{SlotID: "mon", Date: monday.AddDays(1)})
	assert.ErrorIs(t, err, ErrNotAnOccurrence)

	_, err = svc.Book(context.Background(), student, BookRequest{SlotID: "full", Date: monday})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = svc.Book(context.Background(), student, BookRequest{SlotID: "cancelled", Date: monday})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Last Monday has passed.
	_, err = svc.Book(context.Background(), student, BookRequest{SlotID: "mon", Date: monday.AddDays(-7)})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	parent := session(model.RoleParent, bookingNow, model.Child{ID: "c1"})
	other := "c9"
	_, err = svc.Book(context.Background(), parent, BookRequest{SlotID: "mon", Date: monday, ChildID: &other})
	assert.ErrorIs(t, err, ErrUnknownChild)

	_, err = svc.Book(context.Background(), session(model.RoleVolunteer, bookingNow), BookRequest{SlotID: "mon", Date: monday})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Book(context.Background(), nil, BookRequest{SlotID: "mon", Date: monday})
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = svc.Book(context.Background(), student, BookRequest{SlotID: "mon", Date: monday, Notes: strings.Repeat("ä", 501)})
	assert.ErrorIs(t, err, ErrInvalidNotes)

	assert.Empty(t, backend.created)
}

func TestBook_ConflictIsSlotTaken(t *testing.T) {
	backend := newFakeBackend()
	backend.slots["mon"] = weeklySlot("mon", calendar.Monday, 15, 10, 2)
	backend.createErr = &api.Error{StatusCode: 409, Message: "full"}
	svc := newBookingService(backend)

	_, err := svc.Book(context.Background(), session(model.RoleStudent, bookingNow), BookRequest{
		SlotID: "mon", Date: calendar.NewDate(2026, time.March, 16),
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookNext(t *testing.T) {
	backend := newFakeBackend()
	backend.slots["mon"] = weeklySlot("mon", calendar.Monday, 15, 10, 2)
	ended := weeklySlot("ended", calendar.Monday, 15, 10, 2)
	until := calendar.NewDate(2026, time.March, 1)
	ended.Recurrence.Weekly.EffectiveUntil = &until
	backend.slots["ended"] = ended
	svc := newBookingService(backend)

	student := session(model.RoleStudent, bookingNow)
	b, err := svc.BookNext(context.Background(), student, "mon", nil)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2026, time.March, 16), b.BookingDate)

	_, err = svc.BookNext(context.Background(), student, "ended", nil)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookNext_RollsOverStartedOccurrence(t *testing.T) {
	backend := newFakeBackend()
	// bookingNow is Tuesday 2026-03-10 12:00.
	backend.slots["morning"] = weeklySlot("morning", calendar.Tuesday, 10, 10, 2)
	backend.slots["evening"] = weeklySlot("evening", calendar.Tuesday, 17, 10, 2)
	gone := weeklySlot("gone", calendar.Tuesday, 10, 10, 2)
	gone.Recurrence = model.OneOff(calendar.DateOf(bookingNow))
	backend.slots["gone"] = gone
	svc := newBookingService(backend)
	student := session(model.RoleStudent, bookingNow)

	b, err := svc.BookNext(context.Background(), student, "morning", nil)
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2026, time.March, 17), b.BookingDate)

	date, err := svc.NextDate(context.Background(), student, "evening")
	require.NoError(t, err)
	assert.Equal(t, calendar.NewDate(2026, time.March, 10), date)

	_, err = svc.NextDate(context.Background(), student, "gone")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookNext_InvalidSlot(t *testing.T) {
	backend := newFakeBackend()
	broken := weeklySlot("broken", calendar.Monday, 15, 10, 0)
	broken.Recurrence = model.Recurrence{}
	backend.slots["broken"] = broken
	svc := newBookingService(backend)

	_, err := svc.BookNext(context.Background(), session(model.RoleStudent, bookingNow), "broken", nil)
	assert.ErrorIs(t, err, schedule.ErrInvalidSlotDefinition)
}

func TestMyBookings_CanCancel(t *testing.T) {
	backend := newFakeBackend()
	backend.slots["soon"] = weeklySlot("soon", calendar.Tuesday, 13, 10, 1)
	today := calendar.DateOf(bookingNow)
	later := calendar.TimeOfDay{Hour: 18}

	backend.bookings = []*model.Booking{
		// Start time resolved through the slot: 13:00 today is within two hours.
		{ID: "b-soon", TimeSlotID: "soon", BookingDate: today, Status: model.BookingStatusConfirmed},
		// Projection carries its own start time.
		{ID: "b-later", TimeSlotID: "x", BookingDate: today, Status: model.BookingStatusConfirmed, StartTime: &later},
		// Slot lookup fails: date-only rule on a future day.
		{ID: "b-tomorrow", TimeSlotID: "gone", BookingDate: today.AddDays(1), Status: model.BookingStatusConfirmed},
		{ID: "b-cancelled", TimeSlotID: "soon", BookingDate: today.AddDays(7), Status: model.BookingStatusCancelled},
	}
	svc := newBookingService(backend)

	views, err := svc.MyBookings(context.Background(), session(model.RoleParent, bookingNow))
	require.NoError(t, err)
	require.Len(t, views, 4)

	byID := map[string]BookingView{}
	for _, v := range views {
		byID[v.ID] = v
	}
	assert.False(t, byID["b-soon"].CanCancel)
	assert.True(t, byID["b-later"].CanCancel)
	assert.True(t, byID["b-tomorrow"].CanCancel)
	assert.Nil(t, byID["b-tomorrow"].Deadline)
	assert.False(t, byID["b-cancelled"].CanCancel)

	require.NotNil(t, byID["b-later"].Deadline)
	assert.Equal(t, time.Date(2026, time.March, 10, 16, 0, 0, 0, time.UTC), *byID["b-later"].Deadline)

	// Sorted by date, then start time.
	assert.Equal(t, "b-soon", views[0].ID)
	assert.Equal(t, "b-later", views[1].ID)
	assert.Equal(t, "b-tomorrow", views[2].ID)

	// One lookup per distinct slot id lacking a start time.
	assert.Equal(t, 2, backend.slotCalls)
}

func TestCancel(t *testing.T) {
	backend := newFakeBackend()
	today := calendar.DateOf(bookingNow)
	soon := calendar.TimeOfDay{Hour: 13, Minute: 30}
	later := calendar.TimeOfDay{Hour: 15}
	backend.bookings = []*model.Booking{
		{ID: "soon", BookingDate: today, Status: model.BookingStatusConfirmed, StartTime: &soon},
		{ID: "later", BookingDate: today, Status: model.BookingStatusConfirmed, StartTime: &later},
	}
	svc := newBookingService(backend)
	sess := session(model.RoleParent, bookingNow)

	err := svc.Cancel(context.Background(), sess, "soon")
	assert.ErrorIs(t, err, ErrCancellationWindow)

	err = svc.Cancel(context.Background(), sess, "missing")
	assert.ErrorIs(t, err, api.ErrNotFound)

	require.NoError(t, svc.Cancel(context.Background(), sess, "later"))
	assert.Equal(t, []string{"later"}, backend.cancelled)

	backend.cancelErr = &api.Error{StatusCode: 409}
	assert.ErrorIs(t, svc.Cancel(context.Background(), sess, "later"), ErrSlotTaken)
}
