package service

import (
	"context"
	"sync"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/api"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
)

// fakeBackend implements every backend interface the services use.
type fakeBackend struct {
	mu sync.Mutex

	venues    []model.Venue
	slots     map[string]*model.TimeSlot
	slotErr   error
	bookings  []*model.Booking
	created   []api.BookingRequest
	createErr error
	cancelled []string
	cancelErr error
	slotCalls int

	login    *api.LoginResult
	loginErr error
	me       *model.User
	meErr    error
	children []model.Child

	shifts   []model.Shift
	reviewed map[string]bool
	marked   map[string]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		slots:    make(map[string]*model.TimeSlot),
		reviewed: make(map[string]bool),
		marked:   make(map[string]bool),
	}
}

func (f *fakeBackend) Venues(context.Context) ([]model.Venue, error) {
	return append([]model.Venue(nil), f.venues...), nil
}

func (f *fakeBackend) Venue(_ context.Context, id string) (*model.Venue, error) {
	for _, v := range f.venues {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, &api.Error{StatusCode: 404}
}

func (f *fakeBackend) VenueTimeSlots(_ context.Context, venueID string) ([]*model.TimeSlot, error) {
	var out []*model.TimeSlot
	for _, s := range f.slots {
		if s.VenueID == venueID {
			out = append(out, s)
		}
	}
	return out, f.slotErr
}

func (f *fakeBackend) TimeSlot(_ context.Context, id string) (*model.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slotCalls++
	if s, ok := f.slots[id]; ok {
		return s, nil
	}
	return nil, &api.Error{StatusCode: 404}
}

func (f *fakeBackend) MyBookings(context.Context, string) ([]*model.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBackend) CreateBooking(_ context.Context, _ string, req api.BookingRequest) (*model.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	return &model.Booking{
		ID:          "new",
		TimeSlotID:  req.TimeSlotID,
		BookingDate: req.BookingDate,
		ChildID:     req.ChildID,
		Status:      model.BookingStatusConfirmed,
	}, nil
}

func (f *fakeBackend) CancelBooking(_ context.Context, _ string, id string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeBackend) Login(context.Context, string, string) (*api.LoginResult, error) {
	return f.login, f.loginErr
}

func (f *fakeBackend) Me(context.Context, string) (*model.User, error) {
	return f.me, f.meErr
}

func (f *fakeBackend) Children(context.Context, string) ([]model.Child, error) {
	return f.children, nil
}

func (f *fakeBackend) ApplyToVenue(_ context.Context, _, venueID, motivation string) (*model.VolunteerApplication, error) {
	return &model.VolunteerApplication{ID: "app1", VenueID: venueID, Motivation: motivation, Status: model.ApplicationStatusPending}, nil
}

func (f *fakeBackend) SignUpShift(_ context.Context, _, slotID string, date calendar.Date) (*model.Shift, error) {
	return &model.Shift{ID: "sh1", TimeSlotID: slotID, Date: date}, nil
}

func (f *fakeBackend) MyShifts(context.Context, string) ([]model.Shift, error) {
	return append([]model.Shift(nil), f.shifts...), nil
}

func (f *fakeBackend) ExportHours(context.Context, string, calendar.Date, calendar.Date) ([]byte, error) {
	return []byte("%PDF"), nil
}

func (f *fakeBackend) PendingApplications(context.Context, string, string) ([]model.VolunteerApplication, error) {
	return []model.VolunteerApplication{{ID: "a1", Status: model.ApplicationStatusPending}}, nil
}

func (f *fakeBackend) ReviewApplication(_ context.Context, _, id string, approve bool) error {
	f.reviewed[id] = approve
	return nil
}

func (f *fakeBackend) SlotBookings(context.Context, string, string, calendar.Date) ([]model.Attendance, error) {
	return []model.Attendance{{BookingID: "b1", ChildName: "Elsa", Status: model.BookingStatusConfirmed}}, nil
}

func (f *fakeBackend) MarkAttendance(_ context.Context, _, id string, attended bool) error {
	f.marked[id] = attended
	return nil
}

// memStore is an in-memory SessionStore.
type memStore struct {
	sessions  map[int64]*model.Session
	deleteErr error
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[int64]*model.Session)}
}

func (m *memStore) Upsert(_ context.Context, s *model.Session) error {
	cp := *s
	m.sessions[s.TelegramID] = &cp
	return nil
}

func (m *memStore) GetByTelegramID(_ context.Context, id int64) (*model.Session, error) {
	return m.sessions[id], nil
}

func (m *memStore) DeleteByTelegramID(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.sessions, id)
	return nil
}

func (m *memStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func session(role model.Role, now time.Time, children ...model.Child) *model.Session {
	return &model.Session{
		TelegramID: 42,
		Token:      "tok",
		User:       model.User{ID: "u1", FirstName: "Anna", Role: role},
		Children:   children,
		ExpiresAt:  now.Add(time.Hour),
	}
}

func weeklySlot(id string, day calendar.Weekday, start int, capacity, booked int) *model.TimeSlot {
	return &model.TimeSlot{
		ID:              id,
		VenueID:         "v1",
		Recurrence:      model.Weekly(day, calendar.Date{}, nil),
		StartTime:       calendar.TimeOfDay{Hour: start},
		EndTime:         calendar.TimeOfDay{Hour: start + 2},
		MaxCapacity:     capacity,
		CurrentBookings: booked,
		Status:          model.SlotStatusOpen,
	}
}
