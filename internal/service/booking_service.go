package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pluggkompis/pluggkompis_bot/internal/api"
	"github.com/pluggkompis/pluggkompis_bot/internal/availability"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/policy"
	"github.com/pluggkompis/pluggkompis_bot/internal/schedule"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BookingBackend is the booking part of the backend API.
type BookingBackend interface {
	TimeSlot(ctx context.Context, id string) (*model.TimeSlot, error)
	MyBookings(ctx context.Context, token string) ([]*model.Booking, error)
	CreateBooking(ctx context.Context, token string, req api.BookingRequest) (*model.Booking, error)
	CancelBooking(ctx context.Context, token, bookingID string) error
}

// BookRequest asks for a seat on one occurrence of a slot.
type BookRequest struct {
	SlotID  string
	Date    calendar.Date
	ChildID *string // required for parents, ignored for students
	Notes   string  `validate:"max=500"`
}

// BookingView is a booking annotated for display.
type BookingView struct {
	*model.Booking
	SlotStart *calendar.TimeOfDay
	CanCancel bool
	Deadline  *time.Time
}

const slotFetchLimit = 4

type BookingService struct {
	backend  BookingBackend
	loc      *time.Location
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

func NewBookingService(backend BookingBackend, loc *time.Location, logger *zap.Logger) *BookingService {
	return &BookingService{
		backend:  backend,
		loc:      loc,
		validate: validator.New(),
		now:      time.Now,
		logger:   logger,
	}
}

func (s *BookingService) clock() time.Time {
	return s.now().In(s.loc)
}

// Book validates req against the slot definition and posts the booking.
func (s *BookingService) Book(ctx context.Context, sess *model.Session, req BookRequest) (*model.Booking, error) {
	if err := requireSession(sess, s.clock()); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotes, err)
	}
	childID, err := bookingChild(sess, req.ChildID)
	if err != nil {
		return nil, err
	}

	slot, err := s.backend.TimeSlot(ctx, req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("get time slot: %w", err)
	}

	ok, err := schedule.OccursOn(slot, req.Date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrNotAnOccurrence, slot.ID, req.Date)
	}

	occ, err := schedule.Resolve(slot, req.Date, s.loc)
	if err != nil {
		return nil, err
	}
	if !occ.Start.After(s.clock()) {
		return nil, fmt.Errorf("%w: %s has already started", ErrSlotUnavailable, slot.ID)
	}
	if slot.Status == model.SlotStatusFull || !availability.Summarize(slot).Bookable() {
		return nil, fmt.Errorf("%w: %s is %s", ErrSlotUnavailable, slot.ID, slot.Status)
	}

	booking, err := s.backend.CreateBooking(ctx, sess.Token, api.BookingRequest{
		TimeSlotID:  slot.ID,
		BookingDate: req.Date,
		ChildID:     childID,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, mapBackendErr(err)
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("slot_id", slot.ID),
		zap.String("date", req.Date.String()),
		zap.String("user_id", sess.User.ID),
	)

	return booking, nil
}

// NextDate returns the first occurrence of slotID that has not started yet.
// An occurrence later today counts; one that already began rolls over to the
// following match.
func (s *BookingService) NextDate(ctx context.Context, sess *model.Session, slotID string) (calendar.Date, error) {
	now := s.clock()
	if err := requireSession(sess, now); err != nil {
		return calendar.Date{}, err
	}

	slot, err := s.backend.TimeSlot(ctx, slotID)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("get time slot: %w", err)
	}
	return nextStartable(slot, now, s.loc)
}

func nextStartable(slot *model.TimeSlot, now time.Time, loc *time.Location) (calendar.Date, error) {
	from := calendar.DateOf(now)
	for {
		date, err := schedule.NextOccurrence(slot, from)
		if err != nil {
			if errors.Is(err, schedule.ErrOutOfRange) {
				return calendar.Date{}, fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
			}
			return calendar.Date{}, err
		}
		occ, err := schedule.Resolve(slot, date, loc)
		if err != nil {
			return calendar.Date{}, err
		}
		if occ.Start.After(now) {
			return date, nil
		}
		// One-off slots only have the one date.
		if slot.Recurrence.OneOff != nil {
			return calendar.Date{}, fmt.Errorf("%w: %s was on %s", ErrSlotUnavailable, slot.ID, date)
		}
		from = date.AddDays(1)
	}
}

// BookNext books the next occurrence of slotID that has not started yet.
func (s *BookingService) BookNext(ctx context.Context, sess *model.Session, slotID string, childID *string) (*model.Booking, error) {
	date, err := s.NextDate(ctx, sess, slotID)
	if err != nil {
		return nil, err
	}
	return s.Book(ctx, sess, BookRequest{SlotID: slotID, Date: date, ChildID: childID})
}

// MyBookings lists the caller's bookings, soonest first, with the cancellation
// gate evaluated. Start times missing from the projection are looked up per
// slot; when that fails the date-only rule applies.
func (s *BookingService) MyBookings(ctx context.Context, sess *model.Session) ([]BookingView, error) {
	now := s.clock()
	if err := requireSession(sess, now); err != nil {
		return nil, err
	}

	bookings, err := s.backend.MyBookings(ctx, sess.Token)
	if err != nil {
		return nil, mapBackendErr(err)
	}

	starts := s.slotStarts(ctx, bookings)

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		start := b.StartTime
		if start == nil {
			start = starts[b.TimeSlotID]
		}
		v := BookingView{
			Booking:   b,
			SlotStart: start,
			CanCancel: policy.CanCancel(b, start, now),
		}
		if deadline, ok := policy.CancelDeadline(b, start, s.loc); ok {
			v.Deadline = &deadline
		}
		views = append(views, v)
	}

	sortBookingViews(views)
	return views, nil
}

func (s *BookingService) slotStarts(ctx context.Context, bookings []*model.Booking) map[string]*calendar.TimeOfDay {
	var missing []string
	seen := make(map[string]bool)
	for _, b := range bookings {
		if b.StartTime == nil && b.TimeSlotID != "" && !seen[b.TimeSlotID] {
			seen[b.TimeSlotID] = true
			missing = append(missing, b.TimeSlotID)
		}
	}

	results := make([]*calendar.TimeOfDay, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(slotFetchLimit)
	for i, id := range missing {
		g.Go(func() error {
			slot, err := s.backend.TimeSlot(gctx, id)
			if err != nil {
				s.logger.Warn("Slot lookup failed, using date-only cancellation rule",
					zap.String("slot_id", id), zap.Error(err))
				return nil
			}
			start := slot.StartTime
			results[i] = &start
			return nil
		})
	}
	_ = g.Wait()

	starts := make(map[string]*calendar.TimeOfDay, len(missing))
	for i, id := range missing {
		if results[i] != nil {
			starts[id] = results[i]
		}
	}
	return starts
}

// Cancel re-checks the cancellation window before asking the backend.
func (s *BookingService) Cancel(ctx context.Context, sess *model.Session, bookingID string) error {
	views, err := s.MyBookings(ctx, sess)
	if err != nil {
		return err
	}

	var target *BookingView
	for i := range views {
		if views[i].ID == bookingID {
			target = &views[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("booking %s: %w", bookingID, api.ErrNotFound)
	}
	if !target.CanCancel {
		return fmt.Errorf("%w: booking %s on %s", ErrCancellationWindow, bookingID, target.BookingDate)
	}

	if err := s.backend.CancelBooking(ctx, sess.Token, bookingID); err != nil {
		return mapBackendErr(err)
	}

	s.logger.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", sess.User.ID),
	)
	return nil
}

func requireSession(sess *model.Session, now time.Time) error {
	if !sess.IsValid(now) {
		return ErrNotLoggedIn
	}
	return nil
}

func bookingChild(sess *model.Session, childID *string) (*string, error) {
	switch sess.User.Role {
	case model.RoleStudent:
		return nil, nil
	case model.RoleParent:
		if childID == nil {
			return nil, fmt.Errorf("%w: no child selected", ErrUnknownChild)
		}
		if _, ok := sess.Child(*childID); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownChild, *childID)
		}
		return childID, nil
	default:
		return nil, fmt.Errorf("%w: %s cannot book", ErrForbidden, sess.User.Role)
	}
}

// mapBackendErr turns backend rejections into the service's own errors.
func mapBackendErr(err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return ErrNotLoggedIn
	case errors.Is(err, api.ErrForbidden):
		return fmt.Errorf("%w: %v", ErrForbidden, err)
	case errors.Is(err, api.ErrConflict):
		return fmt.Errorf("%w: %v", ErrSlotTaken, err)
	}
	return err
}
