package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/schedule"
	"go.uber.org/zap"
)

// VolunteerBackend is the volunteer part of the backend API.
type VolunteerBackend interface {
	TimeSlot(ctx context.Context, id string) (*model.TimeSlot, error)
	ApplyToVenue(ctx context.Context, token, venueID, motivation string) (*model.VolunteerApplication, error)
	SignUpShift(ctx context.Context, token, slotID string, date calendar.Date) (*model.Shift, error)
	MyShifts(ctx context.Context, token string) ([]model.Shift, error)
	ExportHours(ctx context.Context, token string, from, to calendar.Date) ([]byte, error)
}

const motivationRule = "min=20,max=1000"

type VolunteerService struct {
	backend  VolunteerBackend
	loc      *time.Location
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

func NewVolunteerService(backend VolunteerBackend, loc *time.Location, logger *zap.Logger) *VolunteerService {
	return &VolunteerService{
		backend:  backend,
		loc:      loc,
		validate: validator.New(),
		now:      time.Now,
		logger:   logger,
	}
}

func (s *VolunteerService) requireVolunteer(sess *model.Session) error {
	if err := requireSession(sess, s.now()); err != nil {
		return err
	}
	if !sess.HasRole(model.RoleVolunteer) {
		return fmt.Errorf("%w: %s is not a volunteer", ErrForbidden, sess.User.Role)
	}
	return nil
}

// Apply sends a volunteer application for venueID.
func (s *VolunteerService) Apply(ctx context.Context, sess *model.Session, venueID, motivation string) (*model.VolunteerApplication, error) {
	if err := s.requireVolunteer(sess); err != nil {
		return nil, err
	}

	motivation = strings.TrimSpace(motivation)
	if err := s.validate.Var(motivation, motivationRule); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMotivation, err)
	}

	app, err := s.backend.ApplyToVenue(ctx, sess.Token, venueID, motivation)
	if err != nil {
		return nil, mapBackendErr(err)
	}

	s.logger.Info("Volunteer application sent",
		zap.String("application_id", app.ID),
		zap.String("venue_id", venueID),
		zap.String("user_id", sess.User.ID),
	)
	return app, nil
}

// SignUpShift registers the volunteer for slotID on date, which must be an
// upcoming occurrence of the slot.
func (s *VolunteerService) SignUpShift(ctx context.Context, sess *model.Session, slotID string, date calendar.Date) (*model.Shift, error) {
	if err := s.requireVolunteer(sess); err != nil {
		return nil, err
	}

	slot, err := s.backend.TimeSlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get time slot: %w", err)
	}
	ok, err := schedule.OccursOn(slot, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrNotAnOccurrence, slotID, date)
	}
	if slot.IsCancelled() {
		return nil, fmt.Errorf("%w: %s is cancelled", ErrSlotUnavailable, slotID)
	}
	if date.Before(calendar.DateOf(s.now().In(s.loc))) {
		return nil, fmt.Errorf("%w: %s is in the past", ErrSlotUnavailable, date)
	}

	shift, err := s.backend.SignUpShift(ctx, sess.Token, slotID, date)
	if err != nil {
		return nil, mapBackendErr(err)
	}

	s.logger.Info("Shift signed up",
		zap.String("shift_id", shift.ID),
		zap.String("slot_id", slotID),
		zap.String("date", date.String()),
	)
	return shift, nil
}

// UpcomingShifts returns shifts from today on, soonest first.
func (s *VolunteerService) UpcomingShifts(ctx context.Context, sess *model.Session) ([]model.Shift, error) {
	if err := s.requireVolunteer(sess); err != nil {
		return nil, err
	}

	shifts, err := s.backend.MyShifts(ctx, sess.Token)
	if err != nil {
		return nil, mapBackendErr(err)
	}

	today := calendar.DateOf(s.now().In(s.loc))
	upcoming := slices.DeleteFunc(shifts, func(sh model.Shift) bool {
		return sh.Date.Before(today)
	})
	slices.SortStableFunc(upcoming, func(a, b model.Shift) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.StartTime.Minutes() - b.StartTime.Minutes()
	})
	return upcoming, nil
}

// ExportHours downloads the hour report. A zero from defaults to the start of
// the current year and a zero to defaults to today.
func (s *VolunteerService) ExportHours(ctx context.Context, sess *model.Session, from, to calendar.Date) ([]byte, error) {
	if err := s.requireVolunteer(sess); err != nil {
		return nil, err
	}

	today := calendar.DateOf(s.now().In(s.loc))
	if to.IsZero() {
		to = today
	}
	if from.IsZero() {
		from = calendar.NewDate(to.Year, time.January, 1)
	}
	if from.After(to) {
		return nil, fmt.Errorf("export range %s..%s is reversed", from, to)
	}

	pdf, err := s.backend.ExportHours(ctx, sess.Token, from, to)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	return pdf, nil
}
