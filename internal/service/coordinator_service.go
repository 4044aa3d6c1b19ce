package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/calendar"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"go.uber.org/zap"
)

// CoordinatorBackend is the coordinator part of the backend API.
type CoordinatorBackend interface {
	PendingApplications(ctx context.Context, token, venueID string) ([]model.VolunteerApplication, error)
	ReviewApplication(ctx context.Context, token, applicationID string, approve bool) error
	SlotBookings(ctx context.Context, token, slotID string, date calendar.Date) ([]model.Attendance, error)
	MarkAttendance(ctx context.Context, token, bookingID string, attended bool) error
}

type CoordinatorService struct {
	backend CoordinatorBackend
	now     func() time.Time
	logger  *zap.Logger
}

func NewCoordinatorService(backend CoordinatorBackend, logger *zap.Logger) *CoordinatorService {
	return &CoordinatorService{
		backend: backend,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *CoordinatorService) requireCoordinator(sess *model.Session) error {
	if err := requireSession(sess, s.now()); err != nil {
		return err
	}
	if !sess.HasRole(model.RoleCoordinator) {
		return fmt.Errorf("%w: %s is not a coordinator", ErrForbidden, sess.User.Role)
	}
	return nil
}

func (s *CoordinatorService) PendingApplications(ctx context.Context, sess *model.Session, venueID string) ([]model.VolunteerApplication, error) {
	if err := s.requireCoordinator(sess); err != nil {
		return nil, err
	}
	apps, err := s.backend.PendingApplications(ctx, sess.Token, venueID)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	return apps, nil
}

// Review approves or declines an application.
func (s *CoordinatorService) Review(ctx context.Context, sess *model.Session, applicationID string, approve bool) error {
	if err := s.requireCoordinator(sess); err != nil {
		return err
	}
	if err := s.backend.ReviewApplication(ctx, sess.Token, applicationID, approve); err != nil {
		return mapBackendErr(err)
	}

	s.logger.Info("Application reviewed",
		zap.String("application_id", applicationID),
		zap.Bool("approved", approve),
		zap.String("coordinator_id", sess.User.ID),
	)
	return nil
}

func (s *CoordinatorService) SlotAttendance(ctx context.Context, sess *model.Session, slotID string, date calendar.Date) ([]model.Attendance, error) {
	if err := s.requireCoordinator(sess); err != nil {
		return nil, err
	}
	rows, err := s.backend.SlotBookings(ctx, sess.Token, slotID, date)
	if err != nil {
		return nil, mapBackendErr(err)
	}
	return rows, nil
}

func (s *CoordinatorService) MarkAttendance(ctx context.Context, sess *model.Session, bookingID string, attended bool) error {
	if err := s.requireCoordinator(sess); err != nil {
		return err
	}
	if err := s.backend.MarkAttendance(ctx, sess.Token, bookingID, attended); err != nil {
		return mapBackendErr(err)
	}
	s.logger.Info("Attendance marked",
		zap.String("booking_id", bookingID),
		zap.Bool("attended", attended),
	)
	return nil
}
