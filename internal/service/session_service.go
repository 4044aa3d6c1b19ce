package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pluggkompis/pluggkompis_bot/internal/api"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"go.uber.org/zap"
)

// SessionStore persists bot sessions (see repository.SessionRepository).
type SessionStore interface {
	Upsert(ctx context.Context, s *model.Session) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Session, error)
	DeleteByTelegramID(ctx context.Context, telegramID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// AuthBackend is the part of the backend API used for identity.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Me(ctx context.Context, token string) (*model.User, error)
	Children(ctx context.Context, token string) ([]model.Child, error)
}

type credentials struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6,max=128"`
}

type SessionService struct {
	store    SessionStore
	backend  AuthBackend
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

func NewSessionService(store SessionStore, backend AuthBackend, logger *zap.Logger) *SessionService {
	return &SessionService{
		store:    store,
		backend:  backend,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		logger:   logger,
	}
}

// Login authenticates against the backend and stores a session for telegramID.
func (s *SessionService) Login(ctx context.Context, telegramID int64, email, password string) (*model.Session, error) {
	if err := s.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrValidation) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("backend login: %w", err)
	}

	sess := &model.Session{
		ID:         uuid.New(),
		TelegramID: telegramID,
		Token:      res.Token,
		User:       res.User,
		ExpiresAt:  res.ExpiresAt,
	}

	if res.User.Role == model.RoleParent {
		children, err := s.backend.Children(ctx, res.Token)
		if err != nil {
			return nil, fmt.Errorf("load children: %w", err)
		}
		sess.Children = sortChildren(children)
	}

	if err := s.store.Upsert(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.String("user_id", sess.User.ID),
		zap.String("role", string(sess.User.Role)),
		zap.Time("expires_at", sess.ExpiresAt),
	)

	return sess, nil
}

// Current returns the live session for telegramID or ErrNotLoggedIn.
func (s *SessionService) Current(ctx context.Context, telegramID int64) (*model.Session, error) {
	sess, err := s.store.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess == nil {
		return nil, ErrNotLoggedIn
	}
	if !sess.IsValid(s.now()) {
		if err := s.store.DeleteByTelegramID(ctx, telegramID); err != nil {
			s.logger.Warn("Failed to delete expired session", zap.Int64("telegram_id", telegramID), zap.Error(err))
		}
		return nil, ErrNotLoggedIn
	}
	return sess, nil
}

// Refresh re-reads the user and children from the backend. A rejected token
// ends the session.
func (s *SessionService) Refresh(ctx context.Context, sess *model.Session) (*model.Session, error) {
	user, err := s.backend.Me(ctx, sess.Token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			if err := s.store.DeleteByTelegramID(ctx, sess.TelegramID); err != nil {
				s.logger.Warn("Failed to delete rejected session", zap.Int64("telegram_id", sess.TelegramID), zap.Error(err))
			}
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("refresh user: %w", err)
	}

	updated := *sess
	updated.User = *user
	updated.Children = nil
	if user.Role == model.RoleParent {
		children, err := s.backend.Children(ctx, sess.Token)
		if err != nil {
			return nil, fmt.Errorf("refresh children: %w", err)
		}
		updated.Children = sortChildren(children)
	}

	if err := s.store.Upsert(ctx, &updated); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &updated, nil
}

func (s *SessionService) Logout(ctx context.Context, telegramID int64) error {
	if err := s.store.DeleteByTelegramID(ctx, telegramID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
	return nil
}

// SweepExpired removes sessions past their expiry.
func (s *SessionService) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return n, nil
}
