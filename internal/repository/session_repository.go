package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pluggkompis/pluggkompis_bot/internal/model"
	"github.com/pluggkompis/pluggkompis_bot/internal/repository/base"
)

type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

const sessionColumns = `id, telegram_id, token, user_id, email, first_name, last_name, role, children, expires_at, created_at, updated_at`

// Upsert stores the session, replacing any previous one for the same Telegram user.
func (r *SessionRepository) Upsert(ctx context.Context, s *model.Session) error {
	query := `
		INSERT INTO bot_sessions (id, telegram_id, token, user_id, email, first_name, last_name, role, children, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (telegram_id) DO UPDATE SET
			id = EXCLUDED.id,
			token = EXCLUDED.token,
			user_id = EXCLUDED.user_id,
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			role = EXCLUDED.role,
			children = EXCLUDED.children,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	children := s.Children
	if children == nil {
		children = []model.Child{}
	}

	err := r.QueryRow(ctx, query,
		s.ID,
		s.TelegramID,
		s.Token,
		s.User.ID,
		s.User.Email,
		s.User.FirstName,
		s.User.LastName,
		string(s.User.Role),
		children,
		s.ExpiresAt,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	return nil
}

// GetByTelegramID returns the stored session or nil when there is none.
func (r *SessionRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM bot_sessions WHERE telegram_id = $1`

	var (
		s    model.Session
		role string
	)
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&s.ID,
		&s.TelegramID,
		&s.Token,
		&s.User.ID,
		&s.User.Email,
		&s.User.FirstName,
		&s.User.LastName,
		&role,
		&s.Children,
		&s.ExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by telegram id: %w", err)
	}
	s.User.Role = model.Role(role)

	return &s, nil
}

// DeleteByTelegramID removes the session; deleting a missing session is not an error.
func (r *SessionRepository) DeleteByTelegramID(ctx context.Context, telegramID int64) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM bot_sessions WHERE telegram_id = $1`, telegramID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions that expired before now.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.ExecAffected(ctx, `DELETE FROM bot_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return n, nil
}
