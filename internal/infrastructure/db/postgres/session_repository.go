package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/99minutos/invoice-system/internal/core/domain"
)

const (
	insertSessionSQL = `INSERT INTO sessions (token, user_id, created_at) VALUES ($1, $2, $3)`
	sessionUserSQL   = `SELECT user_id FROM sessions WHERE token = $1`
)

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, insertSessionSQL, s.Token, s.UserID, s.CreatedAt); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindUserID(ctx context.Context, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var userID string
	if err := r.db.QueryRowContext(ctx, sessionUserSQL, token).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrSessionNotFound
		}
		return "", fmt.Errorf("find session: %w", err)
	}
	return userID, nil
}
