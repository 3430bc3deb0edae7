package ports

import (
	"context"

	"github.com/99minutos/invoice-system/internal/core/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create inserts the user. It returns domain.ErrUserExists when the
	// store's unique email constraint rejects the row.
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail returns domain.ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SessionRepository persists bearer sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// FindUserID resolves a token by exact match. It returns
	// domain.ErrSessionNotFound for tokens that were never issued.
	FindUserID(ctx context.Context, token string) (string, error)
}
