package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/99minutos/invoice-system/internal/core/domain"
)

const (
	insertUserSQL  = `INSERT INTO users (id, email, password_hash, company, created_at) VALUES ($1, $2, $3, $4, $5)`
	userByEmailSQL = `SELECT id, email, password_hash, company, created_at FROM users WHERE email = $1`
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create maps the UNIQUE(email) violation to domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, insertUserSQL, user.ID, user.Email, user.PasswordHash, user.Company, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, userByEmailSQL, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Company, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
