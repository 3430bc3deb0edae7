package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/invoice-system/internal/core/domain"
	"github.com/99minutos/invoice-system/internal/core/ports"
)

// AuthService implements registration, login and bearer token resolution.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	hasher   ports.CredentialHasher
	log      zerolog.Logger

	newID func() string
	now   func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	hasher ports.CredentialHasher,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		log:      log,
		newID:    uuid.NewString,
		now:      utcNow,
	}
}

// Register creates the account and opens its first session. Email
// uniqueness is decided by the store on insert. If the session insert fails
// the account stays registered and the caller has to log in.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" || strings.TrimSpace(in.Company) == "" {
		return nil, domain.ErrValidation
	}

	digest, err := s.hasher.Digest(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &domain.User{
		ID:           s.newID(),
		Email:        in.Email,
		PasswordHash: digest,
		Company:      in.Company,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("user registered without session")
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Login verifies the credentials and opens a new session. Unknown emails and
// wrong passwords are reported identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Debug().Str("user_id", user.ID).Msg("password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token to its user id.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthenticated
	}

	userID, err := s.sessions.FindUserID(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return "", domain.ErrUnauthenticated
		}
		return "", fmt.Errorf("authenticate: %w", err)
	}
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}

func (s *AuthService) issueSession(ctx context.Context, userID string) (string, error) {
	session := &domain.Session{
		Token:     s.newID(),
		UserID:    userID,
		CreatedAt: s.now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return session.Token, nil
}

// utcNow is truncated to milliseconds, the coarsest precision of the
// supported stores, so a value read back equals the value written.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
