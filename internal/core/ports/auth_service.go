package ports

import (
	"context"

	"github.com/99minutos/invoice-system/internal/core/domain"
)

// CredentialHasher turns a secret into a storable digest and checks a
// secret against one.
type CredentialHasher interface {
	Digest(secret string) (string, error)
	Verify(secret, digest string) bool
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email    string
	Password string
	Company  string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// Authenticator resolves a bearer token to the owning user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

type AuthService interface {
	Authenticator
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
