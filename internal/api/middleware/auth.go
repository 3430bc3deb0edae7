package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-system/internal/core/domain"
	"github.com/99minutos/invoice-system/internal/core/ports"
)

// UserIDKey is the echo context key holding the authenticated user id.
const UserIDKey = "user_id"

const bearerScheme = "bearer"

// Auth resolves the bearer token through authn and stores the owning user id
// in the context. Every invoice route sits behind it.
func Auth(authn ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrUnauthenticated
			}

			userID, err := authn.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the id set by Auth, or "" outside an authenticated route.
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
