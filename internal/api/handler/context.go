package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-system/internal/api/middleware"
	"github.com/99minutos/invoice-system/internal/core/domain"
)

// ctxUserID returns the user id injected by the Auth middleware. An empty id
// means the route was mounted without Auth, which must never reach a service.
func ctxUserID(c echo.Context) (string, error) {
	userID := middleware.UserID(c)
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}
