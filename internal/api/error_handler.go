package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/invoice-system/internal/core/domain"
	"github.com/99minutos/invoice-system/internal/i18n"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Renders {"error": "<message>"} in the language resolved for the request.
//   - Answers unmatched routes and methods with plain text.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger, loc *i18n.Localizer) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusNotFound:
				_ = c.String(http.StatusNotFound, "Not Found")
				return
			case http.StatusMethodNotAllowed:
				_ = c.String(http.StatusMethodNotAllowed, "Method not allowed")
				return
			}
		}

		code, key := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: loc.Translate(c.Request(), key)})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, i18n.MsgValidation
	case errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest, i18n.MsgInvalidPayload
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, i18n.MsgUserExists
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, i18n.MsgInvalidCredentials
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, i18n.MsgUnauthenticated
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, i18n.MsgInvoiceNotFound
	}

	// Echo's own client errors (body limit, unsupported media type, ...).
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return he.Code, i18n.MsgInvalidPayload
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, i18n.MsgInternal
}
