package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-system/internal/core/domain"
)

// bindBody decodes the request body as JSON into dst whatever the
// Content-Type says. An empty body leaves dst zero. Malformed bodies become
// domain.ErrInvalidPayload; an oversized body keeps echo's 413 error.
func bindBody(c echo.Context, dst any) error {
	err := c.Echo().JSONSerializer.Deserialize(c, dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return payloadError(err)
}

// readPayload returns the raw request body for invoice create and update.
func readPayload(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, payloadError(err)
	}
	return body, nil
}

func payloadError(err error) error {
	if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
		return echo.ErrStatusRequestEntityTooLarge
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
}
