package handler

import (
	"errors"

	"github.com/99minutos/invoice-system/internal/core/domain"
	"github.com/99minutos/invoice-system/internal/pkg/metrics"
)

// resultLabel classifies err for the metrics result label: caller mistakes
// are failures, anything else is an error.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidPayload),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvoiceNotFound):
		return metrics.ResultFailure
	default:
		return metrics.ResultError
	}
}
