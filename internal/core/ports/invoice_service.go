package ports

import (
	"context"

	"github.com/99minutos/invoice-system/internal/core/domain"
)

// InvoiceService defines the invoice use cases. userID must come from
// Authenticator.Authenticate and nowhere else.
type InvoiceService interface {
	List(ctx context.Context, userID string) ([]*domain.Invoice, error)
	Create(ctx context.Context, userID string, payload domain.Payload) (string, error)
	Get(ctx context.Context, userID, id string) (*domain.Invoice, error)
	Update(ctx context.Context, userID, id string, payload domain.Payload) error
	Delete(ctx context.Context, userID, id string) error
}
