package ports

import (
	"context"

	"github.com/99minutos/invoice-system/internal/core/domain"
)

// InvoiceRepository persists invoices. Every per-invoice operation filters
// on both the invoice id and the owning user id, so a row owned by someone
// else behaves exactly like a missing row.
type InvoiceRepository interface {
	// ListByUser returns the user's invoices, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Invoice, error)
	Create(ctx context.Context, invoice *domain.Invoice) error
	// FindOwned returns domain.ErrInvoiceNotFound when no row matches both ids.
	FindOwned(ctx context.Context, id, userID string) (*domain.Invoice, error)
	// UpdateOwned replaces the payload wholesale and reports whether a row matched.
	UpdateOwned(ctx context.Context, invoice *domain.Invoice) (bool, error)
	// DeleteOwned reports whether a row was removed.
	DeleteOwned(ctx context.Context, id, userID string) (bool, error)
}
