package handler

import (
	"github.com/99minutos/invoice-system/internal/core/domain"
	"github.com/99minutos/invoice-system/internal/core/ports"
)

// --- Service result → HTTP response ---

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		Success: true,
		Token:   r.Token,
		User: userResponse{
			ID:      r.User.ID,
			Email:   r.User.Email,
			Company: r.User.Company,
		},
	}
}

func toInvoiceResponse(inv *domain.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:        inv.ID,
		UserID:    inv.UserID,
		Data:      inv.Data,
		CreatedAt: inv.CreatedAt.UTC(),
		UpdatedAt: inv.UpdatedAt.UTC(),
	}
}

func toListResponse(invs []*domain.Invoice) listInvoicesResponse {
	out := make([]invoiceResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvoiceResponse(inv))
	}
	return listInvoicesResponse{Invoices: out}
}
