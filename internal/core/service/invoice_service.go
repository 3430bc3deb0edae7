package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/invoice-system/internal/core/domain"
	"github.com/99minutos/invoice-system/internal/core/ports"
)

type InvoiceService struct {
	repo ports.InvoiceRepository
	log  zerolog.Logger

	newID func() string
	now   func() time.Time
}

func NewInvoiceService(repo ports.InvoiceRepository, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, log: log, newID: uuid.NewString, now: utcNow}
}

// List returns the user's invoices, most recent first. An empty result is
// an empty slice, never nil.
func (s *InvoiceService) List(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	invoices, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if invoices == nil {
		invoices = []*domain.Invoice{}
	}
	return invoices, nil
}

// Create stores the payload as-is and returns the new invoice id.
func (s *InvoiceService) Create(ctx context.Context, userID string, payload domain.Payload) (string, error) {
	data, err := normalizePayload(payload)
	if err != nil {
		return "", err
	}

	now := s.now()
	invoice := &domain.Invoice{
		ID:        s.newID(),
		UserID:    userID,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, invoice); err != nil {
		return "", fmt.Errorf("create invoice: %w", err)
	}

	s.log.Info().Str("invoice_id", invoice.ID).Str("user_id", userID).Msg("invoice created")
	return invoice.ID, nil
}

func (s *InvoiceService) Get(ctx context.Context, userID, id string) (*domain.Invoice, error) {
	if id == "" {
		return nil, domain.ErrInvoiceNotFound
	}
	invoice, err := s.repo.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// Update replaces the whole payload. Nothing of the previous document is kept.
func (s *InvoiceService) Update(ctx context.Context, userID, id string, payload domain.Payload) error {
	data, err := normalizePayload(payload)
	if err != nil {
		return err
	}
	if id == "" {
		return domain.ErrInvoiceNotFound
	}

	ok, err := s.repo.UpdateOwned(ctx, &domain.Invoice{
		ID:        id,
		UserID:    userID,
		Data:      data,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if !ok {
		return domain.ErrInvoiceNotFound
	}

	s.log.Info().Str("invoice_id", id).Str("user_id", userID).Msg("invoice updated")
	return nil
}

func (s *InvoiceService) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return domain.ErrInvoiceNotFound
	}
	ok, err := s.repo.DeleteOwned(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if !ok {
		return domain.ErrInvoiceNotFound
	}

	s.log.Info().Str("invoice_id", id).Str("user_id", userID).Msg("invoice deleted")
	return nil
}

// normalizePayload checks that the payload is a single JSON value and
// strips surrounding whitespace. The document itself is left untouched.
func normalizePayload(payload domain.Payload) (domain.Payload, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, domain.ErrInvalidPayload
	}
	out := make(domain.Payload, len(trimmed))
	copy(out, trimmed)
	return out, nil
}
