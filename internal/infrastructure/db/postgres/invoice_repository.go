package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/99minutos/invoice-system/internal/core/domain"
)

const (
	invoiceColumns   = `id, user_id, data, created_at, updated_at`
	listInvoicesSQL  = `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1 ORDER BY created_at DESC`
	insertInvoiceSQL = `INSERT INTO invoices (` + invoiceColumns + `) VALUES ($1, $2, $3, $4, $5)`
	ownedInvoiceSQL  = `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND user_id = $2`
	updateInvoiceSQL = `UPDATE invoices SET data = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`
	deleteInvoiceSQL = `DELETE FROM invoices WHERE id = $1 AND user_id = $2`
)

type InvoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvoice(s scanner) (*domain.Invoice, error) {
	var (
		inv  domain.Invoice
		data []byte
	)
	if err := s.Scan(&inv.ID, &inv.UserID, &data, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	inv.Data = domain.Payload(data)
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.UpdatedAt = inv.UpdatedAt.UTC()
	return &inv, nil
}

func (r *InvoiceRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listInvoicesSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	out := []*domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return out, nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, insertInvoiceSQL, inv.ID, inv.UserID, string(inv.Data), inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) FindOwned(ctx context.Context, id, userID string) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	inv, err := scanInvoice(r.db.QueryRowContext(ctx, ownedInvoiceSQL, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) UpdateOwned(ctx context.Context, inv *domain.Invoice) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, updateInvoiceSQL, string(inv.Data), inv.UpdatedAt, inv.ID, inv.UserID)
	if err != nil {
		return false, fmt.Errorf("update invoice: %w", err)
	}
	return affected(res)
}

func (r *InvoiceRepository) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, deleteInvoiceSQL, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete invoice: %w", err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
