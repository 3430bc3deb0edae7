// Package memory implements the repositories in process memory. It backs
// local development (STORE_DRIVER=memory) and end-to-end HTTP tests; data does
// not survive a restart.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/99minutos/invoice-system/internal/core/domain"
)

// Store holds every collection behind one lock so that cross-collection
// state stays consistent.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*domain.User // keyed by email
	sessions map[string]string       // token -> user id
	invoices map[string]*domain.Invoice
}

func New() *Store {
	return &Store{
		users:    map[string]*domain.User{},
		sessions: map[string]string{},
		invoices: map[string]*domain.Invoice{},
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }
func (s *Store) Sessions() *SessionRepository { return &SessionRepository{s: s} }
func (s *Store) Invoices() *InvoiceRepository { return &InvoiceRepository{s: s} }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.Email]; ok {
		return domain.ErrUserExists
	}
	cp := *u
	r.s.users[u.Email] = &cp
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type SessionRepository struct{ s *Store }

func (r *SessionRepository) Create(_ context.Context, sess *domain.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.sessions[sess.Token] = sess.UserID
	return nil
}

func (r *SessionRepository) FindUserID(_ context.Context, token string) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	uid, ok := r.s.sessions[token]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return uid, nil
}

type InvoiceRepository struct{ s *Store }

func clone(inv *domain.Invoice) *domain.Invoice {
	cp := *inv
	cp.Data = bytes.Clone(inv.Data)
	return &cp
}

func (r *InvoiceRepository) ListByUser(_ context.Context, userID string) ([]*domain.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Invoice{}
	for _, inv := range r.s.invoices {
		if inv.UserID == userID {
			out = append(out, clone(inv))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InvoiceRepository) Create(_ context.Context, inv *domain.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.invoices[inv.ID] = clone(inv)
	return nil
}

func (r *InvoiceRepository) FindOwned(_ context.Context, id, userID string) (*domain.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	inv, ok := r.s.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, domain.ErrInvoiceNotFound
	}
	return clone(inv), nil
}

func (r *InvoiceRepository) UpdateOwned(_ context.Context, upd *domain.Invoice) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invoices[upd.ID]
	if !ok || inv.UserID != upd.UserID {
		return false, nil
	}
	inv.Data = bytes.Clone(upd.Data)
	inv.UpdatedAt = upd.UpdatedAt
	return true, nil
}

func (r *InvoiceRepository) DeleteOwned(_ context.Context, id, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invoices[id]
	if !ok || inv.UserID != userID {
		return false, nil
	}
	delete(r.s.invoices, id)
	return true, nil
}
