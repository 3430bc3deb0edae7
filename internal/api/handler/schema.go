package handler

import (
	"encoding/json"
	"time"
)

// errorResponse is the error envelope rendered by the HTTP error handler.
// Declared here so the API docs can reference it.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Company  string `json:"company"  validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

// --- Invoices ---

type invoiceResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Data      json.RawMessage `json:"data" swaggertype:"object"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type listInvoicesResponse struct {
	Invoices []invoiceResponse `json:"invoices"`
}

type getInvoiceResponse struct {
	Invoice invoiceResponse `json:"invoice"`
}

type createInvoiceResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type successResponse struct {
	Success bool `json:"success"`
}
