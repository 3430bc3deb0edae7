package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/invoice-system/internal/core/ports"
	"github.com/99minutos/invoice-system/internal/pkg/metrics"
)

// InvoiceHandler serves the invoice collection and item routes. All of them
// are mounted behind the Auth middleware.
type InvoiceHandler struct {
	service ports.InvoiceService
	metrics *metrics.Metrics
}

func NewInvoiceHandler(service ports.InvoiceService, m *metrics.Metrics) *InvoiceHandler {
	return &InvoiceHandler{service: service, metrics: m}
}

func (h *InvoiceHandler) observe(op string, err error) {
	h.metrics.ObserveInvoice(op, resultLabel(err))
}

// List returns the caller's invoices, newest first.
//
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listInvoicesResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) (err error) {
	defer func() { h.observe("list", err) }()

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	invoices, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(invoices))
}

// Create stores the request body as a new invoice.
//
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      object  true  "Invoice document (any JSON value)"
// @Success      201   {object}  createInvoiceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) (err error) {
	defer func() { h.observe("create", err) }()

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	body, err := readPayload(c)
	if err != nil {
		return err
	}

	id, err := h.service.Create(c.Request().Context(), userID, body)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createInvoiceResponse{Success: true, ID: id})
}

// Get returns one of the caller's invoices.
//
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  getInvoiceResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) (err error) {
	defer func() { h.observe("get", err) }()

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	inv, err := h.service.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, getInvoiceResponse{Invoice: toInvoiceResponse(inv)})
}

// Update replaces the whole invoice document.
//
// @Summary      Replace an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Invoice ID"
// @Param        body  body      object  true  "New invoice document"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c echo.Context) (err error) {
	defer func() { h.observe("update", err) }()

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	body, err := readPayload(c)
	if err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), userID, c.Param("id"), body); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Delete removes one of the caller's invoices.
//
// @Summary      Delete an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c echo.Context) (err error) {
	defer func() { h.observe("delete", err) }()

	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}
