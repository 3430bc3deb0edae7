// Package api assembles the HTTP surface: middleware chain, routes and the
// central error handler.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/invoice-system/docs"
	"github.com/99minutos/invoice-system/internal/api/handler"
	"github.com/99minutos/invoice-system/internal/api/middleware"
	"github.com/99minutos/invoice-system/internal/core/ports"
	"github.com/99minutos/invoice-system/internal/i18n"
	"github.com/99minutos/invoice-system/internal/infrastructure/http/handlers"
	"github.com/99minutos/invoice-system/internal/pkg/metrics"
)

const defaultBodyLimit = "1M"

// Deps carries everything the router needs. Registry and Metrics are
// optional; without a Registry no /metrics endpoint is mounted.
type Deps struct {
	AuthService    ports.AuthService
	InvoiceService ports.InvoiceService
	Localizer      *i18n.Localizer
	Log            zerolog.Logger

	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Checks   []handlers.Check

	BodyLimit      string
	SwaggerEnabled bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Localizer)

	bodyLimit := d.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	// --- Pre-routing: CORS headers and preflight on every path ---
	e.Pre(middleware.CORS())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	if d.Registry != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "invoice_http",
			Registerer: d.Registry,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: d.Registry,
		}))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.Metrics)
	invoiceHandler := handler.NewInvoiceHandler(d.InvoiceService, d.Metrics)
	authMiddleware := middleware.Auth(d.AuthService)

	// --- Auth routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)

	// --- Invoice routes (bearer token required) ---
	// Per-route Auth keeps unmatched methods on the router's 405.
	e.GET("/api/invoices", invoiceHandler.List, authMiddleware)
	e.POST("/api/invoices", invoiceHandler.Create, authMiddleware)
	e.GET("/api/invoices/:id", invoiceHandler.Get, authMiddleware)
	e.PUT("/api/invoices/:id", invoiceHandler.Update, authMiddleware)
	e.DELETE("/api/invoices/:id", invoiceHandler.Delete, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	if d.SwaggerEnabled {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}
