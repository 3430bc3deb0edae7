// Package app wires configuration, storage, services and the HTTP router
// into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/99minutos/invoice-system/internal/api"
	"github.com/99minutos/invoice-system/internal/core/ports"
	"github.com/99minutos/invoice-system/internal/core/service"
	"github.com/99minutos/invoice-system/internal/i18n"
	"github.com/99minutos/invoice-system/internal/infrastructure/config"
	"github.com/99minutos/invoice-system/internal/infrastructure/db/memory"
	mongodb "github.com/99minutos/invoice-system/internal/infrastructure/db/mongo"
	"github.com/99minutos/invoice-system/internal/infrastructure/db/postgres"
	redisdb "github.com/99minutos/invoice-system/internal/infrastructure/db/redis"
	"github.com/99minutos/invoice-system/internal/infrastructure/hasher"
	httpserver "github.com/99minutos/invoice-system/internal/infrastructure/http"
	"github.com/99minutos/invoice-system/internal/infrastructure/http/handlers"
	"github.com/99minutos/invoice-system/internal/pkg/metrics"
	"github.com/99minutos/invoice-system/pkg/logger"
)

type App struct {
	cfg     *config.Config
	log     zerolog.Logger
	echo    *echo.Echo
	closers []func(context.Context) error
}

type repositories struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	invoices ports.InvoiceRepository
}

// New connects every backing service named by cfg and builds the router.
// Anything opened before a failure is closed again.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	if err := a.build(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context) error {
	repos, checks, err := a.openStore(ctx)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	if a.cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		repos.sessions = redisdb.NewSessionCache(repos.sessions, client, a.cfg.Redis.TTL, logger.Component(a.log, "session_cache"), m)
		checks = append(checks, handlers.Check{Name: "redis", Ping: redisdb.Pinger(client)})
		a.log.Info().Str("addr", a.cfg.Redis.Addr).Dur("ttl", a.cfg.Redis.TTL).Msg("session cache enabled")
	}

	h, err := hasher.New(a.cfg.Hasher.Name, a.cfg.Hasher.BcryptCost)
	if err != nil {
		return err
	}
	loc, err := i18n.New(a.cfg.DefaultLocale)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(repos.users, repos.sessions, h, logger.Component(a.log, "auth_service"))
	invoiceService := service.NewInvoiceService(repos.invoices, logger.Component(a.log, "invoice_service"))

	a.echo = api.NewRouter(api.Deps{
		AuthService:    authService,
		InvoiceService: invoiceService,
		Localizer:      loc,
		Log:            a.log,
		Registry:       reg,
		Metrics:        m,
		Checks:         checks,
		BodyLimit:      a.cfg.BodyLimit,
		SwaggerEnabled: a.cfg.SwaggerEnabled,
	})
	return nil
}

func (a *App) openStore(ctx context.Context) (repositories, []handlers.Check, error) {
	switch a.cfg.Store.Driver {
	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
		if err != nil {
			return repositories{}, nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return repositories{}, nil, err
		}
		a.log.Info().Str("database", a.cfg.Mongo.Database).Msg("mongo store ready")
		return repositories{
			users:    mongodb.NewUserRepository(db),
			sessions: mongodb.NewSessionRepository(db),
			invoices: mongodb.NewInvoiceRepository(db),
		}, []handlers.Check{{Name: "mongodb", Ping: mongodb.Pinger(client)}}, nil

	case config.StorePostgres:
		db, err := postgres.Open(ctx, a.cfg.Postgres.DSN)
		if err != nil {
			return repositories{}, nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })
		if err := postgres.Migrate(ctx, db); err != nil {
			return repositories{}, nil, err
		}
		a.log.Info().Msg("postgres store ready")
		return repositories{
			users:    postgres.NewUserRepository(db),
			sessions: postgres.NewSessionRepository(db),
			invoices: postgres.NewInvoiceRepository(db),
		}, []handlers.Check{{Name: "postgres", Ping: db.PingContext}}, nil

	case config.StoreMemory:
		store := memory.New()
		a.log.Warn().Msg("using in-memory store; data is lost on restart")
		return repositories{
			users:    store.Users(),
			sessions: store.Sessions(),
			invoices: store.Invoices(),
		}, []handlers.Check{{Name: "memory", Ping: store.Ping}}, nil

	default:
		return repositories{}, nil, fmt.Errorf("app: unknown store driver %q", a.cfg.Store.Driver)
	}
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.echo
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return httpserver.Serve(ctx, a.echo, a.cfg.Addr(), a.log)
}

// Close releases backing connections in reverse order of opening.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
