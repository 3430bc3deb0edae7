// Command api runs the invoice HTTP service.
//
// @title                       Invoice System API
// @version                     1.0
// @description                 Multi-tenant invoicing backend: registration, bearer-token sessions and per-user invoice storage.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/99minutos/invoice-system/internal/app"
	"github.com/99minutos/invoice-system/internal/infrastructure/config"
	"github.com/99minutos/invoice-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "invoice-api",
		Env:     cfg.Env,
	})

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialise application")
	}

	runErr := a.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Close(closeCtx); err != nil {
		log.Error().Err(err).Msg("close resources")
	}

	if runErr != nil {
		log.Error().Err(runErr).Msg("server stopped")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
