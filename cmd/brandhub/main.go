// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/config"
	"github.com/boxer32/waykeeper-brand-hub/controllers"
	"github.com/boxer32/waykeeper-brand-hub/integrations"
	"github.com/boxer32/waykeeper-brand-hub/middlewares"
	"github.com/boxer32/waykeeper-brand-hub/router"
	"github.com/boxer32/waykeeper-brand-hub/services"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

//	@title			Waykeeper Brand Hub API
//	@version		v1
//	@description	Brand compliance checks for design images and voice/tone analysis for copy

//	@license.name	AGPL-3

// @host		localhost:8080
// @BasePath	/api
func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	fx.New(
		fx.Provide(newServer),
		integrations.Module,
		services.Module,
		controllers.ControllerModule,
		router.RouterModule,

		fx.Invoke(initTracing),
		// we need to invoke all routers to register their routes
		fx.Invoke(func(CheckRouter router.CheckRouter) {}),
		fx.Invoke(func(VoiceToneRouter router.VoiceToneRouter) {}),
		fx.Invoke(func(BrandRouter router.BrandRouter) {}),
		fx.Invoke(func(server *echo.Echo) {}),
	).Run()
}

func newServer(lc fx.Lifecycle) *echo.Echo {
	server := middlewares.Server()
	addr := ":" + shared.GetEnvOrDefault("PORT", "8080")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				slog.Info("starting server", "addr", addr, "version", config.Version)
				if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("server stopped", "err", err)
					os.Exit(1)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
	return server
}

func initTracing(lc fx.Lifecycle) error {
	shutdown, err := shared.InitTracing(context.Background(), os.Getenv("OTEL_EXPORTER"))
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{OnStop: shutdown})
	return nil
}

func initSentry() {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         os.Getenv("ERROR_TRACKING_DSN"),
		Environment: environment,
		Release:     config.Version,

		// In debug mode, the debug information is printed to stdout
		Debug: environment == "dev",

		AttachStacktrace: true,

		// design images and copy text can contain personal data
		SendDefaultPII: false,
	})
	if err != nil {
		slog.Error("Failed to init error tracking", "err", err)
	}
}
