// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package middlewares

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func corsOrigins() []string {
	origins := shared.SplitList(os.Getenv("CORS_ORIGINS"))
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}

// UploadLimit caps the request body of upload routes at MAX_UPLOAD_MB plus
// one megabyte for the multipart envelope.
func UploadLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit(fmt.Sprintf("%dM", shared.GetEnvInt("MAX_UPLOAD_MB", 25)+1))
}

// errorBody turns the message of an HTTP error into the {error} shape the
// frontend reads.
func errorBody(message any) any {
	switch m := message.(type) {
	case string:
		return dtos.ErrorResponse{Error: m}
	case dtos.ErrorResponse, json.Marshaler:
		return m
	case error:
		return dtos.ErrorResponse{Error: m.Error()}
	}
	return dtos.ErrorResponse{Error: fmt.Sprint(message)}
}

func httpErrorHandler(err error, ctx echo.Context) {
	// do the logging straight inside the error handler
	// this keeps controller methods clean
	slog.Error(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL)

	if ctx.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		he = &echo.HTTPError{
			Code:    http.StatusInternalServerError,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}

	// Send response
	if ctx.Request().Method == http.MethodHead {
		if err := ctx.NoContent(he.Code); err != nil {
			slog.Error("could not send error response", "error", err)
		}
		return
	}
	if err := ctx.JSON(he.Code, errorBody(he.Message)); err != nil {
		slog.Error("could not send error response", "error", err)
	}
}

func registerMiddlewares(e *echo.Echo) {
	e.Pre(middleware.AddTrailingSlash())
	e.Use(middleware.CORSWithConfig(
		middleware.CORSConfig{
			AllowOrigins:     corsOrigins(),
			AllowHeaders:     middleware.DefaultCORSConfig.AllowHeaders,
			AllowMethods:     middleware.DefaultCORSConfig.AllowMethods,
			AllowCredentials: true,
		},
	))

	e.Use(otelecho.Middleware(shared.ServiceName))

	e.Use(logger())

	e.Use(recovermiddleware())

	e.HTTPErrorHandler = httpErrorHandler
}

func Server() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(99)
	registerMiddlewares(e)
	return e
}
