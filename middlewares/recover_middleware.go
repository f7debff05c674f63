// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package middlewares

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/boxer32/waykeeper-brand-hub/monitoring"
	"github.com/labstack/echo/v4"
)

func recovermiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) (returnErr error) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}

					stack := make([]byte, 4<<10) // 4 KB
					length := runtime.Stack(stack, false)

					monitoring.RecoverAndAlert(fmt.Sprintf("panic in %s %s\n%s", ctx.Request().Method, ctx.Path(), stack[:length]), err)
					returnErr = echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").WithInternal(err)
				}
			}()
			return next(ctx)
		}
	}
}
