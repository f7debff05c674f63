// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"os"
	"runtime"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/config"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIRouter struct {
	*echo.Group
}

func buildInfo(cfg brand.Config, model shared.ChatModel) InfoResponse {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	resp := InfoResponse{
		Build: BuildInfo{
			Version:   config.Version,
			Commit:    config.Commit,
			Branch:    config.Branch,
			BuildDate: config.BuildDate,
		},
		Runtime: RuntimeInfo{
			GoVersion:     runtime.Version(),
			NumGoroutines: runtime.NumGoroutine(),
			Mem: MemStats{
				Alloc:      mem.Alloc,
				TotalAlloc: mem.TotalAlloc,
				Sys:        mem.Sys,
				HeapAlloc:  mem.HeapAlloc,
			},
		},
		Process: ProcessInfo{
			PID:           os.Getpid(),
			UptimeSeconds: int(time.Since(config.StartedAt).Seconds()),
		},
		Brand: BrandInfo{
			Name:      cfg.Name,
			ChatModel: model.Name(),
			Colors:    len(cfg.Palette),
		},
	}

	host, _ := os.Hostname()
	if host != "" {
		resp.Process.Hostname = host
	}
	return resp
}

func NewAPIRouter(server *echo.Echo, cfg brand.Config, model shared.ChatModel) APIRouter {
	apiRouter := server.Group("/api")

	apiRouter.GET("/info/", func(ctx echo.Context) error {
		return ctx.JSON(200, buildInfo(cfg, model))
	})
	apiRouter.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))
	apiRouter.GET("/health/", func(ctx echo.Context) error {
		return ctx.JSON(200, map[string]string{
			"status": "healthy",
		})
	})

	return APIRouter{Group: apiRouter}
}
