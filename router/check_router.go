// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"github.com/boxer32/waykeeper-brand-hub/controllers"
	"github.com/boxer32/waykeeper-brand-hub/middlewares"
	"github.com/labstack/echo/v4"
)

type CheckRouter struct {
	*echo.Group
}

func NewCheckRouter(
	apiRouter APIRouter,
	complianceController *controllers.ComplianceController,
) CheckRouter {
	checkRouter := apiRouter.Group.Group("/check")
	checkRouter.POST("/design-image/", complianceController.CheckDesignImage, middlewares.UploadLimit())

	return CheckRouter{Group: checkRouter}
}
