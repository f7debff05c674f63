// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"github.com/boxer32/waykeeper-brand-hub/controllers"
	"github.com/labstack/echo/v4"
)

type BrandRouter struct {
	*echo.Group
}

func NewBrandRouter(
	apiRouter APIRouter,
	brandController *controllers.BrandController,
) BrandRouter {
	brandRouter := apiRouter.Group.Group("/brand")
	brandRouter.GET("/", brandController.Rules)
	// pure computations on the brand rules, no model involved
	brandRouter.POST("/contrast/", brandController.Contrast)
	brandRouter.POST("/nearest-color/", brandController.NearestColor)

	return BrandRouter{Group: brandRouter}
}
