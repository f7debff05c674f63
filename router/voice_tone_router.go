// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"github.com/boxer32/waykeeper-brand-hub/controllers"
	"github.com/labstack/echo/v4"
)

type VoiceToneRouter struct {
	*echo.Group
}

func NewVoiceToneRouter(
	apiRouter APIRouter,
	voiceToneController *controllers.VoiceToneController,
) VoiceToneRouter {
	voiceToneRouter := apiRouter.Group.Group("/voice-tone")
	voiceToneRouter.POST("/", voiceToneController.Analyze)

	return VoiceToneRouter{Group: voiceToneRouter}
}
