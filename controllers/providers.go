// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package controllers

import (
	"go.uber.org/fx"
)

// ControllerModule provides all HTTP controller constructors
var ControllerModule = fx.Options(
	// Design review
	fx.Provide(NewComplianceController),
	fx.Provide(NewVoiceToneController),

	// Brand rules
	fx.Provide(NewBrandController),
)
