// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import "go.uber.org/fx"

var RouterModule = fx.Options(
	fx.Provide(NewAPIRouter),
	fx.Provide(NewCheckRouter),
	fx.Provide(NewVoiceToneRouter),
	fx.Provide(NewBrandRouter),
)
