// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import "time"

// Build information - set via ldflags during build
// e.g. -ldflags "-X github.com/boxer32/waykeeper-brand-hub/config.Version=v1.2.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	Branch    = "unknown"
	BuildDate = "unknown"
)

// StartedAt is the process start, used for the uptime in the info endpoint.
var StartedAt = time.Now()
