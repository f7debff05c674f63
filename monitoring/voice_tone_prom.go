// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var VoiceToneDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "brandhub_voice_tone_duration_seconds",
	Help:    "Duration of voice tone analyses in seconds",
	Buckets: []float64{1, 2.5, 5, 10, 20, 40},
})

var VoiceToneTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "brandhub_voice_tone_total",
	Help: "Total number of voice tone analyses by outcome",
}, []string{"outcome"})

var VoiceTonePollAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "brandhub_voice_tone_poll_attempts",
	Help:    "Number of run status polls until an assistant run finished",
	Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 30},
})
