// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ModelRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "brandhub_model_request_duration_seconds",
	Help:    "Duration of requests to the AI provider in seconds",
	Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
}, []string{"provider", "outcome"})

var ModelRequestRetries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "brandhub_model_request_retries_total",
	Help: "Total number of retried requests to the AI provider",
}, []string{"provider"})

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func ObserveModelRequest(provider string, start time.Time, err error) {
	ModelRequestDuration.WithLabelValues(provider, outcome(err)).Observe(time.Since(start).Seconds())
}
