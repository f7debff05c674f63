// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ComplianceCheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "brandhub_compliance_check_duration_seconds",
	Help:    "Duration of design image compliance checks in seconds",
	Buckets: []float64{1, 2.5, 5, 10, 20, 40, 80, 160},
})

var ComplianceCheckTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "brandhub_compliance_check_total",
	Help: "Total number of design image compliance checks by outcome",
}, []string{"outcome"})

var ComplianceToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "brandhub_compliance_tool_calls_total",
	Help: "Total number of tool calls requested by the model",
}, []string{"tool"})

var ComplianceOverallScore = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "brandhub_compliance_overall_score",
	Help:    "Overall compliance score of checked designs",
	Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
})

var BlobUploadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "brandhub_blob_upload_total",
	Help: "Total number of design uploads to the blob store by outcome",
}, []string{"outcome"})

var ImageFetchCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "brandhub_image_fetch_cache_lookups_total",
	Help: "Total number of image url cache lookups by result",
}, []string{"result"})
