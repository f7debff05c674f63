// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

// InfoResponse is the typed response returned by the /api/info/ endpoint.
// It is structured for readable inspection by humans and machines.
type InfoResponse struct {
	Build   BuildInfo   `json:"build"`
	Process ProcessInfo `json:"process"`
	Runtime RuntimeInfo `json:"runtime"`
	Brand   BrandInfo   `json:"brand"`
}

// BuildInfo holds compiled build metadata
type BuildInfo struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Branch    string `json:"branch,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
}

// ProcessInfo holds process-level diagnostics
type ProcessInfo struct {
	PID           int    `json:"pid"`
	Hostname      string `json:"hostname,omitempty"`
	UptimeSeconds int    `json:"uptimeSeconds"`
}

// RuntimeInfo aggregates Go runtime diagnostics
type RuntimeInfo struct {
	GoVersion     string   `json:"goVersion,omitempty"`
	NumGoroutines int      `json:"numGoroutines,omitempty"`
	Mem           MemStats `json:"mem,omitempty"`
}

// MemStats focuses on a small, relevant subset of runtime.MemStats
type MemStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	HeapAlloc  uint64 `json:"heapAlloc"`
}

// BrandInfo names the brand rules and the model the checks run against.
type BrandInfo struct {
	Name      string `json:"name"`
	ChatModel string `json:"chatModel"`
	Colors    int    `json:"colors"`
}
