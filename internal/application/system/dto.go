package system

import "time"

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// DetailedHealthResponse is the body of GET /api/health/detailed
type DetailedHealthResponse struct {
	HealthResponse
	Database     string            `json:"database"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	System       SystemInfo        `json:"system"`
}

type SystemInfo struct {
	GoVersion   string      `json:"go_version"`
	Platform    string      `json:"platform"`
	CPUCount    int         `json:"cpu_count"`
	MemoryUsage MemoryUsage `json:"memory_usage"`
	DiskUsage   DiskUsage   `json:"disk_usage"`
}

type MemoryUsage struct {
	Total     uint64  `json:"total"`
	Available uint64  `json:"available"`
	Percent   float64 `json:"percent"`
}

type DiskUsage struct {
	Total   uint64  `json:"total"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// MetricsResponse is the body of GET /api/metrics. Exactly one of Metrics
// and Error is set.
type MetricsResponse struct {
	Timestamp time.Time      `json:"timestamp"`
	Metrics   *EntityMetrics `json:"metrics,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type EntityMetrics struct {
	UsersCount    int64 `json:"users_count"`
	LeadsCount    int64 `json:"leads_count"`
	ContactsCount int64 `json:"contacts_count"`
	DealsCount    int64 `json:"deals_count"`
	ProductsCount int64 `json:"products_count"`
}
