package models

import "time"

// MetricsSnapshot is a lightweight summary of process counters.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	StoreOperations          uint64    `json:"storeOperations"`
	StoreErrors              uint64    `json:"storeErrors"`
	AverageStoreDurationMs   float64   `json:"averageStoreDurationMs"`
	Recomputations           uint64    `json:"recomputations"`
	RecomputeJobsFailed      uint64    `json:"recomputeJobsFailed"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
