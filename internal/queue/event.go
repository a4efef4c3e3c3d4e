// Package queue defines the messages the API publishes for the external
// ETL toolchain and the RabbitMQ plumbing that carries them.
package queue

// RefreshRequestedEvent is published when an admin triggers a catalog
// refresh. The scraping/ETL toolchain consumes it and re-runs extraction
// and price tracking for the requested scope.
type RefreshRequestedEvent struct {
	RequestedBy string `json:"requested_by"`
	Scope       string `json:"scope"` // "all", "sets", "minifigs" or "prices"
	RequestedAt string `json:"requested_at"`
}
