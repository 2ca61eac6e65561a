package service

import (
	"time"

	"solarac_dashboard/internal/models"
)

// LogFilter supports activity history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "REFRESH", "REFRESH_FAILED", "COMMENT_ADDED", "COMMENT_FAILED", "SIGN_IN"
}

// Sources names the two remote exports a refresh reads.
type Sources struct {
	RawFileID    string
	LatestFileID string
}

// RefreshResult summarizes a successful refresh.
type RefreshResult struct {
	Devices     int           `json:"devices"`
	RefreshedAt time.Time     `json:"refreshed_at"`
	Duration    time.Duration `json:"-"`
}

// View is what the dashboard shows for a device selection.
type View struct {
	Topic       string           `json:"topic"`
	RefreshedAt time.Time        `json:"refreshed_at"`
	Table       models.Table     `json:"table"`
	Comments    []models.Comment `json:"comments,omitempty"` // only for a specific device, newest first
}
