package models

import "time"

// Readings holds the seven telemetry fields that are averaged per device.
// A nil pointer means the value is absent.
type Readings struct {
	PVkWh               *float64
	OPkWh               *float64
	ACOnDurationH       *float64
	ACRoomTempAvg       *float64
	AvgDeltaTemp        *float64
	TransitionsToLevel0 *float64
	NonACLoadAvgW       *float64
}

// RawRecord is one row of the daily time series export.
type RawRecord struct {
	Topic    string
	Date     time.Time // zero when the date cell was empty
	Readings Readings
}

// StatusRecord is one row of the latest status export. Values are kept as exported.
type StatusRecord struct {
	Topic    string
	BattVMin *string
	BattV    *string
	BattType *string
	MaxChgI  *string
}

// WeeklySummary is the trailing 7-day mean of a device's readings.
type WeeklySummary struct {
	Topic      string
	LatestDate time.Time
	Averages   Readings // rounded to integers
}
