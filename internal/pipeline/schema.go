package pipeline

import "solarac_dashboard/internal/models"

// Dataset names used in errors.
const (
	DatasetRaw    = "raw"
	DatasetLatest = "latest"
)

// Source column names.
const (
	colTopic               = "Topic"
	colTimestamp           = "timestamp"
	colPVkWh               = "PV_kWh"
	colOPkWh               = "OP_kWh"
	colBattVMin            = "BATT_V_min"
	colACOnDuration        = "ac_on_duration_h"
	colACRoomTempAvg       = "AC_ROOM_TEMP_avg"
	colAvgDeltaT           = "avg_ΔT"
	colAvgDeltaTMangled    = "avg_?T"
	colTransitionsToLevel0 = "unfiltered_transitions_to_level_0"
	colNonACLoadAvgW       = "non_acload_avg_W"
	colBattV               = "BATT_V"
	colBattType            = "BATT_TYPE"
	colMaxChgI             = "MAX_CHG_I"
	colLatestDate          = "latest_date"
)

const (
	dateLayout       = "2-1-2006" // day and month may be unpadded
	outputDateLayout = "2006-01-02"
	windowDays       = 7
)

// SummaryRenames maps weekly summary source names to display names.
var SummaryRenames = map[string]string{
	colACRoomTempAvg:       models.ColACRTempAvg,
	colLatestDate:          models.ColTimestamp,
	colAvgDeltaT:           models.ColAvgDeltaTemp,
	colTransitionsToLevel0: models.ColTrips,
}

// StatusRenames maps latest status source names to display names.
var StatusRenames = map[string]string{
	colBattVMin: models.ColBVMin,
	colBattV:    models.ColBV,
	colBattType: models.ColBType,
}

// displayName applies a rename map once; unmapped names pass through.
func displayName(renames map[string]string, source string) string {
	if d, ok := renames[source]; ok {
		return d
	}
	return source
}

// readingField binds an averaged source column to its Readings slot.
type readingField struct {
	source  string
	aliases []string
	ref     func(*models.Readings) **float64
}

func (f readingField) display() string { return displayName(SummaryRenames, f.source) }

var readingFields = []readingField{
	{source: colPVkWh, ref: func(r *models.Readings) **float64 { return &r.PVkWh }},
	{source: colOPkWh, ref: func(r *models.Readings) **float64 { return &r.OPkWh }},
	{source: colACOnDuration, ref: func(r *models.Readings) **float64 { return &r.ACOnDurationH }},
	{source: colACRoomTempAvg, ref: func(r *models.Readings) **float64 { return &r.ACRoomTempAvg }},
	{source: colAvgDeltaT, aliases: []string{colAvgDeltaTMangled}, ref: func(r *models.Readings) **float64 { return &r.AvgDeltaTemp }},
	{source: colTransitionsToLevel0, ref: func(r *models.Readings) **float64 { return &r.TransitionsToLevel0 }},
	{source: colNonACLoadAvgW, ref: func(r *models.Readings) **float64 { return &r.NonACLoadAvgW }},
}

// statusField binds a latest status source column to its StatusRecord slot.
type statusField struct {
	source string
	ref    func(*models.StatusRecord) **string
}

func (f statusField) display() string { return displayName(StatusRenames, f.source) }

var statusFields = []statusField{
	{source: colBattVMin, ref: func(s *models.StatusRecord) **string { return &s.BattVMin }},
	{source: colBattV, ref: func(s *models.StatusRecord) **string { return &s.BattV }},
	{source: colBattType, ref: func(s *models.StatusRecord) **string { return &s.BattType }},
	{source: colMaxChgI, ref: func(s *models.StatusRecord) **string { return &s.MaxChgI }},
}
