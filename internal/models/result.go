package models

import (
	"sort"
	"strconv"
)

// Display column names.
const (
	ColTopic         = "Topic"
	ColComment       = "Comment"
	ColBVMin         = "B_V_min"
	ColBV            = "B_V"
	ColBType         = "B_TYPE"
	ColMaxChgI       = "MAX_CHG_I"
	ColPVkWh         = "PV_kWh"
	ColOPkWh         = "OP_kWh"
	ColACOnDuration  = "ac_on_duration_h"
	ColACRTempAvg    = "AC_RTEMP_avg"
	ColAvgDeltaTemp  = "avg_delta_temp"
	ColTrips         = "Trips"
	ColNonACLoadAvgW = "non_acload_avg_W"
	ColTimestamp     = "timestamp"

	// AllTopics is the selector value that shows every device.
	AllTopics = "All"
)

// ResultColumns is the display order of a ResultRow.
var ResultColumns = []string{
	ColTopic,
	ColBVMin, ColBV, ColBType, ColMaxChgI,
	ColPVkWh, ColOPkWh, ColACOnDuration, ColACRTempAvg, ColAvgDeltaTemp, ColTrips, ColNonACLoadAvgW, ColTimestamp,
}

// ResultRow is a latest-status row joined with the device's weekly summary.
type ResultRow struct {
	Topic   string  `json:"Topic"`
	BVMin   *string `json:"B_V_min"`
	BV      *string `json:"B_V"`
	BType   *string `json:"B_TYPE"`
	MaxChgI *string `json:"MAX_CHG_I"`

	PVkWh         *float64 `json:"PV_kWh"`
	OPkWh         *float64 `json:"OP_kWh"`
	ACOnDurationH *float64 `json:"ac_on_duration_h"`
	ACRTempAvg    *float64 `json:"AC_RTEMP_avg"`
	AvgDeltaTemp  *float64 `json:"avg_delta_temp"`
	Trips         *float64 `json:"Trips"`
	NonACLoadAvgW *float64 `json:"non_acload_avg_W"`
	Timestamp     *string  `json:"timestamp"`
}

// Empty reports whether every field except Topic is absent.
func (r ResultRow) Empty() bool {
	for _, c := range r.cells() {
		if c != nil {
			return false
		}
	}
	return true
}

// cells returns the non-Topic values in display order; nil means absent.
func (r ResultRow) cells() []*string {
	return []*string{
		r.BVMin, r.BV, r.BType, r.MaxChgI,
		formatNumber(r.PVkWh),
		formatNumber(r.OPkWh),
		formatNumber(r.ACOnDurationH),
		formatNumber(r.ACRTempAvg),
		formatNumber(r.AvgDeltaTemp),
		formatNumber(r.Trips),
		formatNumber(r.NonACLoadAvgW),
		r.Timestamp,
	}
}

func formatNumber(v *float64) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	return &s
}

// ResultSet is the output of one refresh, in latest-status input order.
type ResultSet struct {
	Rows []ResultRow `json:"rows"`
}

// Topics returns the distinct device ids, sorted.
func (rs ResultSet) Topics() []string {
	seen := make(map[string]struct{}, len(rs.Rows))
	out := make([]string, 0, len(rs.Rows))
	for _, r := range rs.Rows {
		if _, ok := seen[r.Topic]; ok {
			continue
		}
		seen[r.Topic] = struct{}{}
		out = append(out, r.Topic)
	}
	sort.Strings(out)
	return out
}

// Filter returns the rows of one device, or every row for AllTopics.
func (rs ResultSet) Filter(topic string) ResultSet {
	if topic == AllTopics {
		return rs
	}
	var out ResultSet
	for _, r := range rs.Rows {
		if r.Topic == topic {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Table is a display-ready grid. Nil cells are absent values.
type Table struct {
	Columns []string    `json:"columns"`
	Rows    [][]*string `json:"rows"`
}

// Table renders the set without a comment column.
func (rs ResultSet) Table() Table {
	t := Table{Columns: append([]string(nil), ResultColumns...), Rows: make([][]*string, 0, len(rs.Rows))}
	for _, r := range rs.Rows {
		topic := r.Topic
		t.Rows = append(t.Rows, append([]*string{&topic}, r.cells()...))
	}
	return t
}

// TableWithComments renders the set with a Comment column right after Topic,
// filled from latest (keyed by topic).
func (rs ResultSet) TableWithComments(latest map[string]Comment) Table {
	cols := make([]string, 0, len(ResultColumns)+1)
	cols = append(cols, ColTopic, ColComment)
	cols = append(cols, ResultColumns[1:]...)

	t := Table{Columns: cols, Rows: make([][]*string, 0, len(rs.Rows))}
	for _, r := range rs.Rows {
		topic := r.Topic
		var comment *string
		if c, ok := latest[r.Topic]; ok && c.Comment != nil {
			text := *c.Comment
			comment = &text
		}
		row := append([]*string{&topic, comment}, r.cells()...)
		t.Rows = append(t.Rows, row)
	}
	return t
}
