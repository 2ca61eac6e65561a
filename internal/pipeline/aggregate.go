// Package pipeline turns the raw daily export and the latest status export into the
// per-device weekly summary table shown on the dashboard.
//
// Means are rounded half to even, so 2.5 becomes 2 and 3.5 becomes 4.
package pipeline

import (
	"math"
	"time"

	"solarac_dashboard/internal/dataset"
	"solarac_dashboard/internal/models"
)

// Process runs the whole pipeline. It is a pure function of its inputs.
func Process(raw, latest dataset.Table) (models.ResultSet, error) {
	records, err := ProjectRaw(raw)
	if err != nil {
		return models.ResultSet{}, err
	}
	statuses, err := ProjectLatest(latest)
	if err != nil {
		return models.ResultSet{}, err
	}
	return Join(statuses, Summarize(records)), nil
}

// LatestDates returns the most recent dated row per device.
func LatestDates(records []models.RawRecord) map[string]time.Time {
	latest := make(map[string]time.Time)
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		if cur, ok := latest[r.Topic]; !ok || r.Date.After(cur) {
			latest[r.Topic] = r.Date
		}
	}
	return latest
}

// WindowStart is the first day of the inclusive 7-day window ending at latest.
func WindowStart(latest time.Time) time.Time {
	return latest.AddDate(0, 0, -(windowDays - 1))
}

// InWindow reports whether d falls in the window ending at latest.
func InWindow(d, latest time.Time) bool {
	return !d.Before(WindowStart(latest)) && !d.After(latest)
}

type accumulator struct {
	sums   []float64
	counts []int
}

func newAccumulator() *accumulator {
	return &accumulator{sums: make([]float64, len(readingFields)), counts: make([]int, len(readingFields))}
}

func (a *accumulator) add(r models.Readings) {
	for i, f := range readingFields {
		if v := *f.ref(&r); v != nil {
			a.sums[i] += *v
			a.counts[i]++
		}
	}
}

func (a *accumulator) averages() models.Readings {
	var out models.Readings
	for i, f := range readingFields {
		if a.counts[i] == 0 {
			continue
		}
		v := roundMean(a.sums[i] / float64(a.counts[i]))
		*f.ref(&out) = &v
	}
	return out
}

// roundMean rounds half to even and normalizes negative zero.
func roundMean(v float64) float64 {
	r := math.RoundToEven(v)
	if r == 0 {
		return 0
	}
	return r
}

// Summarize computes each device's trailing 7-day mean readings.
// Devices with no dated rows have no summary.
func Summarize(records []models.RawRecord) map[string]models.WeeklySummary {
	latest := LatestDates(records)
	accs := make(map[string]*accumulator, len(latest))
	for _, r := range records {
		end, ok := latest[r.Topic]
		if !ok || r.Date.IsZero() || !InWindow(r.Date, end) {
			continue
		}
		acc, ok := accs[r.Topic]
		if !ok {
			acc = newAccumulator()
			accs[r.Topic] = acc
		}
		acc.add(r.Readings)
	}

	out := make(map[string]models.WeeklySummary, len(accs))
	for topic, acc := range accs {
		out[topic] = models.WeeklySummary{
			Topic:      topic,
			LatestDate: latest[topic],
			Averages:   acc.averages(),
		}
	}
	return out
}

// Join left-joins statuses with summaries on Topic, keeping status order, and drops
// rows where everything but Topic is absent.
func Join(statuses []models.StatusRecord, summaries map[string]models.WeeklySummary) models.ResultSet {
	rs := models.ResultSet{Rows: make([]models.ResultRow, 0, len(statuses))}
	for _, st := range statuses {
		row := models.ResultRow{
			Topic:   st.Topic,
			BVMin:   st.BattVMin,
			BV:      st.BattV,
			BType:   st.BattType,
			MaxChgI: st.MaxChgI,
		}
		if sum, ok := summaries[st.Topic]; ok {
			a := sum.Averages
			row.PVkWh = a.PVkWh
			row.OPkWh = a.OPkWh
			row.ACOnDurationH = a.ACOnDurationH
			row.ACRTempAvg = a.ACRoomTempAvg
			row.AvgDeltaTemp = a.AvgDeltaTemp
			row.Trips = a.TransitionsToLevel0
			row.NonACLoadAvgW = a.NonACLoadAvgW
			ts := sum.LatestDate.Format(outputDateLayout)
			row.Timestamp = &ts
		}
		if row.Empty() {
			continue
		}
		rs.Rows = append(rs.Rows, row)
	}
	return rs
}
