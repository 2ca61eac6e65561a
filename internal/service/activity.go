package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"solarac_dashboard/internal/logger"
	"solarac_dashboard/internal/models"
	"solarac_dashboard/internal/repository"
)

type ActivityService struct {
	eventRepo repository.EventRepo
}

func NewActivityService(eventRepo repository.EventRepo) *ActivityService {
	return &ActivityService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}
	return from, to, normalizeEventType(f.Type), nil
}

func (s *ActivityService) List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}

// activityRecorder appends to the activity log without failing the caller.
type activityRecorder struct {
	events repository.EventRepo
	log    *logger.Logger
}

func newActivityRecorder(events repository.EventRepo, log *logger.Logger) *activityRecorder {
	return &activityRecorder{events: events, log: log}
}

func (r *activityRecorder) record(ctx context.Context, ev models.ActivityEvent) {
	if r == nil || r.events == nil {
		return
	}
	if err := r.events.Append(ctx, ev); err != nil {
		r.log.Warnw("activity_append_failed", "err", err, "type", ev.Type)
	}
}
