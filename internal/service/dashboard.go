package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"solarac_dashboard/internal/logger"
	"solarac_dashboard/internal/metrics"
	"solarac_dashboard/internal/models"
	"solarac_dashboard/internal/pipeline"
	"solarac_dashboard/internal/repository"
)

// DashboardService drives the per-session state machine: refresh, select, view.
type DashboardService struct {
	fetcher  Fetcher
	comments Comments
	sessions *SessionStore
	activity *activityRecorder
	sources  Sources
	log      *logger.Logger
	now      func() time.Time
}

func NewDashboardService(fetcher Fetcher, comments Comments, sessions *SessionStore, events repository.EventRepo, sources Sources, log *logger.Logger) *DashboardService {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardService{
		fetcher:  fetcher,
		comments: comments,
		sessions: sessions,
		activity: newActivityRecorder(events, log),
		sources:  sources,
		log:      log,
		now:      time.Now,
	}
}

// Refresh fetches both exports and recomputes the result. On failure the session keeps
// whatever it showed before.
func (s *DashboardService) Refresh(ctx context.Context, userID int) (RefreshResult, error) {
	sess := s.sessions.Get(userID)
	sess.refreshMu.Lock()
	defer sess.refreshMu.Unlock()

	start := s.now()
	rs, err := s.load(ctx)
	elapsed := s.now().Sub(start)
	if err != nil {
		metrics.ObserveRefresh(metrics.ResultError, elapsed)
		s.log.Errorw("refresh_failed", "err", err, "user_id", userID, "elapsed", elapsed)
		s.activity.record(ctx, models.ActivityEvent{
			Type:        models.EventRefreshFailed,
			UserID:      userID,
			Description: "Refresh failed",
			Metadata:    map[string]any{"error": err.Error()},
		})
		return RefreshResult{}, err
	}

	at := s.now().UTC()
	sess.replace(rs, at)
	metrics.ObserveRefresh(metrics.ResultOK, elapsed)
	s.log.Infow("refresh_done", "user_id", userID, "devices", len(rs.Rows), "elapsed", elapsed)
	s.activity.record(ctx, models.ActivityEvent{
		Type:        models.EventRefresh,
		UserID:      userID,
		Description: fmt.Sprintf("Refreshed %d devices", len(rs.Rows)),
		Metadata:    map[string]any{"devices": len(rs.Rows), "elapsed_ms": elapsed.Milliseconds()},
	})
	return RefreshResult{Devices: len(rs.Rows), RefreshedAt: at, Duration: elapsed}, nil
}

func (s *DashboardService) load(ctx context.Context) (models.ResultSet, error) {
	raw, err := s.fetcher.Fetch(ctx, s.sources.RawFileID)
	if err != nil {
		return models.ResultSet{}, err
	}
	latest, err := s.fetcher.Fetch(ctx, s.sources.LatestFileID)
	if err != nil {
		return models.ResultSet{}, err
	}
	return pipeline.Process(raw, latest)
}

// Topics returns the selector options: All followed by the sorted device ids.
func (s *DashboardService) Topics(userID int) ([]string, error) {
	rs, _, ok := s.sessions.Get(userID).Snapshot()
	if !ok {
		return nil, ErrNotLoaded
	}
	return append([]string{models.AllTopics}, rs.Topics()...), nil
}

// View renders the current result for a selection. All adds the latest comment per
// device after Topic; a specific device adds its full comment history.
func (s *DashboardService) View(ctx context.Context, userID int, topic string) (View, error) {
	rs, at, ok := s.sessions.Get(userID).Snapshot()
	if !ok {
		return View{}, ErrNotLoaded
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = models.AllTopics
	}

	if topic == models.AllTopics {
		return View{
			Topic:       topic,
			RefreshedAt: at,
			Table:       rs.TableWithComments(s.comments.Latest(ctx)),
		}, nil
	}

	filtered := rs.Filter(topic)
	if len(filtered.Rows) == 0 {
		return View{}, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	return View{
		Topic:       topic,
		RefreshedAt: at,
		Table:       filtered.Table(),
		Comments:    s.comments.History(ctx, topic),
	}, nil
}

// State reports the session state of a user.
func (s *DashboardService) State(userID int) string {
	return s.sessions.Get(userID).State()
}
