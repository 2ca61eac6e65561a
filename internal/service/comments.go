package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"solarac_dashboard/internal/dataset"
	"solarac_dashboard/internal/logger"
	"solarac_dashboard/internal/metrics"
	"solarac_dashboard/internal/models"
	"solarac_dashboard/internal/repository"
)

// CommentService adapts the remote comment sheet. Reads degrade to an empty log on
// transport failure; appends are best effort and report failure to the caller.
type CommentService struct {
	sheet    repository.CommentSheet
	activity *activityRecorder
	log      *logger.Logger
	now      func() time.Time
}

func NewCommentService(sheet repository.CommentSheet, events repository.EventRepo, log *logger.Logger) *CommentService {
	if log == nil {
		log = logger.Nop()
	}
	return &CommentService{
		sheet:    sheet,
		activity: newActivityRecorder(events, log),
		log:      log,
		now:      time.Now,
	}
}

// Load returns every comment in sheet order.
func (s *CommentService) Load(ctx context.Context) []models.Comment {
	rows, err := s.sheet.Rows(ctx)
	if err != nil {
		terr := &CommentTransportError{Op: metrics.OpLoad, Err: err}
		s.log.Warnw("comment_load_failed", "err", terr)
		metrics.ObserveCommentOp(metrics.OpLoad, metrics.ResultError)
		return []models.Comment{}
	}
	metrics.ObserveCommentOp(metrics.OpLoad, metrics.ResultOK)
	return commentsFromRows(rows, s.log)
}

// commentsFromRows maps sheet rows onto comments. Missing columns become absent values.
func commentsFromRows(rows [][]string, log *logger.Logger) []models.Comment {
	t := dataset.FromValues(rows)
	if len(t.Rows) == 0 {
		return []models.Comment{}
	}

	idx := make(map[string]int, len(models.CommentColumns))
	for _, col := range models.CommentColumns {
		if i, ok := t.Column(col); ok {
			idx[col] = i
		} else {
			log.Warnw("comment_column_missing", "column", col)
		}
	}
	cell := func(row []string, col string) *string {
		i, ok := idx[col]
		if !ok {
			return nil
		}
		return dataset.Cell(row[i])
	}

	out := make([]models.Comment, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, models.Comment{
			Topic:     cell(row, models.CommentColTopic),
			Timestamp: cell(row, models.CommentColTimestamp),
			Comment:   cell(row, models.CommentColComment),
		})
	}
	return out
}

// Add appends (topic, now, trimmed text). Blank text is rejected before any I/O.
func (s *CommentService) Add(ctx context.Context, userID int, topic, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyComment
	}
	ts := s.now().Local().Format(models.CommentTimeLayout)

	if err := s.sheet.Append(ctx, []string{topic, ts, text}); err != nil {
		terr := &CommentTransportError{Op: metrics.OpAppend, Err: err}
		s.log.Errorw("comment_append_failed", "err", terr, "topic", topic, "user_id", userID)
		metrics.ObserveCommentOp(metrics.OpAppend, metrics.ResultError)
		s.activity.record(ctx, models.ActivityEvent{
			Type:        models.EventCommentFailed,
			UserID:      userID,
			Description: "Comment append failed for " + topic,
			Metadata:    map[string]any{"topic": topic, "error": err.Error()},
		})
		return terr
	}

	s.log.Infow("comment_added", "topic", topic, "user_id", userID)
	metrics.ObserveCommentOp(metrics.OpAppend, metrics.ResultOK)
	s.activity.record(ctx, models.ActivityEvent{
		Type:        models.EventCommentAdded,
		UserID:      userID,
		Description: "Comment added for " + topic,
		Metadata:    map[string]any{"topic": topic, "timestamp": ts},
	})
	return nil
}

// History returns the comments of one device, newest first.
func (s *CommentService) History(ctx context.Context, topic string) []models.Comment {
	return HistoryFor(s.Load(ctx), topic)
}

// Latest returns the most recent comment per device.
func (s *CommentService) Latest(ctx context.Context) map[string]models.Comment {
	return LatestByTopic(s.Load(ctx))
}

// HistoryFor filters comments to topic and sorts them newest first. Comments whose
// timestamp cannot be parsed sort last, in sheet order.
func HistoryFor(comments []models.Comment, topic string) []models.Comment {
	out := make([]models.Comment, 0, 8)
	for _, c := range comments {
		if c.TopicIs(topic) {
			out = append(out, c)
		}
	}
	sortNewestFirst(out)
	return out
}

// LatestByTopic keeps the newest comment of each device. On equal timestamps the
// earlier sheet row wins.
func LatestByTopic(comments []models.Comment) map[string]models.Comment {
	sorted := append([]models.Comment(nil), comments...)
	sortNewestFirst(sorted)

	out := make(map[string]models.Comment)
	for _, c := range sorted {
		if c.Topic == nil {
			continue
		}
		if _, ok := out[*c.Topic]; !ok {
			out[*c.Topic] = c
		}
	}
	return out
}

func sortNewestFirst(cs []models.Comment) {
	sort.SliceStable(cs, func(i, j int) bool {
		ti, okI := cs[i].Time()
		tj, okJ := cs[j].Time()
		if okI != okJ {
			return okI
		}
		return ti.After(tj)
	})
}
