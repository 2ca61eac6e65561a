package service

import (
	"context"

	"solarac_dashboard/internal/dataset"
	"solarac_dashboard/internal/logger"
	"solarac_dashboard/internal/models"
	"solarac_dashboard/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Fetcher downloads one remote export as a table.
type Fetcher interface {
	Fetch(ctx context.Context, fileID string) (dataset.Table, error)
}

// Dashboard exposes the per-user refresh and view operations.
type Dashboard interface {
	Refresh(ctx context.Context, userID int) (RefreshResult, error)
	View(ctx context.Context, userID int, topic string) (View, error)
	Topics(userID int) ([]string, error)
}

// Comments exposes the remote comment log.
type Comments interface {
	Load(ctx context.Context) []models.Comment
	Add(ctx context.Context, userID int, topic, text string) error
	History(ctx context.Context, topic string) []models.Comment
	Latest(ctx context.Context) map[string]models.Comment
}

// Activity exposes the local audit log with filtering access.
type Activity interface {
	List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error)
}

type Service struct {
	Dashboard
	Comments
	Activity
	Authorization
}

// Options carries the settings services need beyond their repositories.
type Options struct {
	Sources Sources
	Auth    AuthConfig
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	comments := NewCommentService(repos.Comments, repos.EventRepo, log.With("component", "comments"))
	fetcher := NewFetcherService(repos.Files)
	return &Service{
		Dashboard:     NewDashboardService(fetcher, comments, NewSessionStore(), repos.EventRepo, opts.Sources, log.With("component", "dashboard")),
		Comments:      comments,
		Activity:      NewActivityService(repos.EventRepo),
		Authorization: NewAuthService(repos.Auth, repos.EventRepo, opts.Auth, log.With("component", "auth")),
	}
}
