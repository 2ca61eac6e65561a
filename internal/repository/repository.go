package repository

import (
	"context"
	"database/sql"
	"io"
	"time"

	"solarac_dashboard/internal/models"
	"solarac_dashboard/internal/repository/gcp"
)

// Authorization stores dashboard operators.
type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.ActivityEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ActivityEvent, error)
}

// FileStore fetches raw export files by opaque identifier.
type FileStore interface {
	Download(ctx context.Context, fileID string) (io.ReadCloser, error)
}

// CommentSheet is the remote append-only comment log.
type CommentSheet interface {
	Rows(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, row []string) error
}

var (
	_ FileStore    = (*gcp.DriveStore)(nil)
	_ CommentSheet = (*gcp.SheetLog)(nil)
)

// SheetRef locates the comment worksheet.
type SheetRef struct {
	SpreadsheetID string
	SheetName     string
}

type Repository struct {
	Files     FileStore
	Comments  CommentSheet
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB, remote *gcp.Clients, sheet SheetRef) *Repository {
	return &Repository{
		Files:     gcp.NewDriveStore(remote.Drive),
		Comments:  gcp.NewSheetLog(remote.Sheets, sheet.SpreadsheetID, sheet.SheetName),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
