package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
)

// DriveStore downloads file contents from Google Drive.
type DriveStore struct {
	svc *drive.Service
}

func NewDriveStore(svc *drive.Service) *DriveStore { return &DriveStore{svc: svc} }

// Download streams the media of fileID. The caller closes the body.
func (s *DriveStore) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, errors.New("drive: empty file id")
	}
	resp, err := s.svc.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("drive download %q: %w", fileID, err)
	}
	return resp.Body, nil
}
