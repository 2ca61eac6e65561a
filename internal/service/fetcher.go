package service

import (
	"context"
	"errors"
	"strings"

	"solarac_dashboard/internal/dataset"
	"solarac_dashboard/internal/repository"
)

var errEmptyFileID = errors.New("empty file identifier")

// FetcherService downloads an export and decodes it into a table.
type FetcherService struct {
	files repository.FileStore
}

func NewFetcherService(files repository.FileStore) *FetcherService {
	return &FetcherService{files: files}
}

// Fetch returns the fully materialized dataset for fileID. Every failure is a
// *RetrievalError; nothing is retried.
func (s *FetcherService) Fetch(ctx context.Context, fileID string) (dataset.Table, error) {
	if strings.TrimSpace(fileID) == "" {
		return dataset.Table{}, &RetrievalError{FileID: fileID, Err: errEmptyFileID}
	}
	body, err := s.files.Download(ctx, fileID)
	if err != nil {
		return dataset.Table{}, &RetrievalError{FileID: fileID, Err: err}
	}
	defer func() { _ = body.Close() }()

	t, err := dataset.ReadCSV(body)
	if err != nil {
		return dataset.Table{}, &RetrievalError{FileID: fileID, Err: err}
	}
	return t, nil
}
