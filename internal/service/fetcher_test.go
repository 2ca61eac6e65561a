package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
)

// fakeFileStore serves payloads by file id.
type fakeFileStore struct {
	payloads map[string]string
	err      error
	calls    []string
}

func (f *fakeFileStore) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	f.calls = append(f.calls, fileID)
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.payloads[fileID]
	if !ok {
		return nil, errors.New("404 not found")
	}
	return io.NopCloser(strings.NewReader(p)), nil
}

func TestFetcherService_Fetch(t *testing.T) {
	store := &fakeFileStore{payloads: map[string]string{
		"raw":   "Topic,timestamp\nX,01-06-2025\n",
		"empty": "",
	}}
	svc := NewFetcherService(store)

	tbl, err := svc.Fetch(context.Background(), "raw")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(tbl.Header) != 2 || len(tbl.Rows) != 1 {
		t.Fatalf("unexpected table: %+v", tbl)
	}

	tests := []struct {
		name   string
		fileID string
	}{
		{name: "blank id", fileID: "  "},
		{name: "unknown id", fileID: "missing"},
		{name: "undecodable payload", fileID: "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Fetch(context.Background(), tt.fileID)
			var rerr *RetrievalError
			if !errors.As(err, &rerr) {
				t.Fatalf("expected *RetrievalError, got %T %v", err, err)
			}
			if rerr.FileID != tt.fileID {
				t.Fatalf("FileID=%q, want %q", rerr.FileID, tt.fileID)
			}
		})
	}
	for _, id := range store.calls {
		if strings.TrimSpace(id) == "" {
			t.Fatalf("blank id must not reach the store")
		}
	}
}

// syncFileStore is a fakeFileStore safe for concurrent use.
type syncFileStore struct {
	mu       sync.Mutex
	payloads map[string]string
}

func (f *syncFileStore) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payloads[fileID]
	if !ok {
		return nil, errors.New("404 not found")
	}
	return io.NopCloser(strings.NewReader(p)), nil
}
