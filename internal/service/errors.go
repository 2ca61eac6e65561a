package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned by views before the first successful refresh.
	ErrNotLoaded = errors.New("no data loaded yet: refresh first")
	// ErrEmptyComment rejects comments that are blank after trimming.
	ErrEmptyComment = errors.New("comment is empty")
	// ErrUnknownTopic is returned when a device is not in the current result.
	ErrUnknownTopic = errors.New("unknown topic")
)

// RetrievalError reports a failure fetching or decoding a remote dataset.
type RetrievalError struct {
	FileID string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve dataset %q: %v", e.FileID, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// CommentTransportError reports a failed read or append on the comment log.
type CommentTransportError struct {
	Op  string // "load" | "append"
	Err error
}

func (e *CommentTransportError) Error() string {
	return fmt.Sprintf("comment log %s: %v", e.Op, e.Err)
}

func (e *CommentTransportError) Unwrap() error { return e.Err }
