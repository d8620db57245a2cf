package rag

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDocuments is returned when an empty document set is passed to
	// index construction or incremental insert.
	ErrNoDocuments = errors.New("rag: document set is empty")
	// ErrIndexNotBuilt is returned when a search or insert runs against an
	// index that has not been created yet.
	ErrIndexNotBuilt = errors.New("rag: index not built, call Create first")
	// ErrInvalidTopK is returned when a search is asked for a non-positive
	// number of results.
	ErrInvalidTopK = errors.New("rag: k must be a positive integer")
)

// UpstreamError marks a failure of an external service (embedding or chat
// completion). It is never masked as a valid empty answer; callers decide
// whether to retry.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("rag: %s service: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(service string, err error) error {
	if err == nil {
		return nil
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	return &UpstreamError{Service: service, Err: err}
}
