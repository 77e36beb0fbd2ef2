package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a required collaborator was not wired.
	ErrNotConfigured = errors.New("not configured")

	// ErrSourceUnavailable indicates the record source could not be searched.
	ErrSourceUnavailable = errors.New("record source unavailable")

	// ErrTextUnavailable indicates no text could be produced for a document.
	// The document is routed to manual review rather than failing the run.
	ErrTextUnavailable = errors.New("document text unavailable")

	// ErrExtractorClosed indicates the text extractor has been released.
	ErrExtractorClosed = errors.New("text extractor closed")
)
