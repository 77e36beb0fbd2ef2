package driven

import (
	"context"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// TextExtractor supplies the text of a recorded instrument.
// Implementations own any heavyweight resources (OCR workers, subprocesses)
// and release them in Close.
type TextExtractor interface {
	// ExtractText returns the document's text.
	// Returns an error wrapping domain.ErrTextUnavailable when no text exists.
	ExtractText(ctx context.Context, doc domain.Document) (string, error)

	// Close releases the extractor's resources.
	Close() error
}

// SignalExtractor recovers structured fields from instrument text.
type SignalExtractor interface {
	// Extract applies the rule set for category to text.
	// Short or empty text yields an all-nil, low-confidence result.
	Extract(text string, category domain.Category) *domain.ExtractedData
}
