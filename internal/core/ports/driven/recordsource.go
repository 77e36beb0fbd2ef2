package driven

import (
	"context"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// RecordSource searches the land registry for records naming an owner.
// Implementations wrap registry APIs, exports or local snapshots.
type RecordSource interface {
	// Search returns raw records where owner appears as a party.
	// An empty owner returns every record the source holds.
	Search(ctx context.Context, owner string) ([]domain.RawRecord, error)

	// Name identifies the source for logging.
	Name() string
}

// RecordStore is a RecordSource that can be loaded with records,
// such as a local snapshot of registry exports.
type RecordStore interface {
	RecordSource

	// Import stores records, replacing any with the same identity.
	// Returns the number of records written.
	Import(ctx context.Context, raws []domain.RawRecord) (int, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
