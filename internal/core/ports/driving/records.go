package driving

import (
	"context"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// RecordService loads registry exports into the local snapshot.
type RecordService interface {
	// Import stores raw records and returns how many were written.
	Import(ctx context.Context, raws []domain.RawRecord) (int, error)

	// Count returns the number of records in the snapshot.
	Count(ctx context.Context) (int, error)
}
