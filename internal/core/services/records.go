package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
	"github.com/custodia-labs/titlescan/internal/core/ports/driving"
	"github.com/custodia-labs/titlescan/internal/logger"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService loads registry exports into a record store.
type RecordService struct {
	store driven.RecordStore
}

// NewRecordService creates a new record service.
func NewRecordService(store driven.RecordStore) *RecordService {
	return &RecordService{store: store}
}

// Import stores raw records and returns how many were written.
func (s *RecordService) Import(ctx context.Context, raws []domain.RawRecord) (int, error) {
	if s.store == nil {
		return 0, fmt.Errorf("import: %w: record store", domain.ErrNotConfigured)
	}
	if len(raws) == 0 {
		return 0, nil
	}
	n, err := s.store.Import(ctx, raws)
	if err != nil {
		return n, fmt.Errorf("import into %s: %w", s.store.Name(), err)
	}
	logger.Info("imported %d records into %s", n, s.store.Name())
	return n, nil
}

// Count returns the number of records in the store.
func (s *RecordService) Count(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, fmt.Errorf("count: %w: record store", domain.ErrNotConfigured)
	}
	return s.store.Count(ctx)
}
