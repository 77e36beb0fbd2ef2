package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
	"github.com/custodia-labs/titlescan/internal/normalisers/landrecord"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Records are returned in first-import order.
type RecordStore struct {
	mu         sync.RWMutex
	normaliser *landrecord.Normaliser
	order      []string
	records    map[string]domain.RawRecord
	parties    map[string]domain.Document
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		normaliser: landrecord.New(),
		records:    make(map[string]domain.RawRecord),
		parties:    make(map[string]domain.Document),
	}
}

// Name identifies the source for logging.
func (s *RecordStore) Name() string {
	return "memory"
}

// Import stores records, replacing any with the same identity.
func (s *RecordStore) Import(ctx context.Context, raws []domain.RawRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		doc := s.normaliser.Normalise(raw)
		key := landrecord.RecordKey(raw)
		if _, exists := s.records[key]; !exists {
			s.order = append(s.order, key)
		}
		s.records[key] = raw
		s.parties[key] = doc
	}
	return len(raws), nil
}

// Search returns records naming owner as a party.
func (s *RecordStore) Search(ctx context.Context, owner string) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.RawRecord{}
	for _, key := range s.order {
		if s.parties[key].NamesParty(owner) {
			out = append(out, s.records[key])
		}
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *RecordStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
