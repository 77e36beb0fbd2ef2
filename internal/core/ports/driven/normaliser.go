package driven

import "github.com/custodia-labs/titlescan/internal/core/domain"

// RecordNormaliser transforms raw registry records into Documents.
// Normalisation never fails: absent data is represented, not rejected.
type RecordNormaliser interface {
	// Normalise maps one record.
	Normalise(raw domain.RawRecord) domain.Document

	// NormaliseAll maps records preserving input order.
	NormaliseAll(raws []domain.RawRecord) []domain.Document
}
