// Package chain builds the chronological chain of title from deeds.
package chain

import (
	"sort"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// Build orders deeds oldest first and numbers them 1..N.
// The input order is not assumed; equal timestamps keep input order.
// The input slice is not modified.
func Build(deeds []domain.Document) []domain.ChainEntry {
	ordered := make([]domain.Document, len(deeds))
	copy(ordered, deeds)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RecordTimestamp < ordered[j].RecordTimestamp
	})

	entries := make([]domain.ChainEntry, 0, len(ordered))
	for i := range ordered {
		entries = append(entries, entryFor(i+1, ordered[i]))
	}
	return entries
}

func entryFor(seq int, d domain.Document) domain.ChainEntry {
	return domain.ChainEntry{
		Sequence:         seq,
		InstrumentNumber: d.InstrumentNumber,
		RecordDate:       d.RecordDate,
		RecordTimestamp:  d.RecordTimestamp,
		Grantors:         d.Grantors,
		Grantees:         d.Grantees,
		DocType:          d.DocType,
		SalesPrice:       d.SalesPrice,
		LegalDescription: d.LegalDescription,
		BookNum:          d.BookNum,
		PageNum:          d.PageNum,
	}
}
