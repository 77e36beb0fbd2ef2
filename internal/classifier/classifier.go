// Package classifier buckets Documents into semantic categories.
package classifier

import (
	"sort"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// Classify returns the category for a short code.
// Unmapped codes fall into domain.CategoryOther.
func Classify(shortCode string) domain.Category {
	if c, ok := codeTable[shortCode]; ok {
		return c
	}
	return domain.CategoryOther
}

// CategoryOf classifies a document by its short code.
func CategoryOf(doc domain.Document) domain.Category {
	return Classify(doc.DocTypeShort)
}

// Group buckets docs by category. Every category is present in the result,
// possibly empty. Each bucket is ordered newest first; documents with equal
// timestamps keep their input order.
func Group(docs []domain.Document) domain.Groups {
	groups := make(domain.Groups, len(domain.AllCategories()))
	for _, c := range domain.AllCategories() {
		groups[c] = []domain.Document{}
	}

	for i := range docs {
		c := CategoryOf(docs[i])
		groups[c] = append(groups[c], docs[i])
	}

	for _, bucket := range groups {
		SortNewestFirst(bucket)
	}

	return groups
}

// SortNewestFirst stably sorts docs by descending record timestamp.
func SortNewestFirst(docs []domain.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].RecordTimestamp > docs[j].RecordTimestamp
	})
}
