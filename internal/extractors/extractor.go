package extractors

import (
	"strings"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.SignalExtractor = (*Extractor)(nil)

// Confidence tier thresholds shared by every category.
const (
	HighConfidenceScore   = 4
	MediumConfidenceScore = 2
)

// DefaultMinTextLength is the shortest text worth running rules against.
const DefaultMinTextLength = 50

// Extractor recovers structured fields from instrument text.
// It is safe for concurrent use once constructed.
type Extractor struct {
	minTextLength int
	institutions  []string

	mortgage     mortgageRules
	deed         deedRules
	satisfaction satisfactionRules
	lien         lienRules
}

// Option configures the extractor.
type Option func(*Extractor)

// WithMinTextLength overrides the short-text cutoff.
func WithMinTextLength(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.minTextLength = n
		}
	}
}

// WithKnownInstitutions appends lender name fragments to the built-in list.
func WithKnownInstitutions(names ...string) Option {
	return func(e *Extractor) {
		e.institutions = append(e.institutions, names...)
	}
}

// New creates an extractor with the built-in rule sets.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		minTextLength: DefaultMinTextLength,
		institutions:  append([]string(nil), DefaultInstitutions...),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.mortgage = newMortgageRules(e.institutions)
	e.deed = newDeedRules()
	e.satisfaction = newSatisfactionRules(e.institutions)
	e.lien = newLienRules(e.institutions)
	return e
}

// Extract applies the category's rule set to text.
// Text shorter than the cutoff yields the category block with every field
// empty and low confidence. Categories without a rule set yield only the
// category and low confidence.
func (e *Extractor) Extract(text string, category domain.Category) *domain.ExtractedData {
	data := &domain.ExtractedData{Category: category, Confidence: domain.ConfidenceLow}

	if len(strings.TrimSpace(text)) < e.minTextLength {
		switch category {
		case domain.CategoryMortgage:
			data.Mortgage = &domain.MortgageFields{InstrumentReferences: []string{}}
		case domain.CategoryDeed:
			data.Deed = &domain.DeedFields{}
		case domain.CategorySatisfaction, domain.CategoryRelease:
			data.Satisfaction = &domain.SatisfactionFields{}
		case domain.CategoryLien:
			data.Lien = &domain.LienFields{InstrumentReferences: []string{}}
		}
		return data
	}

	text = normaliseText(text)

	var score int
	switch category {
	case domain.CategoryMortgage:
		data.Mortgage, score = e.mortgage.extract(text)
	case domain.CategoryDeed:
		data.Deed, score = e.deed.extract(text)
	case domain.CategorySatisfaction, domain.CategoryRelease:
		data.Satisfaction, score = e.satisfaction.extract(text)
	case domain.CategoryLien:
		data.Lien, score = e.lien.extract(text)
	default:
		return data
	}

	data.ConfidenceScore = score
	data.Confidence = domain.ConfidenceFor(score, HighConfidenceScore, MediumConfidenceScore)
	return data
}
