package domain

// Confidence is a coarse evidence tier.
type Confidence string

// Confidence tiers.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceFor maps a score to a tier using inclusive lower bounds.
func ConfidenceFor(score, highAt, mediumAt int) Confidence {
	switch {
	case score >= highAt:
		return ConfidenceHigh
	case score >= mediumAt:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ReferenceKind distinguishes the two ways a discharge cites its encumbrance.
type ReferenceKind string

// Reference kinds.
const (
	ReferenceNone       ReferenceKind = ""
	ReferenceInstrument ReferenceKind = "instrument"
	ReferenceBookPage   ReferenceKind = "book_page"
)

// ExtractedData holds fields recovered from an instrument's text.
// Exactly one of the category blocks is set when the category has a
// rule set; every field inside is nil unless a rule matched.
type ExtractedData struct {
	Category        Category   `json:"category"`
	Confidence      Confidence `json:"confidence"`
	ConfidenceScore int        `json:"confidenceScore"`

	// NeedsManualReview marks documents whose text could not be obtained.
	NeedsManualReview bool   `json:"needsManualReview,omitempty"`
	ReviewReason      string `json:"reviewReason,omitempty"`

	Mortgage     *MortgageFields     `json:"mortgage,omitempty"`
	Deed         *DeedFields         `json:"deed,omitempty"`
	Satisfaction *SatisfactionFields `json:"satisfaction,omitempty"`
	Lien         *LienFields         `json:"lien,omitempty"`
}

// MortgageFields are extracted from mortgage text.
type MortgageFields struct {
	PrincipalAmount      *float64 `json:"principalAmount"`
	Lender               *string  `json:"lender"`
	InstrumentReferences []string `json:"instrumentReferences"`
	IsModification       bool     `json:"isModification"`
	IsRefinance          bool     `json:"isRefinance"`
	InterestRate         *float64 `json:"interestRate"`
	MaturityDate         *string  `json:"maturityDate"`
}

// DeedFields are extracted from deed text.
type DeedFields struct {
	Consideration        *float64 `json:"consideration"`
	ConsiderationDerived bool     `json:"considerationDerived"`
	LegalDescription     *string  `json:"legalDescription"`
	DeedType             *string  `json:"deedType"`
}

// SatisfactionFields are extracted from satisfaction and release text.
type SatisfactionFields struct {
	Reference      *string       `json:"reference"`
	ReferenceKind  ReferenceKind `json:"referenceKind,omitempty"`
	OriginalLender *string       `json:"originalLender"`
	OriginalAmount *float64      `json:"originalAmount"`
	SatisfiedDate  *string       `json:"satisfiedDate"`
}

// LienFields are extracted from lien text.
type LienFields struct {
	Amount               *float64 `json:"amount"`
	Claimant             *string  `json:"claimant"`
	InstrumentReferences []string `json:"instrumentReferences"`
}

// NeedsReview builds the placeholder attached when text is unavailable.
func NeedsReview(category Category, reason string) *ExtractedData {
	return &ExtractedData{
		Category:          category,
		Confidence:        ConfidenceLow,
		NeedsManualReview: true,
		ReviewReason:      reason,
	}
}

// HasSignals reports whether any field carries evidence usable for matching.
func (x *ExtractedData) HasSignals() bool {
	if x == nil || x.NeedsManualReview {
		return false
	}
	return x.ConfidenceScore > 0
}

// EncumbranceAmount returns the mortgage principal or lien amount.
func (x *ExtractedData) EncumbranceAmount() *float64 {
	switch {
	case x == nil:
		return nil
	case x.Mortgage != nil:
		return x.Mortgage.PrincipalAmount
	case x.Lien != nil:
		return x.Lien.Amount
	}
	return nil
}

// EncumbranceLender returns the mortgage lender or lien claimant.
func (x *ExtractedData) EncumbranceLender() *string {
	switch {
	case x == nil:
		return nil
	case x.Mortgage != nil:
		return x.Mortgage.Lender
	case x.Lien != nil:
		return x.Lien.Claimant
	}
	return nil
}

// DischargeReference returns the cited encumbrance reference, if any.
func (x *ExtractedData) DischargeReference() (*string, ReferenceKind) {
	if x == nil || x.Satisfaction == nil {
		return nil, ReferenceNone
	}
	return x.Satisfaction.Reference, x.Satisfaction.ReferenceKind
}

// DischargeLender returns the original lender named in a discharge.
func (x *ExtractedData) DischargeLender() *string {
	if x == nil || x.Satisfaction == nil {
		return nil
	}
	return x.Satisfaction.OriginalLender
}

// DischargeAmount returns the original amount named in a discharge.
func (x *ExtractedData) DischargeAmount() *float64 {
	if x == nil || x.Satisfaction == nil {
		return nil
	}
	return x.Satisfaction.OriginalAmount
}
