package domain

import "time"

// ChainEntry is one deed in the chain of title.
type ChainEntry struct {
	// Sequence is 1-based and ascends with RecordTimestamp.
	Sequence         int      `json:"sequence"`
	InstrumentNumber string   `json:"instrumentNumber"`
	RecordDate       string   `json:"recordDate"`
	RecordTimestamp  int64    `json:"recordTimestamp"`
	Grantors         []string `json:"grantors"`
	Grantees         []string `json:"grantees"`
	DocType          string   `json:"docType"`
	SalesPrice       *float64 `json:"salesPrice"`
	LegalDescription string   `json:"legalDescription"`
	BookNum          string   `json:"bookNum"`
	PageNum          string   `json:"pageNum"`
}

// MatchMode identifies which matching strategy produced an analysis.
type MatchMode string

// Match modes.
const (
	MatchModeNameOnly    MatchMode = "name_only"
	MatchModeMultiSignal MatchMode = "multi_signal"
)

// Signal names recorded in Match.Reasons.
const (
	SignalInstrumentNumber = "instrument_number"
	SignalBookPage         = "book_page"
	SignalAmount           = "amount"
	SignalLender           = "lender"
	SignalGrantor          = "grantor"
	SignalTemporal         = "temporal"
	SignalTemporalPenalty  = "temporal_penalty"
	SignalGrantorOverlap   = "grantor_overlap"
)

// Match pairs an encumbrance with the discharge that releases it.
type Match struct {
	Encumbrance Document   `json:"encumbrance"`
	Discharge   *Document  `json:"discharge"`
	Score       int        `json:"score"`
	Confidence  Confidence `json:"confidence"`
	Reasons     []string   `json:"matchReasons"`
}

// EncumbranceAnalysis is the outcome of matching one encumbrance family
// (mortgages against satisfactions, or liens against releases).
type EncumbranceAnalysis struct {
	Mode                MatchMode  `json:"mode"`
	Satisfied           []Match    `json:"satisfied"`
	Open                []Document `json:"open"`
	UnmatchedDischarges []Document `json:"unmatchedDischarges"`
}

// Severity ranks how urgently a flag needs attention.
type Severity string

// Severities.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// FlagType identifies the condition a flag reports.
type FlagType string

// Flag types.
const (
	FlagLisPendens FlagType = "lis_pendens"
	FlagJudgment   FlagType = "judgment"
	FlagTaxLien    FlagType = "tax_lien"
	FlagQuickFlip  FlagType = "quick_flip"
)

// Flag is a condition worth human attention.
type Flag struct {
	Severity  Severity   `json:"severity"`
	Type      FlagType   `json:"type"`
	Message   string     `json:"message"`
	Documents []Document `json:"documents"`
}

// RiskLevel is the ordinal rollup of a title package.
type RiskLevel string

// Risk levels.
const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Summary rolls counts and flags into a single view.
type Summary struct {
	TotalDocuments     int       `json:"totalDocuments"`
	ChainLength        int       `json:"chainLength"`
	OpenMortgages      int       `json:"openMortgages"`
	SatisfiedMortgages int       `json:"satisfiedMortgages"`
	OpenLiens          int       `json:"openLiens"`
	ReleasedLiens      int       `json:"releasedLiens"`
	FlagCount          int       `json:"flagCount"`
	HighFlags          int       `json:"highFlags"`
	MediumFlags        int       `json:"mediumFlags"`
	NeedsReview        int       `json:"needsReview"`
	ScannedMode        bool      `json:"scannedMode"`
	RiskLevel          RiskLevel `json:"riskLevel"`
}

// TitlePackage is the complete result of one owner search.
// It is the sole contract surfaced to presentation layers.
type TitlePackage struct {
	RunID       string              `json:"runId"`
	Owner       string              `json:"owner"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Documents   []Document          `json:"documents"`
	Groups      Groups              `json:"groups"`
	Chain       []ChainEntry        `json:"chain"`
	Mortgages   EncumbranceAnalysis `json:"mortgages"`
	Liens       EncumbranceAnalysis `json:"liens"`
	Flags       []Flag              `json:"flags"`
	Summary     Summary             `json:"summary"`
	ReviewQueue []string            `json:"reviewQueue"`
}
