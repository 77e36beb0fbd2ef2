package risk

import "github.com/custodia-labs/titlescan/internal/core/domain"

// Inputs collects everything the summary rolls up.
type Inputs struct {
	Documents []domain.Document
	Chain     []domain.ChainEntry
	Mortgages domain.EncumbranceAnalysis
	Liens     domain.EncumbranceAnalysis
	Flags     []domain.Flag

	// Scanned is true when text extraction ran for at least one document.
	Scanned bool
}

// Summarize counts the analysis and assigns a risk level.
func Summarize(in Inputs) domain.Summary {
	s := domain.Summary{
		TotalDocuments:     len(in.Documents),
		ChainLength:        len(in.Chain),
		OpenMortgages:      len(in.Mortgages.Open),
		SatisfiedMortgages: len(in.Mortgages.Satisfied),
		OpenLiens:          len(in.Liens.Open),
		ReleasedLiens:      len(in.Liens.Satisfied),
		FlagCount:          len(in.Flags),
		ScannedMode:        in.Scanned,
	}

	for _, f := range in.Flags {
		switch f.Severity {
		case domain.SeverityHigh:
			s.HighFlags++
		case domain.SeverityMedium:
			s.MediumFlags++
		}
	}
	for _, d := range in.Documents {
		if d.NeedsManualReview() {
			s.NeedsReview++
		}
	}

	s.RiskLevel = Level(s)
	return s
}

// Level applies the rollup rule to counted totals.
func Level(s domain.Summary) domain.RiskLevel {
	switch {
	case s.HighFlags > 0:
		return domain.RiskHigh
	case s.MediumFlags > 0, s.OpenLiens > 0, s.ScannedMode && s.OpenMortgages > 1:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
