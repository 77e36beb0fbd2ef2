// Package matcher pairs encumbrances with the discharges that release them.
//
// Two strategies exist. When any document in the batch carries extracted
// text signals the multi-signal scorer runs; otherwise the name-only
// fallback runs. Both assign each document at most once, tracked with
// consumed masks over the input slices.
package matcher

import (
	"math"
	"strings"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// Matcher scores encumbrance/discharge pairs with a fixed set of weights.
type Matcher struct {
	weights domain.MatchWeights
}

// New creates a matcher using weights.
func New(weights domain.MatchWeights) *Matcher {
	return &Matcher{weights: weights}
}

// Weights returns the matcher's configuration.
func (m *Matcher) Weights() domain.MatchWeights {
	return m.weights
}

// Match pairs encumbrances with discharges. Inputs are not modified.
//
// Assignment is greedy per discharge, so an early discharge can take an
// encumbrance a later one would have scored higher against.
func (m *Matcher) Match(encumbrances, discharges []domain.Document) domain.EncumbranceAnalysis {
	if HasSignals(encumbrances, discharges) {
		return m.multiSignal(encumbrances, discharges)
	}
	return m.nameOnly(encumbrances, discharges)
}

// HasSignals reports whether any document carries usable extracted data.
func HasSignals(sets ...[]domain.Document) bool {
	for _, docs := range sets {
		for i := range docs {
			if docs[i].ExtractedData.HasSignals() {
				return true
			}
		}
	}
	return false
}

// nameOnly scans every unconsumed discharge for each encumbrance in order.
// The best candidate at or above the fallback floor wins; ties keep the
// first candidate seen.
func (m *Matcher) nameOnly(encumbrances, discharges []domain.Document) domain.EncumbranceAnalysis {
	w := m.weights
	used := make([]bool, len(discharges))
	result := newAnalysis(domain.MatchModeNameOnly)

	for _, enc := range encumbrances {
		best, bestScore := -1, 0
		var bestReasons []string

		for j := range discharges {
			if used[j] {
				continue
			}
			dis := discharges[j]
			score := 0
			reasons := []string{}

			if dis.RecordTimestamp > enc.RecordTimestamp {
				score += w.FallbackTemporal
				reasons = append(reasons, domain.SignalTemporal)
			}
			if overlaps := grantorOverlaps(enc.Grantors, dis.Grantors); overlaps > 0 {
				score += overlaps * w.FallbackGrantor
				reasons = append(reasons, domain.SignalGrantorOverlap)
			}

			if score >= w.FallbackFloor && (best < 0 || score > bestScore) {
				best, bestScore, bestReasons = j, score, reasons
			}
		}

		if best < 0 {
			result.Open = append(result.Open, enc)
			continue
		}
		used[best] = true
		dis := discharges[best]
		result.Satisfied = append(result.Satisfied, domain.Match{
			Encumbrance: enc,
			Discharge:   &dis,
			Score:       bestScore,
			Confidence:  domain.ConfidenceLow,
			Reasons:     bestReasons,
		})
	}

	result.UnmatchedDischarges = unconsumed(discharges, used)
	return result
}

// multiSignal scans every unconsumed encumbrance for each discharge in order.
// The best candidate is accepted only at or above the acceptance floor, and
// an accepted pair is final.
func (m *Matcher) multiSignal(encumbrances, discharges []domain.Document) domain.EncumbranceAnalysis {
	w := m.weights
	used := make([]bool, len(encumbrances))
	paired := make([]*domain.Match, len(encumbrances))
	unmatched := []domain.Document{}

	for _, dis := range discharges {
		best, bestScore := -1, math.MinInt
		var bestReasons []string

		for i := range encumbrances {
			if used[i] {
				continue
			}
			score, reasons := m.Score(encumbrances[i], dis)
			if score > bestScore {
				best, bestScore, bestReasons = i, score, reasons
			}
		}

		if best < 0 || bestScore < w.AcceptFloor {
			unmatched = append(unmatched, dis)
			continue
		}
		used[best] = true
		d := dis
		paired[best] = &domain.Match{
			Encumbrance: encumbrances[best],
			Discharge:   &d,
			Score:       bestScore,
			Confidence:  domain.ConfidenceFor(bestScore, w.HighTier, w.MediumTier),
			Reasons:     bestReasons,
		}
	}

	result := newAnalysis(domain.MatchModeMultiSignal)
	for i, enc := range encumbrances {
		if paired[i] != nil {
			result.Satisfied = append(result.Satisfied, *paired[i])
		} else {
			result.Open = append(result.Open, enc)
		}
	}
	result.UnmatchedDischarges = unmatched
	return result
}

// Score computes the multi-signal score for one pair. Each signal
// contributes at most once. Reasons are listed in evaluation order.
//
// The instrument and book/page signals only compare a discharge reference
// of the matching kind. A bare instrument number never satisfies book/page
// through substring containment.
func (m *Matcher) Score(enc, dis domain.Document) (int, []string) {
	w := m.weights
	score := 0
	reasons := []string{}

	ref, kind := dis.ExtractedData.DischargeReference()

	if ref != nil && kind == domain.ReferenceInstrument && enc.InstrumentNumber != "" &&
		normaliseInstrument(*ref) == normaliseInstrument(enc.InstrumentNumber) {
		score += w.InstrumentNumber
		reasons = append(reasons, domain.SignalInstrumentNumber)
	}

	if ref != nil && kind == domain.ReferenceBookPage && enc.HasBookPage() &&
		strings.Contains(*ref, strings.TrimSpace(enc.BookNum)) &&
		strings.Contains(*ref, strings.TrimSpace(enc.PageNum)) {
		score += w.BookPage
		reasons = append(reasons, domain.SignalBookPage)
	}

	if amountsAgree(enc.ExtractedData.EncumbranceAmount(), dis.ExtractedData.DischargeAmount(), w.AmountTolerancePct) {
		score += w.Amount
		reasons = append(reasons, domain.SignalAmount)
	}

	if lendersAgree(enc.ExtractedData.EncumbranceLender(), dis.ExtractedData.DischargeLender()) {
		score += w.Lender
		reasons = append(reasons, domain.SignalLender)
	}

	if grantorsAgree(enc.Grantors, dis.Grantors) {
		score += w.Grantor
		reasons = append(reasons, domain.SignalGrantor)
	}

	if dis.RecordTimestamp > enc.RecordTimestamp {
		score += w.TemporalBonus
		reasons = append(reasons, domain.SignalTemporal)
	} else {
		score -= w.TemporalPenalty
		reasons = append(reasons, domain.SignalTemporalPenalty)
	}

	return score, reasons
}

func newAnalysis(mode domain.MatchMode) domain.EncumbranceAnalysis {
	return domain.EncumbranceAnalysis{
		Mode:                mode,
		Satisfied:           []domain.Match{},
		Open:                []domain.Document{},
		UnmatchedDischarges: []domain.Document{},
	}
}

func unconsumed(docs []domain.Document, used []bool) []domain.Document {
	out := []domain.Document{}
	for i := range docs {
		if !used[i] {
			out = append(out, docs[i])
		}
	}
	return out
}

// normaliseInstrument drops case, spaces and dashes.
func normaliseInstrument(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "").Replace(s)
}

// amountsAgree reports whether b is within pct percent of a.
func amountsAgree(a, b *float64, pct float64) bool {
	if a == nil || b == nil || *a <= 0 {
		return false
	}
	return math.Abs(*a-*b) <= *a*pct/100
}

// lendersAgree compares first tokens, allowing containment either way.
func lendersAgree(a, b *string) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := domain.FirstToken(*a), domain.FirstToken(*b)
	if ta == "" || tb == "" {
		return false
	}
	return strings.Contains(ta, tb) || strings.Contains(tb, ta)
}

// grantorsAgree reports whether any pair of grantors shares a first token.
func grantorsAgree(a, b []string) bool {
	for _, x := range a {
		tx := domain.FirstToken(x)
		if tx == "" {
			continue
		}
		for _, y := range b {
			if tx == domain.FirstToken(y) {
				return true
			}
		}
	}
	return false
}

// grantorOverlaps counts grantor pairs whose first tokens overlap by substring.
func grantorOverlaps(a, b []string) int {
	n := 0
	for _, x := range a {
		tx := domain.FirstToken(x)
		if tx == "" {
			continue
		}
		for _, y := range b {
			ty := domain.FirstToken(y)
			if ty == "" {
				continue
			}
			if strings.Contains(tx, ty) || strings.Contains(ty, tx) {
				n++
			}
		}
	}
	return n
}
