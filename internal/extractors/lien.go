package extractors

import (
	"regexp"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// MinLienAmount filters page counts and fees that look like amounts.
const MinLienAmount = 100

type lienRules struct {
	amount   Chain[float64]
	claimant Chain[string]
}

func newLienRules(institutions []string) lienRules {
	return lienRules{
		amount: Chain[float64]{
			Rules: []Rule[float64]{
				{Name: "amount_due", Pattern: regexp.MustCompile(`\b(?:AMOUNT|BALANCE|SUM)\s+(?:DUE|OWED|OF)[^$]{0,80}` + amountExpr), Transform: amountGroup(1)},
				{Name: "in_the_amount_of", Pattern: regexp.MustCompile(`\bIN\s+THE\s+(?:TOTAL\s+)?AMOUNT\s+OF[^$]{0,80}` + amountExpr), Transform: amountGroup(1)},
				{Name: "total", Pattern: regexp.MustCompile(`\bTOTAL(?:\s+DUE)?\s*:?\s*` + amountExpr), Transform: amountGroup(1)},
				{Name: "bare_amount", Pattern: regexp.MustCompile(amountExpr), Transform: amountGroup(1)},
			},
			Accept: between(MinLienAmount, 0),
		},
		claimant: partyChain(`CLAIMANT|LIENOR|LIENHOLDER|CREDITOR`, institutions),
	}
}

// extract fills lien fields and returns the confidence score:
// 3 for amount, 2 for claimant, 1 for any cross-reference.
func (r lienRules) extract(text string) (*domain.LienFields, int) {
	f := &domain.LienFields{InstrumentReferences: Collect(text, referenceRules())}
	score := 0

	if v, _, ok := r.amount.Apply(text); ok {
		f.Amount = &v
		score += 3
	}
	if v, _, ok := r.claimant.Apply(text); ok {
		f.Claimant = &v
		score += 2
	}
	if len(f.InstrumentReferences) > 0 {
		score++
	}

	return f, score
}
