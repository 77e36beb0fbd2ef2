package extractors

import (
	"regexp"
	"strconv"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// Principal amount bounds for a plausible residential or commercial mortgage.
const (
	MinPrincipal = 10_000
	MaxPrincipal = 50_000_000
)

var (
	modificationPattern = regexp.MustCompile(`\bMODIF(?:ICATION|IES|IED|Y)\b`)
	refinancePattern    = regexp.MustCompile(`REFINANC`)
	interestRatePattern = regexp.MustCompile(`\bINTEREST\s+(?:RATE\s+)?(?:AT\s+)?(?:THE\s+)?(?:RATE\s+)?(?:OF\s+)?([0-9]{1,2}(?:\.[0-9]{1,4})?)\s*(?:%|PERCENT)`)
	maturityPattern     = regexp.MustCompile(`\bMATURITY\s+DATE(?:\s+(?:IS|OF))?\s*:?\s*` + dateExpr)
)

// mortgageRules holds the compiled chains for mortgage text.
type mortgageRules struct {
	principal Chain[float64]
	lender    Chain[string]
}

func newMortgageRules(institutions []string) mortgageRules {
	return mortgageRules{
		principal: Chain[float64]{
			Rules: []Rule[float64]{
				{Name: "principal_sum", Pattern: regexp.MustCompile(`\bPRINCIPAL\s+(?:SUM|AMOUNT)\s+OF[^$]{0,160}` + amountExpr), Transform: amountGroup(1)},
				{Name: "in_the_amount_of", Pattern: regexp.MustCompile(`\bIN\s+THE\s+(?:ORIGINAL\s+)?(?:PRINCIPAL\s+)?AMOUNT\s+OF[^$]{0,160}` + amountExpr), Transform: amountGroup(1)},
				{Name: "face_amount", Pattern: regexp.MustCompile(`\bFACE\s+AMOUNT(?:\s+OF)?[^$]{0,40}` + amountExpr), Transform: amountGroup(1)},
				{Name: "loan_amount", Pattern: regexp.MustCompile(`\bLOAN\s+AMOUNT(?:\s+OF)?[^$]{0,40}` + amountExpr), Transform: amountGroup(1)},
				{Name: "bare_amount", Pattern: regexp.MustCompile(groupedAmountExpr), Transform: amountGroup(1)},
			},
			Accept: between(MinPrincipal, MaxPrincipal),
		},
		lender: partyChain(`MORTGAGEE|LENDER`, institutions),
	}
}

// extract fills mortgage fields and returns the confidence score:
// 3 for principal, 2 for lender, 1 each for rate and maturity.
func (r mortgageRules) extract(text string) (*domain.MortgageFields, int) {
	f := &domain.MortgageFields{
		InstrumentReferences: Collect(text, referenceRules()),
		IsModification:       modificationPattern.MatchString(text),
		IsRefinance:          refinancePattern.MatchString(text),
	}
	score := 0

	if v, _, ok := r.principal.Apply(text); ok {
		f.PrincipalAmount = &v
		score += 3
	}
	if v, _, ok := r.lender.Apply(text); ok {
		f.Lender = &v
		score += 2
	}
	if m := interestRatePattern.FindStringSubmatch(text); m != nil {
		if rate, err := strconv.ParseFloat(m[1], 64); err == nil && rate > 0 && rate < 30 {
			f.InterestRate = &rate
			score++
		}
	}
	if m := maturityPattern.FindStringSubmatch(text); m != nil {
		date := cleanCapture(m[1])
		f.MaturityDate = &date
		score++
	}

	return f, score
}
