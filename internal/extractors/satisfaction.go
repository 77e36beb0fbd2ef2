package extractors

import (
	"regexp"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// MinOriginalAmount filters fees and recording charges from the original amount.
const MinOriginalAmount = 10_000

var satisfiedDatePattern = regexp.MustCompile(`\b(?:SATISFIED|RELEASED|DISCHARGED|DATED|EXECUTED)(?:\s+(?:ON|THIS|AS\s+OF))?\s*:?\s*` + dateExpr)

// satisfactionRules serve both satisfactions and releases.
type satisfactionRules struct {
	reference Chain[reference]
	lender    Chain[string]
	amount    Chain[float64]
}

// reference is a cited encumbrance and the way it was cited.
type reference struct {
	value string
	kind  domain.ReferenceKind
}

func referenceAs(kind domain.ReferenceKind, inner func([]string) (string, bool)) func([]string) (reference, bool) {
	return func(m []string) (reference, bool) {
		v, ok := inner(m)
		if !ok {
			return reference{}, false
		}
		return reference{value: v, kind: kind}, true
	}
}

func newSatisfactionRules(institutions []string) satisfactionRules {
	return satisfactionRules{
		reference: Chain[reference]{
			Rules: []Rule[reference]{
				{Name: ruleBookPage, Pattern: bookPagePattern, Transform: referenceAs(domain.ReferenceBookPage, bookPage(1, 2))},
				{Name: ruleInstrumentNo, Pattern: instrumentNoPattern, Transform: referenceAs(domain.ReferenceInstrument, group(1))},
				{Name: ruleCFN, Pattern: cfnPattern, Transform: referenceAs(domain.ReferenceInstrument, group(1))},
				{Name: ruleDocNo, Pattern: docNoPattern, Transform: referenceAs(domain.ReferenceInstrument, group(1))},
			},
		},
		lender: partyChain(`(?:ORIGINAL\s+)?(?:MORTGAGEE|LENDER|HOLDER)`, institutions),
		amount: Chain[float64]{
			Rules: []Rule[float64]{
				{Name: "original_amount", Pattern: regexp.MustCompile(`\bORIGINAL\s+(?:PRINCIPAL\s+)?AMOUNT\s+OF[^$]{0,80}` + amountExpr), Transform: amountGroup(1)},
				{Name: "sum_of", Pattern: regexp.MustCompile(`\b(?:PRINCIPAL\s+)?(?:SUM|AMOUNT)\s+OF[^$]{0,80}` + amountExpr), Transform: amountGroup(1)},
				{Name: "bare_amount", Pattern: regexp.MustCompile(groupedAmountExpr), Transform: amountGroup(1)},
			},
			Accept: between(MinOriginalAmount, 0),
		},
	}
}

// extract fills satisfaction fields and returns the confidence score:
// 3 for a reference, 2 for lender, 1 for amount.
func (r satisfactionRules) extract(text string) (*domain.SatisfactionFields, int) {
	f := &domain.SatisfactionFields{}
	score := 0

	if ref, _, ok := r.reference.Apply(text); ok {
		f.Reference = &ref.value
		f.ReferenceKind = ref.kind
		score += 3
	}
	if v, _, ok := r.lender.Apply(text); ok {
		f.OriginalLender = &v
		score += 2
	}
	if v, _, ok := r.amount.Apply(text); ok {
		f.OriginalAmount = &v
		score++
	}
	if m := satisfiedDatePattern.FindStringSubmatch(text); m != nil {
		date := cleanCapture(m[1])
		f.SatisfiedDate = &date
	}

	return f, score
}
