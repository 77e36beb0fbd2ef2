package extractors

import (
	"math"
	"regexp"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

// DocStampRate is Florida's documentary stamp tax on deeds: $0.70 per $100.
const DocStampRate = 0.0070

// MinConsideration filters nominal recitals such as "$10.00 and other good
// and valuable consideration".
const MinConsideration = 1_000

// LegalDescriptionLimit caps the stored legal description length.
const LegalDescriptionLimit = 200

const ruleDocStamps = "documentary_stamps"

// Deed type labels, in precedence order.
const (
	DeedTypeWarranty        = "WARRANTY"
	DeedTypeQuitClaim       = "QUIT CLAIM"
	DeedTypeSpecialWarranty = "SPECIAL WARRANTY"
	DeedTypeTax             = "TAX DEED"
	DeedTypePR              = "PR"
	DeedTypeTrustee         = "TRUSTEE"
)

type deedRules struct {
	consideration Chain[float64]
	legal         Chain[string]
	deedType      Chain[string]
}

func newDeedRules() deedRules {
	return deedRules{
		consideration: Chain[float64]{
			Rules: []Rule[float64]{
				{Name: "for_and_in_consideration", Pattern: regexp.MustCompile(`\bFOR\s+AND\s+IN\s+CONSIDERATION\s+OF[^$]{0,120}` + amountExpr), Transform: amountGroup(1)},
				{Name: "consideration_of", Pattern: regexp.MustCompile(`\bCONSIDERATION\s+OF[^$]{0,120}` + amountExpr), Transform: amountGroup(1)},
				{Name: "sum_of", Pattern: regexp.MustCompile(`\bSUM\s+OF[^$]{0,120}` + amountExpr), Transform: amountGroup(1)},
				{
					Name:      ruleDocStamps,
					Pattern:   regexp.MustCompile(`\bDOC(?:UMENTARY|\.)?\s*STAMPS?(?:\s+TAX(?:ES)?)?(?:\s+PAID)?(?:\s+(?:IN\s+THE\s+AMOUNT\s+OF|OF))?\s*:?\s*` + amountExpr),
					Transform: stampsToConsideration,
				},
			},
			Accept: between(MinConsideration, 0),
		},
		legal: Chain[string]{
			Rules: []Rule[string]{
				{Name: "lot_block", Pattern: regexp.MustCompile(`\bLOTS?\s+[0-9][0-9A-Z]*(?:\s*(?:,|AND|&)\s*[0-9][0-9A-Z]*)*\s*,?\s*(?:OF\s+|IN\s+)?BLOCK\s+[0-9A-Z]+[^\n]*`), Transform: whole(LegalDescriptionLimit)},
				{Name: "unit_condo", Pattern: regexp.MustCompile(`\bUNIT\s+(?:NO\.?\s*)?[0-9A-Z-]+[^\n]*?CONDOMINIUM[^\n]*`), Transform: whole(LegalDescriptionLimit)},
				{Name: "section_township_range", Pattern: regexp.MustCompile(`\bSECTION\s+[0-9]{1,2}\s*,?\s*TOWNSHIP\s+[0-9]{1,2}\s*(?:SOUTH|NORTH|S|N)?\s*,?\s*RANGE\s+[0-9]{1,2}\s*(?:EAST|WEST|E|W)?[^\n]*`), Transform: whole(LegalDescriptionLimit)},
				{Name: "parcel_id", Pattern: regexp.MustCompile(`\b(?:PARCEL\s+(?:ID(?:ENTIFICATION)?(?:\s+(?:NO\.?|NUMBER))?|NO\.?|NUMBER)|FOLIO(?:\s+NO\.?)?)\s*[:#]?\s*[0-9][0-9-]{6,30}`), Transform: whole(LegalDescriptionLimit)},
			},
		},
		deedType: Chain[string]{
			Rules: []Rule[string]{
				{Name: "warranty", Pattern: regexp.MustCompile(`\b(SPECIAL\s+)?WARRANTY\s+DEED\b`), Transform: plainWarranty},
				{Name: "quit_claim", Pattern: regexp.MustCompile(`\bQUIT\s*-?\s*CLAIM\b`), Transform: fixed(DeedTypeQuitClaim)},
				{Name: "special_warranty", Pattern: regexp.MustCompile(`\bSPECIAL\s+WARRANTY\b`), Transform: fixed(DeedTypeSpecialWarranty)},
				{Name: "tax_deed", Pattern: regexp.MustCompile(`\bTAX\s+DEED\b`), Transform: fixed(DeedTypeTax)},
				{Name: "personal_representative", Pattern: regexp.MustCompile(`\bPERSONAL\s+REPRESENTATIVE'?S?\s+DEED\b`), Transform: fixed(DeedTypePR)},
				{Name: "trustee", Pattern: regexp.MustCompile(`\bTRUSTEE'?S?\s+DEED\b`), Transform: fixed(DeedTypeTrustee)},
			},
		},
	}
}

// plainWarranty accepts "WARRANTY DEED" only when it is not a special warranty.
func plainWarranty(m []string) (string, bool) {
	if m[1] != "" {
		return "", false
	}
	return DeedTypeWarranty, true
}

// stampsToConsideration back-derives the sale price from the stamp tax paid.
func stampsToConsideration(m []string) (float64, bool) {
	stamps, ok := parseDollars(m[1])
	if !ok || stamps <= 0 {
		return 0, false
	}
	return math.Round(stamps/DocStampRate*100) / 100, true
}

// extract fills deed fields and returns the confidence score:
// 2 for consideration, 2 for legal description, 1 for deed type.
func (r deedRules) extract(text string) (*domain.DeedFields, int) {
	f := &domain.DeedFields{}
	score := 0

	if v, rule, ok := r.consideration.Apply(text); ok {
		f.Consideration = &v
		f.ConsiderationDerived = rule == ruleDocStamps
		score += 2
	}
	if v, _, ok := r.legal.Apply(text); ok {
		f.LegalDescription = &v
		score += 2
	}
	if v, _, ok := r.deedType.Apply(text); ok {
		f.DeedType = &v
		score++
	}

	return f, score
}
