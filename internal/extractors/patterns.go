package extractors

import (
	"regexp"
	"strings"
)

// Shared pattern fragments. All text is upper-cased before matching.
const (
	// amountExpr captures a dollar figure such as $200,000.00 or $1500.
	amountExpr = `\$\s*([0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{1,2})?|[0-9]+(?:\.[0-9]{1,2})?)`

	// groupedAmountExpr captures only comma-grouped figures ($10,000 and up).
	groupedAmountExpr = `\$\s*([0-9]{1,3}(?:,[0-9]{3})+(?:\.[0-9]{1,2})?)`

	monthExpr = `(?:JANUARY|FEBRUARY|MARCH|APRIL|MAY|JUNE|JULY|AUGUST|SEPTEMBER|OCTOBER|NOVEMBER|DECEMBER)`

	// dateExpr accepts long-form and numeric dates.
	dateExpr = `(` + monthExpr + `\s+[0-9]{1,2},?\s+[0-9]{4}` +
		`|[0-9]{1,2}(?:ST|ND|RD|TH)?\s+DAY\s+OF\s+` + monthExpr + `,?\s+[0-9]{4}` +
		`|[0-9]{1,2}/[0-9]{1,2}/[0-9]{2,4})`

	// nameExpr captures an organisation or person name up to a delimiter.
	nameExpr = `([A-Z0-9][A-Z0-9&.' -]{2,80}?)\s*(?:,|;|\(|\n|$)`
)

// Cross-reference patterns shared by every category that cites other instruments.
var (
	instrumentNoPattern = regexp.MustCompile(`\bINSTRUMENT\s*(?:NO\.?|NUMBER|#)\s*:?\s*#?\s*([0-9]{6,12})\b`)
	bookPagePattern     = regexp.MustCompile(`\bBOOK\s+([0-9]{1,6})\s*,?\s*(?:AT\s+)?PAGES?\s+([0-9]{1,6})\b`)
	cfnPattern          = regexp.MustCompile(`\b(?:CFN|CLERK'?S\s+FILE\s+(?:NO\.?|NUMBER))\s*#?\s*:?\s*([0-9]{4}R?[0-9]{5,10})\b`)
	docNoPattern        = regexp.MustCompile(`\bDOC(?:UMENT)?\.?\s*(?:NO\.?|NUMBER|#)\s*:?\s*#?\s*([0-9]{6,12})\b`)
)

// Rule names for cross-references.
const (
	ruleInstrumentNo = "instrument_number"
	ruleBookPage     = "book_page"
	ruleCFN          = "cfn"
	ruleDocNo        = "document_number"
)

// referenceRules lists every cross-reference pattern for Collect.
func referenceRules() []Rule[string] {
	return []Rule[string]{
		{Name: ruleInstrumentNo, Pattern: instrumentNoPattern, Transform: group(1)},
		{Name: ruleBookPage, Pattern: bookPagePattern, Transform: bookPage(1, 2)},
		{Name: ruleCFN, Pattern: cfnPattern, Transform: group(1)},
		{Name: ruleDocNo, Pattern: docNoPattern, Transform: group(1)},
	}
}

// DefaultInstitutions are lender name fragments common in Florida records.
var DefaultInstitutions = []string{
	"WELLS FARGO",
	"BANK OF AMERICA",
	"JPMORGAN CHASE",
	"CHASE BANK",
	"CITIBANK",
	"CITIMORTGAGE",
	"SUNTRUST",
	"TRUIST",
	"REGIONS BANK",
	"U.S. BANK",
	"US BANK",
	"PNC BANK",
	"BB&T",
	"FIFTH THIRD",
	"TD BANK",
	"CAPITAL ONE",
	"QUICKEN LOANS",
	"ROCKET MORTGAGE",
	"LOANDEPOT",
	"FLAGSTAR",
	"NATIONSTAR",
	"MR. COOPER",
	"OCWEN",
	"COUNTRYWIDE",
	"WASHINGTON MUTUAL",
	"WACHOVIA",
	"BANKUNITED",
	"CITY NATIONAL BANK",
	"OCEAN BANK",
	"MORTGAGE ELECTRONIC REGISTRATION SYSTEMS",
}

// institutionSuffixExpr extends a matched fragment over common name tails.
const institutionSuffixExpr = `(?:\s+(?:BANK|HOME|MORTGAGE|LOANS?|FINANCIAL|SAVINGS|FEDERAL|CREDIT|UNION|NATIONAL|ASSOCIATION|TRUST|COMPANY|CORPORATION|CORP\.?|INC\.?|LLC|FSB|N\.A\.|NA|OF|AMERICA|FLORIDA|SERVICES|SERVICING))*`

// institutionPattern builds the known-institution rule pattern, or nil
// when there are no fragments.
func institutionPattern(fragments []string) *regexp.Regexp {
	quoted := make([]string, 0, len(fragments))
	seen := make(map[string]bool)
	for _, f := range fragments {
		f = strings.ToUpper(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		quoted = append(quoted, regexp.QuoteMeta(f))
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`\b((?:` + strings.Join(quoted, "|") + `)` + institutionSuffixExpr + `)`)
}

// nationalAssociationPattern catches "<NAME>, N.A." for institutions not in the list.
var nationalAssociationPattern = regexp.MustCompile(`\b((?:[A-Z&']+ ){0,4}[A-Z&']+),?\s+N\.\s?A\.`)

// nameStopwords are captures that are never a party name.
var nameStopwords = map[string]bool{
	"THE":  true,
	"AND":  true,
	"FOR":  true,
	"THIS": true,
	"THAT": true,
}

// plausibleName rejects stopwords and captures under four characters.
func plausibleName(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return false
	}
	return !nameStopwords[s]
}

// partyChain builds the ordered name rules for lenders and claimants.
// labels is an alternation of field labels such as "MORTGAGEE|LENDER".
func partyChain(labels string, institutions []string) Chain[string] {
	rules := []Rule[string]{
		{
			Name:      "label",
			Pattern:   regexp.MustCompile(`(?m)\b(?:` + labels + `)\s*:\s*` + nameExpr),
			Transform: group(1),
		},
		{
			Name:      "in_favor_of",
			Pattern:   regexp.MustCompile(`(?m)\bIN\s+FAVOR\s+OF\s+` + nameExpr),
			Transform: group(1),
		},
	}
	if p := institutionPattern(institutions); p != nil {
		rules = append(rules, Rule[string]{Name: "known_institution", Pattern: p, Transform: group(1)})
	}
	rules = append(rules, Rule[string]{
		Name:      "national_association",
		Pattern:   nationalAssociationPattern,
		Transform: nationalAssociation,
	})
	return Chain[string]{Rules: rules, Accept: plausibleName}
}

func nationalAssociation(m []string) (string, bool) {
	name := cleanCapture(m[1])
	if name == "" {
		return "", false
	}
	return name + ", N.A.", true
}
