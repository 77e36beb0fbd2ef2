package classifier

import "github.com/custodia-labs/titlescan/internal/core/domain"

// CorporateTaxLienCode is the registry's short code for corporate tax liens.
const CorporateTaxLienCode = "LNCORPTX"

// codeTable maps registry short codes to categories. Lookup is case-sensitive.
var codeTable = map[string]domain.Category{
	"D": domain.CategoryDeed,

	"MTG":     domain.CategoryMortgage,
	"MTGREV":  domain.CategoryMortgage,
	"MTGNDOC": domain.CategoryMortgage,
	"MTGNT":   domain.CategoryMortgage,
	"MTGNIT":  domain.CategoryMortgage,

	"SAT":       domain.CategorySatisfaction,
	"SATCORPTX": domain.CategorySatisfaction,

	"LN":                 domain.CategoryLien,
	"MEDLN":              domain.CategoryLien,
	CorporateTaxLienCode: domain.CategoryLien,

	"LP":  domain.CategoryLisPendens,
	"JUD": domain.CategoryJudgment,

	"REL":   domain.CategoryRelease,
	"RELLP": domain.CategoryRelease,

	"ASG":   domain.CategoryAssignment,
	"ASGT":  domain.CategoryAssignment,
	"ASINT": domain.CategoryAssignment,

	"EAS": domain.CategoryEasement,
	"RST": domain.CategoryRestriction,
	"MOD": domain.CategoryModification,
}

// Codes returns the short codes mapped to category.
func Codes(category domain.Category) []string {
	var codes []string
	for code, c := range codeTable {
		if c == category {
			codes = append(codes, code)
		}
	}
	return codes
}
