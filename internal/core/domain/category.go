package domain

// Category is the semantic bucket a Document is classified into.
type Category string

// Available categories.
const (
	CategoryDeed         Category = "Deed"
	CategoryMortgage     Category = "Mortgage"
	CategorySatisfaction Category = "Satisfaction"
	CategoryLien         Category = "Lien"
	CategoryLisPendens   Category = "LisPendens"
	CategoryEasement     Category = "Easement"
	CategoryRestriction  Category = "Restriction"
	CategoryJudgment     Category = "Judgment"
	CategoryRelease      Category = "Release"
	CategoryAssignment   Category = "Assignment"
	CategoryModification Category = "Modification"
	CategoryOther        Category = "Other"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryDeed,
		CategoryMortgage,
		CategorySatisfaction,
		CategoryLien,
		CategoryLisPendens,
		CategoryEasement,
		CategoryRestriction,
		CategoryJudgment,
		CategoryRelease,
		CategoryAssignment,
		CategoryModification,
		CategoryOther,
	}
}

// IsValid returns true if the category is recognised.
func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// IsEncumbrance reports whether documents of this category burden title.
func (c Category) IsEncumbrance() bool {
	return c == CategoryMortgage || c == CategoryLien
}

// IsDischarge reports whether documents of this category release a burden.
func (c Category) IsDischarge() bool {
	return c == CategorySatisfaction || c == CategoryRelease
}

// Scannable reports whether text extraction has a rule set for the category.
func (c Category) Scannable() bool {
	switch c {
	case CategoryDeed, CategoryMortgage, CategorySatisfaction, CategoryLien, CategoryRelease:
		return true
	default:
		return false
	}
}

// Groups holds classified documents keyed by category.
// Each bucket is ordered newest first.
type Groups map[Category][]Document

// Count returns the total number of grouped documents.
func (g Groups) Count() int {
	n := 0
	for _, docs := range g {
		n += len(docs)
	}
	return n
}
