package classifier

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code string
		want domain.Category
	}{
		{"D", domain.CategoryDeed},
		{"MTG", domain.CategoryMortgage},
		{"MTGREV", domain.CategoryMortgage},
		{"MTGNDOC", domain.CategoryMortgage},
		{"MTGNT", domain.CategoryMortgage},
		{"MTGNIT", domain.CategoryMortgage},
		{"SAT", domain.CategorySatisfaction},
		{"SATCORPTX", domain.CategorySatisfaction},
		{"LN", domain.CategoryLien},
		{"MEDLN", domain.CategoryLien},
		{"LNCORPTX", domain.CategoryLien},
		{"LP", domain.CategoryLisPendens},
		{"JUD", domain.CategoryJudgment},
		{"REL", domain.CategoryRelease},
		{"RELLP", domain.CategoryRelease},
		{"ASG", domain.CategoryAssignment},
		{"ASGT", domain.CategoryAssignment},
		{"ASINT", domain.CategoryAssignment},
		{"EAS", domain.CategoryEasement},
		{"RST", domain.CategoryRestriction},
		{"MOD", domain.CategoryModification},
		{"mtg", domain.CategoryOther},
		{"", domain.CategoryOther},
		{"XYZ", domain.CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.code))
		})
	}
}

func TestCodes(t *testing.T) {
	assert.ElementsMatch(t, []string{"SAT", "SATCORPTX"}, Codes(domain.CategorySatisfaction))
	assert.Empty(t, Codes(domain.CategoryOther))
}

func TestGroup_AllCategoriesPresent(t *testing.T) {
	groups := Group(nil)

	require.Len(t, groups, len(domain.AllCategories()))
	for _, c := range domain.AllCategories() {
		assert.NotNil(t, groups[c], "bucket %s", c)
		assert.Empty(t, groups[c])
	}
}

func TestGroup_SortsNewestFirstAndIsStable(t *testing.T) {
	docs := []domain.Document{
		{InstrumentNumber: "a", DocTypeShort: "MTG", RecordTimestamp: 100},
		{InstrumentNumber: "b", DocTypeShort: "MTG", RecordTimestamp: 300},
		{InstrumentNumber: "c", DocTypeShort: "MTG", RecordTimestamp: 200},
		{InstrumentNumber: "d", DocTypeShort: "MTG", RecordTimestamp: 300},
		{InstrumentNumber: "e", DocTypeShort: "D", RecordTimestamp: 50},
	}

	groups := Group(docs)

	mortgages := groups[domain.CategoryMortgage]
	require.Len(t, mortgages, 4)
	assert.Equal(t, "b", mortgages[0].InstrumentNumber)
	assert.Equal(t, "d", mortgages[1].InstrumentNumber)
	assert.Equal(t, "c", mortgages[2].InstrumentNumber)
	assert.Equal(t, "a", mortgages[3].InstrumentNumber)
	assert.Len(t, groups[domain.CategoryDeed], 1)
}

func TestGroup_DoesNotReorderInput(t *testing.T) {
	docs := []domain.Document{
		{InstrumentNumber: "a", DocTypeShort: "D", RecordTimestamp: 1},
		{InstrumentNumber: "b", DocTypeShort: "D", RecordTimestamp: 2},
	}

	Group(docs)

	assert.Equal(t, "a", docs[0].InstrumentNumber)
}

func TestGroup_TotalAndExhaustive(t *testing.T) {
	codes := []string{"D", "MTG", "SAT", "LN", "LP", "JUD", "REL", "ASG", "EAS", "RST", "MOD", "??", "mtg", ""}
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := rng.Intn(40)
		docs := make([]domain.Document, n)
		for i := range docs {
			docs[i] = domain.Document{
				DocumentID:      string(rune('A'+i%26)) + string(rune('0'+i/26)),
				DocTypeShort:    codes[rng.Intn(len(codes))],
				RecordTimestamp: int64(rng.Intn(5)),
			}
		}

		groups := Group(docs)

		assert.Equal(t, n, groups.Count())
		seen := make(map[string]int)
		for c, bucket := range groups {
			for i, d := range bucket {
				assert.Equal(t, c, CategoryOf(d))
				seen[d.DocumentID]++
				if i > 0 {
					assert.GreaterOrEqual(t, bucket[i-1].RecordTimestamp, d.RecordTimestamp)
				}
			}
		}
		for _, d := range docs {
			assert.Equal(t, 1, seen[d.DocumentID])
		}
	}
}
