package landrecord

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

func fixedUUID() string { return "00000000-0000-0000-0000-000000000001" }

func TestNormalise_FullRecord(t *testing.T) {
	n := New(WithUUIDFunc(fixedUUID))
	raw := domain.RawRecord{Fields: map[string]any{
		"instrumentNumber": "2020012345",
		"grantors":         []any{"SMITH JOHN", "SMITH JANE"},
		"grantees":         []any{"WELLS FARGO BANK NA"},
		"recordTimestamp":  float64(1577836800),
		"docType":          "MORTGAGE (MTG)",
		"legalDescription": "LOT 4 BLOCK 2 PALM ESTATES",
		"salesPrice":       float64(0),
		"pageCount":        float64(12),
		"documentId":       "D-1",
		"uuid":             "abc-123",
		"bookNum":          "31234",
		"pageNum":          "1001",
	}}

	doc := n.Normalise(raw)

	assert.Equal(t, "2020012345", doc.InstrumentNumber)
	assert.Equal(t, []string{"SMITH JOHN", "SMITH JANE"}, doc.Grantors)
	assert.Equal(t, []string{"WELLS FARGO BANK NA"}, doc.Grantees)
	assert.Equal(t, int64(1577836800), doc.RecordTimestamp)
	assert.Equal(t, "01/01/2020", doc.RecordDate)
	assert.Equal(t, "MORTGAGE (MTG)", doc.DocType)
	assert.Equal(t, "MTG", doc.DocTypeShort)
	assert.Equal(t, "LOT 4 BLOCK 2 PALM ESTATES", doc.LegalDescription)
	require.NotNil(t, doc.SalesPrice)
	assert.Equal(t, 0.0, *doc.SalesPrice)
	assert.Equal(t, 12, doc.PageCount)
	assert.Equal(t, "D-1", doc.DocumentID)
	assert.Equal(t, "abc-123", doc.UUID)
	assert.Equal(t, "31234", doc.BookNum)
	assert.Equal(t, "1001", doc.PageNum)
	assert.Nil(t, doc.ExtractedData)
}

func TestNormalise_EmptyRecordDefaults(t *testing.T) {
	n := New(WithUUIDFunc(fixedUUID))

	doc := n.Normalise(domain.RawRecord{})

	assert.Equal(t, "", doc.InstrumentNumber)
	assert.NotNil(t, doc.Grantors)
	assert.Empty(t, doc.Grantors)
	assert.NotNil(t, doc.Grantees)
	assert.Empty(t, doc.Grantees)
	assert.Equal(t, int64(0), doc.RecordTimestamp)
	assert.Equal(t, "", doc.RecordDate)
	assert.Nil(t, doc.SalesPrice)
	assert.Equal(t, 0, doc.PageCount)
	assert.Equal(t, "", doc.DocTypeShort)
	assert.Equal(t, fixedUUID(), doc.UUID)
}

func TestNormalise_OddTypes(t *testing.T) {
	n := New(WithUUIDFunc(fixedUUID))
	raw := domain.RawRecord{Fields: map[string]any{
		"InstrumentNumber": json.Number("2019000777"),
		"Grantor":          "DOE JOHN; DOE MARY ; ",
		"Grantee":          []string{"ACME LLC"},
		"RecordTimestamp":  "1577836800",
		"DocType":          "WARRANTY DEED",
		"SalesPrice":       "$250,000.00",
		"Book":             float64(123),
		"Page":             456,
	}}

	doc := n.Normalise(raw)

	assert.Equal(t, "2019000777", doc.InstrumentNumber)
	assert.Equal(t, []string{"DOE JOHN", "DOE MARY"}, doc.Grantors)
	assert.Equal(t, []string{"ACME LLC"}, doc.Grantees)
	assert.Equal(t, int64(1577836800), doc.RecordTimestamp)
	assert.Equal(t, "WARRANTY DEED", doc.DocTypeShort)
	require.NotNil(t, doc.SalesPrice)
	assert.Equal(t, 250000.0, *doc.SalesPrice)
	assert.Equal(t, "123", doc.BookNum)
	assert.Equal(t, "456", doc.PageNum)
}

func TestNormalise_MillisecondTimestamp(t *testing.T) {
	n := New(WithUUIDFunc(fixedUUID))
	raw := domain.RawRecord{Fields: map[string]any{"recordTimestamp": float64(1577836800000)}}

	doc := n.Normalise(raw)

	assert.Equal(t, int64(1577836800), doc.RecordTimestamp)
}

func TestNormalise_UnparseableValuesIgnored(t *testing.T) {
	n := New(WithUUIDFunc(fixedUUID))
	raw := domain.RawRecord{Fields: map[string]any{
		"recordTimestamp": "yesterday",
		"salesPrice":      "n/a",
		"grantors":        map[string]any{"x": 1},
	}}

	doc := n.Normalise(raw)

	assert.Equal(t, int64(0), doc.RecordTimestamp)
	assert.Nil(t, doc.SalesPrice)
	assert.Empty(t, doc.Grantors)
}

func TestShortCode(t *testing.T) {
	tests := []struct {
		docType string
		want    string
	}{
		{"MORTGAGE (MTG)", "MTG"},
		{"SATISFACTION (SAT)", "SAT"},
		{"LIEN (LNCORPTX) (OLD)", "LNCORPTX"},
		{"DEED", "DEED"},
		{"", ""},
		{"ODD ( LP )", "LP"},
	}
	for _, tt := range tests {
		t.Run(tt.docType, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortCode(tt.docType))
		})
	}
}

func TestNormaliseAll_PreservesOrder(t *testing.T) {
	n := New(WithUUIDFunc(fixedUUID))
	raws := []domain.RawRecord{
		{Fields: map[string]any{"instrumentNumber": "3"}},
		{Fields: map[string]any{"instrumentNumber": "1"}},
		{Fields: map[string]any{"instrumentNumber": "2"}},
	}

	docs := n.NormaliseAll(raws)

	require.Len(t, docs, 3)
	assert.Equal(t, "3", docs[0].InstrumentNumber)
	assert.Equal(t, "1", docs[1].InstrumentNumber)
	assert.Equal(t, "2", docs[2].InstrumentNumber)
}

func TestNew_GeneratesUUIDByDefault(t *testing.T) {
	doc := New().Normalise(domain.RawRecord{})
	assert.Len(t, doc.UUID, 36)
}

func TestParseAmount(t *testing.T) {
	v, ok := ParseAmount("$1,234.50")
	assert.True(t, ok)
	assert.Equal(t, 1234.5, v)

	_, ok = ParseAmount("")
	assert.False(t, ok)

	_, ok = ParseAmount("abc")
	assert.False(t, ok)
}

func TestNormalise_PreEpochTimestamps(t *testing.T) {
	n := New(WithUUIDFunc(fixedUUID))

	seconds := n.Normalise(domain.RawRecord{Fields: map[string]any{"recordTimestamp": float64(-315619200)}})
	millis := n.Normalise(domain.RawRecord{Fields: map[string]any{"recordTimestamp": float64(-157766400000)}})

	assert.Equal(t, int64(-315619200), seconds.RecordTimestamp)
	assert.Equal(t, "01/01/1960", seconds.RecordDate)
	assert.Equal(t, int64(-157766400), millis.RecordTimestamp)
	assert.Equal(t, "01/01/1965", millis.RecordDate)
}

func TestRecordKey(t *testing.T) {
	t.Run("uses instrument and document id", func(t *testing.T) {
		raw := domain.RawRecord{Fields: map[string]any{"instrumentNumber": "2020000001", "documentId": "D-1"}}
		assert.Equal(t, "2020000001|D-1", RecordKey(raw))
	})

	t.Run("uses uuid when carried", func(t *testing.T) {
		raw := domain.RawRecord{Fields: map[string]any{"uuid": "abc-123"}}
		assert.Equal(t, "abc-123", RecordKey(raw))
	})

	t.Run("hashes fields when no identity is carried", func(t *testing.T) {
		a := domain.RawRecord{Fields: map[string]any{"grantors": []any{"SMITH JOHN"}, "docType": "DEED (D)"}}
		b := domain.RawRecord{Fields: map[string]any{"docType": "DEED (D)", "grantors": []any{"SMITH JOHN"}}}
		c := domain.RawRecord{Fields: map[string]any{"docType": "DEED (D)", "grantors": []any{"DOE JANE"}}}

		key := RecordKey(a)
		assert.Contains(t, key, "sha256:")
		assert.Equal(t, key, RecordKey(b))
		assert.NotEqual(t, key, RecordKey(c))
	})
}
