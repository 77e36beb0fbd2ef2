package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

func samplePackage() *domain.TitlePackage {
	price := 250000.0
	mtg := domain.Document{InstrumentNumber: "2019012345", RecordDate: "03/01/2019", Grantees: []string{"WELLS FARGO BANK"}}
	sat := domain.Document{InstrumentNumber: "2022000777", RecordDate: "06/01/2022"}
	open := domain.Document{InstrumentNumber: "2021000050", RecordDate: "01/15/2021", Grantees: []string{"ACME LENDING"}}
	lien := domain.Document{InstrumentNumber: "2023000002", RecordDate: "01/01/2023"}

	return &domain.TitlePackage{
		RunID:       "run-1",
		Owner:       "SMITH JOHN",
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Chain: []domain.ChainEntry{{
			Sequence: 1, RecordDate: "06/01/2018", Grantors: []string{"SELLER ALICE"},
			Grantees: []string{"SMITH JOHN"}, DocType: "WARRANTY DEED (D)", SalesPrice: &price,
		}},
		Mortgages: domain.EncumbranceAnalysis{
			Mode:      domain.MatchModeMultiSignal,
			Satisfied: []domain.Match{{Encumbrance: mtg, Discharge: &sat, Score: 155, Confidence: domain.ConfidenceHigh}},
			Open:      []domain.Document{open},
		},
		Liens: domain.EncumbranceAnalysis{Mode: domain.MatchModeNameOnly, Open: []domain.Document{lien}},
		Flags: []domain.Flag{{
			Severity: domain.SeverityHigh, Type: domain.FlagLisPendens, Message: "1 active lis pendens",
		}},
		Summary: domain.Summary{
			TotalDocuments: 5, ChainLength: 1, OpenMortgages: 1, SatisfiedMortgages: 1,
			OpenLiens: 1, FlagCount: 1, HighFlags: 1, NeedsReview: 1, ScannedMode: true,
			RiskLevel: domain.RiskHigh,
		},
		ReviewQueue: []string{"MTG-2"},
	}
}

func TestRender_Plain(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, samplePackage(), PlainStyles()))

	out := buf.String()
	assert.Contains(t, out, "Title report: SMITH JOHN")
	assert.Contains(t, out, "Risk: HIGH")
	assert.Contains(t, out, "Documents:  5 (scanned)")
	assert.Contains(t, out, "[HIGH] lis_pendens: 1 active lis pendens")
	assert.Contains(t, out, "1. 06/01/2018  SELLER ALICE -> SMITH JOHN  WARRANTY DEED (D)  $250000.00")
	assert.Contains(t, out, "Mortgages (multi_signal)")
	assert.Contains(t, out, "DONE 2019012345 satisfied by 2022000777  score 155, high confidence")
	assert.Contains(t, out, "OPEN 2021000050  01/15/2021  ACME LENDING")
	assert.Contains(t, out, "Liens (name_only)")
	assert.Contains(t, out, "Manual review\n  MTG-2")
	assert.NotContains(t, out, "\x1b[")
}

func TestRender_NilStylesIsPlain(t *testing.T) {
	var withNil, plain bytes.Buffer

	require.NoError(t, Render(&withNil, samplePackage(), nil))
	require.NoError(t, Render(&plain, samplePackage(), PlainStyles()))

	assert.Equal(t, plain.String(), withNil.String())
}

func TestRender_EmptyPackageSkipsSections(t *testing.T) {
	var buf bytes.Buffer
	pkg := &domain.TitlePackage{Owner: "NOBODY", Summary: domain.Summary{RiskLevel: domain.RiskLow}}

	require.NoError(t, Render(&buf, pkg, PlainStyles()))

	out := buf.String()
	assert.Contains(t, out, "Risk: LOW")
	assert.Contains(t, out, "(name-only)")
	assert.NotContains(t, out, "Flags\n")
	assert.NotContains(t, out, "Chain of title")
	assert.NotContains(t, out, "Mortgages (")
}

func TestStyles_RiskAndSeverity(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, s.High, s.Risk(domain.RiskHigh))
	assert.Equal(t, s.Medium, s.Risk(domain.RiskMedium))
	assert.Equal(t, s.Low, s.Risk(domain.RiskLow))
	assert.Equal(t, s.High, s.Severity(domain.SeverityHigh))
	assert.Equal(t, s.Medium, s.Severity(domain.SeverityMedium))
}

func TestDefaultTheme_ColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()
	seen := map[string]bool{}
	for _, c := range []string{
		string(theme.Primary), string(theme.Secondary), string(theme.Success),
		string(theme.Warning), string(theme.Error),
	} {
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}
}
