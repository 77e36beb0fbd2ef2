package mcp

import (
	"context"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driving"
)

// mockTitleService is a mock implementation of driving.TitleService.
type mockTitleService struct {
	pkg     *domain.TitlePackage
	err     error
	lastReq domain.AnalyzeRequest
}

func (m *mockTitleService) Analyze(_ context.Context, req domain.AnalyzeRequest) (*domain.TitlePackage, error) {
	m.lastReq = req
	return m.pkg, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	values []domain.SettingValue
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := domain.DefaultSettings()
	return &s, nil
}

func (m *mockSettingsService) Set(_, _ string) error { return nil }

func (m *mockSettingsService) Values() []domain.SettingValue { return m.values }

func (m *mockSettingsService) GetDefaults() domain.Settings { return domain.DefaultSettings() }

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	count int
	err   error
}

func (m *mockRecordService) Import(_ context.Context, raws []domain.RawRecord) (int, error) {
	return len(raws), m.err
}

func (m *mockRecordService) Count(_ context.Context) (int, error) {
	return m.count, m.err
}

// Verify mocks implement interfaces.
var (
	_ driving.TitleService    = (*mockTitleService)(nil)
	_ driving.SettingsService = (*mockSettingsService)(nil)
	_ driving.RecordService   = (*mockRecordService)(nil)
)

func samplePackage() *domain.TitlePackage {
	mtg := domain.Document{InstrumentNumber: "2019012345"}
	sat := domain.Document{InstrumentNumber: "2022000777"}
	lp := domain.Document{InstrumentNumber: "2023000001", DocumentID: "LP-1"}
	return &domain.TitlePackage{
		RunID: "run-1",
		Owner: "SMITH JOHN",
		Mortgages: domain.EncumbranceAnalysis{
			Mode: domain.MatchModeMultiSignal,
			Satisfied: []domain.Match{{
				Encumbrance: mtg, Discharge: &sat, Score: 155,
				Confidence: domain.ConfidenceHigh, Reasons: []string{domain.SignalInstrumentNumber},
			}},
			Open:                []domain.Document{{DocumentID: "D-9", UUID: "u-9"}},
			UnmatchedDischarges: []domain.Document{},
		},
		Liens: domain.EncumbranceAnalysis{Mode: domain.MatchModeNameOnly},
		Flags: []domain.Flag{{
			Severity: domain.SeverityHigh, Type: domain.FlagLisPendens,
			Message: "1 active lis pendens", Documents: []domain.Document{lp},
		}},
		Summary: domain.Summary{RiskLevel: domain.RiskHigh, FlagCount: 1, HighFlags: 1},
	}
}
