package cli

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/custodia-labs/titlescan/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driving"
	"github.com/custodia-labs/titlescan/internal/core/services"
	"github.com/custodia-labs/titlescan/internal/normalisers/landrecord"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// fakeFactory wires real services over in-memory stores.
type fakeFactory struct {
	config   *memory.ConfigStore
	store    *memory.RecordStore
	files    map[string][]domain.RawRecord
	titleErr error

	lastSources SourceOptions
	lastDBDir   string
	closed      int
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		config: memory.NewConfigStore(),
		store:  memory.NewRecordStore(),
		files:  map[string][]domain.RawRecord{},
	}
}

func (f *fakeFactory) Settings(_ string) (driving.SettingsService, error) {
	return services.NewSettingsService(f.config), nil
}

func (f *fakeFactory) Title(settings domain.Settings, src SourceOptions) (driving.TitleService, io.Closer, error) {
	f.lastSources = src
	if f.titleErr != nil {
		return nil, nil, f.titleErr
	}
	svc := services.NewTitleService(f.store, landrecord.New(),
		services.WithSettings(settings),
		services.WithIDFunc(func() string { return "run-1" }),
		services.WithClock(func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }),
	)
	return svc, closerFunc(func() error { f.closed++; return nil }), nil
}

func (f *fakeFactory) Records(dbDir string) (driving.RecordService, io.Closer, error) {
	f.lastDBDir = dbDir
	return services.NewRecordService(f.store), closerFunc(func() error { f.closed++; return nil }), nil
}

func (f *fakeFactory) ReadRecords(path string) ([]domain.RawRecord, error) {
	raws, ok := f.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return raws, nil
}

// setupTestFactory installs a fake factory and resets flag state afterwards.
func setupTestFactory(t *testing.T) *fakeFactory {
	t.Helper()
	f := newFakeFactory()
	SetFactory(f)
	t.Cleanup(func() {
		SetFactory(nil)
		analyzeSources = SourceOptions{}
		analyzeScan = false
		analyzeFormat = formatText
		recordsDBDir = ""
		configJSON = false
		rootCmd.SetArgs(nil)
	})
	return f
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func rec(instrument, docType string, ts int64, grantors, grantees []any) domain.RawRecord {
	return domain.RawRecord{Fields: map[string]any{
		"instrumentNumber": instrument,
		"docType":          docType,
		"recordTimestamp":  float64(ts),
		"grantors":         grantors,
		"grantees":         grantees,
	}}
}

func sampleRecords() []domain.RawRecord {
	return []domain.RawRecord{
		rec("2018000001", "WARRANTY DEED (D)", 1527811200, []any{"SELLER ALICE"}, []any{"SMITH JOHN"}),
		rec("2019012345", "MORTGAGE (MTG)", 1551398400, []any{"SMITH JOHN"}, []any{"WELLS FARGO BANK NA"}),
		rec("2023000001", "LIS PENDENS (LP)", 1672531200, []any{"BANK"}, []any{"SMITH JOHN"}),
	}
}
