package domain

import "fmt"

// MatchWeights are the matcher's signal weights and thresholds.
// Every constant the matcher uses lives here so that scoring can be
// tuned from configuration and perturbed in tests.
type MatchWeights struct {
	// Multi-signal mode.
	InstrumentNumber   int
	BookPage           int
	Amount             int
	Lender             int
	Grantor            int
	TemporalBonus      int
	TemporalPenalty    int
	AcceptFloor        int
	HighTier           int
	MediumTier         int
	AmountTolerancePct float64

	// Name-only fallback mode.
	FallbackTemporal int
	FallbackGrantor  int
	FallbackFloor    int
}

// DefaultMatchWeights returns the stock weights.
func DefaultMatchWeights() MatchWeights {
	return MatchWeights{
		InstrumentNumber:   100,
		BookPage:           90,
		Amount:             30,
		Lender:             20,
		Grantor:            10,
		TemporalBonus:      5,
		TemporalPenalty:    20,
		AcceptFloor:        30,
		HighTier:           90,
		MediumTier:         50,
		AmountTolerancePct: 1,
		FallbackTemporal:   10,
		FallbackGrantor:    5,
		FallbackFloor:      10,
	}
}

// ExtractSettings tune the text-signal extractor.
type ExtractSettings struct {
	// MinTextLength is the shortest text worth running rules against.
	MinTextLength int

	// KnownInstitutions are extra lender name fragments appended to the
	// built-in list.
	KnownInstitutions []string
}

// ScanSettings bound the batch text extraction stage.
type ScanSettings struct {
	Concurrency   int
	RatePerSecond float64
	Burst         int
}

// RiskSettings tune the flag engine.
type RiskSettings struct {
	// QuickFlipDays is the exclusive upper bound for a quick resale.
	QuickFlipDays int
}

// Settings holds all application settings.
type Settings struct {
	Match   MatchWeights
	Extract ExtractSettings
	Scan    ScanSettings
	Risk    RiskSettings
}

// DefaultSettings returns settings with stock values.
func DefaultSettings() Settings {
	return Settings{
		Match: DefaultMatchWeights(),
		Extract: ExtractSettings{
			MinTextLength: 50,
		},
		Scan: ScanSettings{
			Concurrency:   4,
			RatePerSecond: 5,
			Burst:         5,
		},
		Risk: RiskSettings{
			QuickFlipDays: 90,
		},
	}
}

// Validate reports the first out-of-range setting.
func (s Settings) Validate() error {
	m := s.Match
	weights := []struct {
		key   string
		value int
	}{
		{"matcher.weight.instrument", m.InstrumentNumber},
		{"matcher.weight.book_page", m.BookPage},
		{"matcher.weight.amount", m.Amount},
		{"matcher.weight.lender", m.Lender},
		{"matcher.weight.grantor", m.Grantor},
		{"matcher.weight.temporal_bonus", m.TemporalBonus},
		{"matcher.weight.temporal_penalty", m.TemporalPenalty},
		{"matcher.fallback.temporal", m.FallbackTemporal},
		{"matcher.fallback.grantor", m.FallbackGrantor},
	}
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, w.key)
		}
	}
	switch {
	case m.AcceptFloor < 1:
		return fmt.Errorf("%w: matcher.accept_floor must be at least 1", ErrInvalidInput)
	case m.FallbackFloor < 1:
		return fmt.Errorf("%w: matcher.fallback.floor must be at least 1", ErrInvalidInput)
	case m.HighTier < m.MediumTier:
		return fmt.Errorf("%w: matcher.tier.high must not be below matcher.tier.medium", ErrInvalidInput)
	case m.AmountTolerancePct < 0:
		return fmt.Errorf("%w: matcher.amount_tolerance_pct must not be negative", ErrInvalidInput)
	case s.Extract.MinTextLength < 1:
		return fmt.Errorf("%w: extract.min_text_length must be at least 1", ErrInvalidInput)
	case s.Scan.Concurrency < 1:
		return fmt.Errorf("%w: scan.concurrency must be at least 1", ErrInvalidInput)
	case s.Scan.RatePerSecond < 0:
		return fmt.Errorf("%w: scan.rate_per_second must not be negative", ErrInvalidInput)
	case s.Scan.Burst < 0:
		return fmt.Errorf("%w: scan.burst must not be negative", ErrInvalidInput)
	case s.Risk.QuickFlipDays < 1:
		return fmt.Errorf("%w: risk.quick_flip_days must be at least 1", ErrInvalidInput)
	}
	return nil
}

// SettingValue is one configurable key with its effective and default values.
type SettingValue struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Default   string `json:"default"`
	IsDefault bool   `json:"isDefault"`
}
