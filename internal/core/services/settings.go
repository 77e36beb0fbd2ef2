package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/titlescan/internal/core/domain"
	"github.com/custodia-labs/titlescan/internal/core/ports/driven"
	"github.com/custodia-labs/titlescan/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyWeightInstrument      = "matcher.weight.instrument"
	keyWeightBookPage        = "matcher.weight.book_page"
	keyWeightAmount          = "matcher.weight.amount"
	keyWeightLender          = "matcher.weight.lender"
	keyWeightGrantor         = "matcher.weight.grantor"
	keyWeightTemporalBonus   = "matcher.weight.temporal_bonus"
	keyWeightTemporalPenalty = "matcher.weight.temporal_penalty"
	keyAcceptFloor           = "matcher.accept_floor"
	keyTierHigh              = "matcher.tier.high"
	keyTierMedium            = "matcher.tier.medium"
	keyAmountTolerance       = "matcher.amount_tolerance_pct"
	keyFallbackTemporal      = "matcher.fallback.temporal"
	keyFallbackGrantor       = "matcher.fallback.grantor"
	keyFallbackFloor         = "matcher.fallback.floor"
	keyMinTextLength         = "extract.min_text_length"
	keyKnownInstitutions     = "extract.known_institutions"
	keyScanConcurrency       = "scan.concurrency"
	keyScanRate              = "scan.rate_per_second"
	keyScanBurst             = "scan.burst"
	keyQuickFlipDays         = "risk.quick_flip_days"
)

type settingKind int

const (
	kindInt settingKind = iota
	kindFloat
	kindList
)

// setting binds a config key to its field in domain.Settings.
// Exactly one of intField, floatField and listField is set, matching kind.
type setting struct {
	key        string
	kind       settingKind
	intField   func(*domain.Settings) *int
	floatField func(*domain.Settings) *float64
	listField  func(*domain.Settings) *[]string
}

func intSetting(key string, field func(*domain.Settings) *int) setting {
	return setting{key: key, kind: kindInt, intField: field}
}

func floatSetting(key string, field func(*domain.Settings) *float64) setting {
	return setting{key: key, kind: kindFloat, floatField: field}
}

// settings lists every key in display order.
var settings = []setting{
	intSetting(keyWeightInstrument, func(s *domain.Settings) *int { return &s.Match.InstrumentNumber }),
	intSetting(keyWeightBookPage, func(s *domain.Settings) *int { return &s.Match.BookPage }),
	intSetting(keyWeightAmount, func(s *domain.Settings) *int { return &s.Match.Amount }),
	intSetting(keyWeightLender, func(s *domain.Settings) *int { return &s.Match.Lender }),
	intSetting(keyWeightGrantor, func(s *domain.Settings) *int { return &s.Match.Grantor }),
	intSetting(keyWeightTemporalBonus, func(s *domain.Settings) *int { return &s.Match.TemporalBonus }),
	intSetting(keyWeightTemporalPenalty, func(s *domain.Settings) *int { return &s.Match.TemporalPenalty }),
	intSetting(keyAcceptFloor, func(s *domain.Settings) *int { return &s.Match.AcceptFloor }),
	intSetting(keyTierHigh, func(s *domain.Settings) *int { return &s.Match.HighTier }),
	intSetting(keyTierMedium, func(s *domain.Settings) *int { return &s.Match.MediumTier }),
	floatSetting(keyAmountTolerance, func(s *domain.Settings) *float64 { return &s.Match.AmountTolerancePct }),
	intSetting(keyFallbackTemporal, func(s *domain.Settings) *int { return &s.Match.FallbackTemporal }),
	intSetting(keyFallbackGrantor, func(s *domain.Settings) *int { return &s.Match.FallbackGrantor }),
	intSetting(keyFallbackFloor, func(s *domain.Settings) *int { return &s.Match.FallbackFloor }),
	intSetting(keyMinTextLength, func(s *domain.Settings) *int { return &s.Extract.MinTextLength }),
	{key: keyKnownInstitutions, kind: kindList, listField: func(s *domain.Settings) *[]string { return &s.Extract.KnownInstitutions }},
	intSetting(keyScanConcurrency, func(s *domain.Settings) *int { return &s.Scan.Concurrency }),
	floatSetting(keyScanRate, func(s *domain.Settings) *float64 { return &s.Scan.RatePerSecond }),
	intSetting(keyScanBurst, func(s *domain.Settings) *int { return &s.Scan.Burst }),
	intSetting(keyQuickFlipDays, func(s *domain.Settings) *int { return &s.Risk.QuickFlipDays }),
}

func lookupSetting(key string) (setting, bool) {
	for _, st := range settings {
		if st.key == key {
			return st, true
		}
	}
	return setting{}, false
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// When the stored values together are invalid, each key is applied in
// turn and any value that would break validation falls back to its default.
func (s *SettingsService) Get() (*domain.Settings, error) {
	result := domain.DefaultSettings()
	for _, st := range settings {
		s.apply(&result, st)
	}
	if result.Validate() == nil {
		return &result, nil
	}

	result = domain.DefaultSettings()
	for _, st := range settings {
		candidate := result
		if !s.apply(&candidate, st) {
			continue
		}
		if candidate.Validate() == nil {
			result = candidate
		}
	}
	return &result, nil
}

// Set parses value for key, validates the result and persists it.
func (s *SettingsService) Set(key, value string) error {
	st, ok := lookupSetting(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseSetting(st, value)
	if err != nil {
		return err
	}

	current, err := s.Get()
	if err != nil {
		return err
	}
	candidate := *current
	assign(&candidate, st, parsed)
	if err := candidate.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Values lists every known key with its effective and default value.
func (s *SettingsService) Values() []domain.SettingValue {
	current, _ := s.Get()
	defaults := domain.DefaultSettings()

	values := make([]domain.SettingValue, 0, len(settings))
	for _, st := range settings {
		v := formatSetting(current, st)
		d := formatSetting(&defaults, st)
		values = append(values, domain.SettingValue{
			Key:       st.key,
			Value:     v,
			Default:   d,
			IsDefault: v == d,
		})
	}
	return values
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// apply copies a stored value into dst. Returns false when the key is unset.
func (s *SettingsService) apply(dst *domain.Settings, st setting) bool {
	if _, exists := s.configStore.Get(st.key); !exists {
		return false
	}
	switch st.kind {
	case kindInt:
		*st.intField(dst) = s.configStore.GetInt(st.key)
	case kindFloat:
		*st.floatField(dst) = s.configStore.GetFloat(st.key)
	case kindList:
		*st.listField(dst) = s.configStore.GetStringSlice(st.key)
	}
	return true
}

func assign(dst *domain.Settings, st setting, value any) {
	switch st.kind {
	case kindInt:
		*st.intField(dst) = value.(int)
	case kindFloat:
		*st.floatField(dst) = value.(float64)
	case kindList:
		*st.listField(dst) = value.([]string)
	}
}

func parseSetting(st setting, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch st.kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidInput, st.key, value)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a number, got %q", domain.ErrInvalidInput, st.key, value)
		}
		return f, nil
	default:
		items := []string{}
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	}
}

func formatSetting(s *domain.Settings, st setting) string {
	switch st.kind {
	case kindInt:
		return strconv.Itoa(*st.intField(s))
	case kindFloat:
		return strconv.FormatFloat(*st.floatField(s), 'f', -1, 64)
	default:
		return strings.Join(*st.listField(s), ",")
	}
}
