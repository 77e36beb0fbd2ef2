package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/titlescan/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/titlescan/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("matcher.weight.amount", 45)
	_ = store.Set("matcher.amount_tolerance_pct", 2.5)
	_ = store.Set("extract.known_institutions", []any{"REGIONS", "TRUIST"})
	_ = store.Set("risk.quick_flip_days", int64(60))

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 45, settings.Match.Amount)
	assert.Equal(t, 2.5, settings.Match.AmountTolerancePct)
	assert.Equal(t, []string{"REGIONS", "TRUIST"}, settings.Extract.KnownInstitutions)
	assert.Equal(t, 60, settings.Risk.QuickFlipDays)
}

func TestSettingsService_Get_ZeroIsAValue(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("matcher.weight.grantor", 0)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, 0, settings.Match.Grantor)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("scan.concurrency", 0)
	_ = store.Set("matcher.weight.lender", -5)
	_ = store.Set("matcher.weight.amount", 40)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Scan.Concurrency, settings.Scan.Concurrency)
	assert.Equal(t, defaults.Match.Lender, settings.Match.Lender)
	assert.Equal(t, 40, settings.Match.Amount)
}

func TestSettingsService_Get_TiersStoredTogether(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("matcher.tier.high", 40)
	_ = store.Set("matcher.tier.medium", 20)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, 40, settings.Match.HighTier)
	assert.Equal(t, 20, settings.Match.MediumTier)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("matcher.accept_floor", "45"))
	require.NoError(t, service.Set("scan.rate_per_second", "0.5"))
	require.NoError(t, service.Set("extract.known_institutions", "REGIONS, TRUIST ,"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 45, settings.Match.AcceptFloor)
	assert.Equal(t, 0.5, settings.Scan.RatePerSecond)
	assert.Equal(t, []string{"REGIONS", "TRUIST"}, settings.Extract.KnownInstitutions)

	v, ok := store.Get("matcher.accept_floor")
	require.True(t, ok)
	assert.Equal(t, 45, v)
}

func TestSettingsService_Set_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "search.mode", "hybrid"},
		{"not an integer", "matcher.weight.amount", "thirty"},
		{"not a number", "scan.rate_per_second", "fast"},
		{"fails validation", "scan.concurrency", "0"},
		{"tier below medium", "matcher.tier.high", "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, store.Keys())
		})
	}
}

func TestSettingsService_Values(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("risk.quick_flip_days", 30)
	service := NewSettingsService(store)

	values := service.Values()

	require.Len(t, values, len(settings))
	assert.Equal(t, "matcher.weight.instrument", values[0].Key)
	assert.Equal(t, "100", values[0].Value)
	assert.True(t, values[0].IsDefault)

	var flip domain.SettingValue
	for _, v := range values {
		if v.Key == "risk.quick_flip_days" {
			flip = v
		}
	}
	assert.Equal(t, "30", flip.Value)
	assert.Equal(t, "90", flip.Default)
	assert.False(t, flip.IsDefault)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultSettings(), service.GetDefaults())
}
