package chain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

func TestBuild_Empty(t *testing.T) {
	entries := Build(nil)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestBuild_OrdersOldestFirst(t *testing.T) {
	deeds := []domain.Document{
		{InstrumentNumber: "newest", RecordTimestamp: 300, Grantees: []string{"C"}},
		{InstrumentNumber: "oldest", RecordTimestamp: 100, Grantees: []string{"A"}},
		{InstrumentNumber: "middle", RecordTimestamp: 200, Grantees: []string{"B"}},
	}

	entries := Build(deeds)

	require.Len(t, entries, 3)
	assert.Equal(t, "oldest", entries[0].InstrumentNumber)
	assert.Equal(t, "middle", entries[1].InstrumentNumber)
	assert.Equal(t, "newest", entries[2].InstrumentNumber)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Sequence)
	}
	assert.Equal(t, []string{"A"}, entries[0].Grantees)
	assert.Equal(t, "newest", deeds[0].InstrumentNumber, "input must not be reordered")
}

func TestBuild_StableForEqualTimestamps(t *testing.T) {
	deeds := []domain.Document{
		{InstrumentNumber: "first", RecordTimestamp: 100},
		{InstrumentNumber: "second", RecordTimestamp: 100},
		{InstrumentNumber: "early", RecordTimestamp: 50},
	}

	entries := Build(deeds)

	require.Len(t, entries, 3)
	assert.Equal(t, "early", entries[0].InstrumentNumber)
	assert.Equal(t, "first", entries[1].InstrumentNumber)
	assert.Equal(t, "second", entries[2].InstrumentNumber)
}

func TestBuild_SequenceProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 100; round++ {
		n := rng.Intn(25)
		deeds := make([]domain.Document, n)
		for i := range deeds {
			deeds[i] = domain.Document{RecordTimestamp: int64(rng.Intn(1000))}
		}

		entries := Build(deeds)

		require.Len(t, entries, n)
		for i := range entries {
			assert.Equal(t, i+1, entries[i].Sequence)
			if i > 0 {
				assert.LessOrEqual(t, entries[i-1].RecordTimestamp, entries[i].RecordTimestamp)
			}
		}
	}
}

func TestBuild_PreEpochDeedsOrdered(t *testing.T) {
	deeds := []domain.Document{
		{InstrumentNumber: "1965", RecordTimestamp: -157766400},
		{InstrumentNumber: "1960", RecordTimestamp: -315619200},
		{InstrumentNumber: "1999", RecordTimestamp: 915148800},
	}

	entries := Build(deeds)

	require.Len(t, entries, 3)
	assert.Equal(t, "1960", entries[0].InstrumentNumber)
	assert.Equal(t, "1965", entries[1].InstrumentNumber)
	assert.Equal(t, "1999", entries[2].InstrumentNumber)
	assert.Equal(t, 1, entries[0].Sequence)
}
