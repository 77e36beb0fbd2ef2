package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/titlescan/internal/core/domain"
)

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("a.int", 3))
	require.NoError(t, store.Set("a.int64", int64(4)))
	require.NoError(t, store.Set("a.float", 1.5))
	require.NoError(t, store.Set("a.list", []any{"X", 1, "Y"}))
	require.NoError(t, store.Set("a.str", "s"))

	assert.Equal(t, 3, store.GetInt("a.int"))
	assert.Equal(t, 4, store.GetInt("a.int64"))
	assert.Equal(t, 1, store.GetInt("a.float"))
	assert.Equal(t, 1.5, store.GetFloat("a.float"))
	assert.Equal(t, 3.0, store.GetFloat("a.int"))
	assert.Equal(t, 0, store.GetInt("a.str"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
	assert.Equal(t, []string{"X", "Y"}, store.GetStringSlice("a.list"))
	assert.Nil(t, store.GetStringSlice("a.str"))
	assert.Equal(t, []string{"a.float", "a.int", "a.int64", "a.list", "a.str"}, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("k", n)
			_ = store.GetInt("k")
		}(i)
	}
	wg.Wait()
	_, ok := store.Get("k")
	assert.True(t, ok)
}

func raw(instrument string, grantors ...any) domain.RawRecord {
	return domain.RawRecord{Fields: map[string]any{
		"instrumentNumber": instrument,
		"grantors":         grantors,
		"grantees":         []any{"COUNTY"},
	}}
}

func TestRecordStore_ImportAndSearch(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	n, err := store.Import(ctx, []domain.RawRecord{
		raw("1", "SMITH JOHN"),
		raw("2", "DOE JANE"),
		raw("3", "SMITH JANE"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := store.Search(ctx, "smith")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].Fields["instrumentNumber"])
	assert.Equal(t, "3", got[1].Fields["instrumentNumber"])

	all, err := store.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "memory", store.Name())
}

func TestRecordStore_ImportReplacesSameIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()

	_, err := store.Import(ctx, []domain.RawRecord{raw("1", "SMITH JOHN"), raw("2", "DOE JANE")})
	require.NoError(t, err)
	_, err = store.Import(ctx, []domain.RawRecord{raw("1", "SMITH JOHNNY")})
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := store.Search(ctx, "JOHNNY")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestRecordStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRecordStore().Search(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRecordStore_ReimportWithoutIdentityDoesNotDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()
	anonymous := domain.RawRecord{Fields: map[string]any{"grantors": []any{"SMITH JOHN"}}}

	_, err := store.Import(ctx, []domain.RawRecord{anonymous})
	require.NoError(t, err)
	_, err = store.Import(ctx, []domain.RawRecord{anonymous})
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
