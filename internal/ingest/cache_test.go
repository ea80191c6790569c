package ingest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarsight/sea-ice-analyst/internal/domain"
	"github.com/polarsight/sea-ice-analyst/internal/observability"
)

const cacheTestCSV = "Year,Month,Day,Extent,hemisphere\n1990,1,1,12.0,north\n"

// countingLoader wraps CSVLoader and counts parses.
type countingLoader struct {
	calls int
}

func (l *countingLoader) Load(data []byte) (*domain.Dataset, error) {
	l.calls++
	return CSVLoader{}.Load(data)
}

func TestCachedLoader_HitOnIdenticalBytes(t *testing.T) {
	inner := &countingLoader{}
	cached := NewCachedLoader(inner, NewLRUStore(4), observability.NewMetricsForTesting())

	first, err := cached.Load([]byte(cacheTestCSV))
	require.NoError(t, err)
	second, err := cached.Load([]byte(cacheTestCSV))
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls, "byte-identical input should parse once")
	assert.Same(t, first, second)
}

func TestCachedLoader_MissOnDifferentBytes(t *testing.T) {
	inner := &countingLoader{}
	cached := NewCachedLoader(inner, NewLRUStore(4), observability.NewMetricsForTesting())

	_, err := cached.Load([]byte(cacheTestCSV))
	require.NoError(t, err)
	_, err = cached.Load([]byte(cacheTestCSV + "1991,1,1,11.5,north\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedLoader_FailuresNotCached(t *testing.T) {
	inner := &countingLoader{}
	store := NewLRUStore(4)
	cached := NewCachedLoader(inner, store, observability.NewMetricsForTesting())

	bad := []byte("Year,Month,Day,Extent,hemisphere\n1990,2,30,12.0,north\n")
	_, err := cached.Load(bad)
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())

	_, err = cached.Load(bad)
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls, "failed loads are retried, not served from cache")
}

func TestCachedLoader_NilStoreDisablesCaching(t *testing.T) {
	inner := &countingLoader{}
	cached := NewCachedLoader(inner, nil, observability.NewMetricsForTesting())

	_, err := cached.Load([]byte(cacheTestCSV))
	require.NoError(t, err)
	_, err = cached.Load([]byte(cacheTestCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestLRUStore_EvictsLeastRecentlyUsed(t *testing.T) {
	store := NewLRUStore(2)
	a := &domain.Dataset{SourceHash: "a"}
	b := &domain.Dataset{SourceHash: "b"}
	c := &domain.Dataset{SourceHash: "c"}

	store.Put("a", a)
	store.Put("b", b)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := store.Get("a")
	require.True(t, ok)

	store.Put("c", c)
	assert.Equal(t, 2, store.Len())

	_, ok = store.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = store.Get("a")
	assert.True(t, ok)
	_, ok = store.Get("c")
	assert.True(t, ok)
}

func TestLRUStore_PutExistingKeyUpdates(t *testing.T) {
	store := NewLRUStore(2)
	store.Put("a", &domain.Dataset{SourceHash: "old"})
	store.Put("a", &domain.Dataset{SourceHash: "new"})

	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "new", got.SourceHash)
	assert.Equal(t, 1, store.Len())
}

func TestLRUStore_CapacityBound(t *testing.T) {
	store := NewLRUStore(3)
	for i := 0; i < 10; i++ {
		store.Put(fmt.Sprintf("key-%d", i), &domain.Dataset{})
	}
	assert.Equal(t, 3, store.Len())
}
