package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ts4z/pkoledger/builtins"
	"github.com/ts4z/pkoledger/fakes"
	"github.com/ts4z/pkoledger/fault"
)

func TestCachingPaytableStorage(t *testing.T) {
	ctx := context.Background()
	next := fakes.NewPaytableStorage(builtins.Paytables()...)
	cs := NewCachingPaytableStorage(4, next)

	hits, misses := paytableCacheHits.Value(), paytableCacheMisses.Value()

	pt, err := cs.FetchPaytableByName(ctx, builtins.HomeGamePaytableName)
	require.NoError(t, err)
	pt.Structures[0].Positions[1] = decimal.Zero

	again, err := cs.FetchPaytableByName(ctx, builtins.HomeGamePaytableName)
	require.NoError(t, err)
	assert.False(t, again.Structures[0].Positions[1].IsZero(), "cached copy was modified")
	assert.Equal(t, 1, next.Fetches())
	assert.Equal(t, hits+1, paytableCacheHits.Value())
	assert.Equal(t, misses+1, paytableCacheMisses.Value())

	cs.Invalidate(builtins.HomeGamePaytableName)
	_, err = cs.FetchPaytableByName(ctx, builtins.HomeGamePaytableName)
	require.NoError(t, err)
	assert.Equal(t, 2, next.Fetches())

	_, err = cs.FetchPaytableByName(ctx, "nope")
	assert.ErrorIs(t, err, fault.NotFound)
	_, err = cs.FetchPaytableByName(ctx, "nope")
	assert.ErrorIs(t, err, fault.NotFound)
	assert.Equal(t, 4, next.Fetches(), "misses are not cached")

	slugs, err := cs.FetchPaytableSlugs(ctx)
	require.NoError(t, err)
	assert.Len(t, slugs, 2)

	cs.Close()
	assert.True(t, next.Closed())
}

func TestCachingPaytableStorageEvicts(t *testing.T) {
	ctx := context.Background()
	next := fakes.NewPaytableStorage(builtins.Paytables()...)
	cs := NewCachingPaytableStorage(1, next)

	for _, name := range []string{builtins.HomeGamePaytableName, builtins.BARGEPaytableName, builtins.HomeGamePaytableName} {
		_, err := cs.FetchPaytableByName(ctx, name)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, next.Fetches())
}

func TestCachingPaytableStoragePassesErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	next := fakes.NewPaytableStorage()
	next.Err = boom
	cs := NewCachingPaytableStorage(4, next)

	_, err := cs.FetchPaytableByName(context.Background(), "any")
	assert.ErrorIs(t, err, boom)
	_, err = cs.FetchPaytableSlugs(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestChainStopsOnRealErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	broken := fakes.NewPaytableStorage()
	broken.Err = boom
	cs := NewChainPaytableStorage(broken, NewBuiltinPaytableStorage())

	_, err := cs.FetchPaytableByName(context.Background(), builtins.HomeGamePaytableName)
	assert.ErrorIs(t, err, boom)
}

func TestCachingPaytableStorageFetchesOnceUnderContention(t *testing.T) {
	ctx := context.Background()
	next := fakes.NewPaytableStorage(builtins.Paytables()...)
	cs := NewCachingPaytableStorage(4, next)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pt, err := cs.FetchPaytableByName(ctx, builtins.BARGEPaytableName)
			assert.NoError(t, err)
			assert.Equal(t, builtins.BARGEPaytableName, pt.Name)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, next.Fetches())
}
