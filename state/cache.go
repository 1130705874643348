package state

import (
	"context"
	"log"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ts4z/pkoledger/dep"
	"github.com/ts4z/pkoledger/paytable"
	"github.com/ts4z/pkoledger/varz"
)

var (
	paytableCacheHits   = varz.NewInt("paytableCacheHits")
	paytableCacheMisses = varz.NewInt("paytableCacheMisses")
)

// CachingPaytableStorage keeps recently fetched paytables in an LRU in
// front of a slower storage.  Callers get copies, so nobody can edit the
// cached value.  Misses are fetched under a lock, so concurrent callers
// asking for the same paytable reach the next storage once.
type CachingPaytableStorage struct {
	cache *lru.Cache[string, *paytable.Paytable]
	fetch sync.Mutex
	next  PaytableStorage
}

var _ PaytableStorage = (*CachingPaytableStorage)(nil)

func NewCachingPaytableStorage(size int, next PaytableStorage) *CachingPaytableStorage {
	if size < 1 {
		size = 1
	}
	cache, err := lru.New[string, *paytable.Paytable](size)
	if err != nil {
		log.Fatalf("Failed to create paytable cache: %v", err)
	}
	return &CachingPaytableStorage{
		cache: cache,
		next:  dep.Required(next),
	}
}

func (s *CachingPaytableStorage) Close() {
	s.next.Close()
}

// FetchPaytableByName implements PaytableStorage.
func (s *CachingPaytableStorage) FetchPaytableByName(ctx context.Context, name string) (*paytable.Paytable, error) {
	if pt, ok := s.cache.Get(name); ok {
		paytableCacheHits.Add(1)
		return pt.Clone(), nil
	}

	s.fetch.Lock()
	defer s.fetch.Unlock()
	if pt, ok := s.cache.Get(name); ok {
		paytableCacheHits.Add(1)
		return pt.Clone(), nil
	}

	paytableCacheMisses.Add(1)
	pt, err := s.next.FetchPaytableByName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.Add(name, pt.Clone())
	return pt, nil
}

// FetchPaytableSlugs implements PaytableStorage.  Listings are not cached.
func (s *CachingPaytableStorage) FetchPaytableSlugs(ctx context.Context) ([]*paytable.PaytableSlug, error) {
	return s.next.FetchPaytableSlugs(ctx)
}

// Invalidate drops name from the cache.
func (s *CachingPaytableStorage) Invalidate(name string) {
	s.cache.Remove(name)
}
