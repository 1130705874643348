package state

// package state loads the reference data a tournament is built from:
// payout tables and blind structures.  Tournament state itself is never
// stored.

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/paytable"
)

type Closer interface {
	Close()
}

// PaytableStorage describes where named paytables come from.
type PaytableStorage interface {
	Closer

	FetchPaytableByName(ctx context.Context, name string) (*paytable.Paytable, error)
	FetchPaytableSlugs(ctx context.Context) ([]*paytable.PaytableSlug, error)
}

// ChainPaytableStorage asks each storage in turn.  The first one that knows
// a name wins; a NotFound from one storage moves on to the next.
type ChainPaytableStorage struct {
	storages []PaytableStorage
}

var _ PaytableStorage = (*ChainPaytableStorage)(nil)

func NewChainPaytableStorage(storages ...PaytableStorage) *ChainPaytableStorage {
	return &ChainPaytableStorage{storages: storages}
}

func (c *ChainPaytableStorage) Close() {
	for _, s := range c.storages {
		s.Close()
	}
}

// FetchPaytableByName implements PaytableStorage.
func (c *ChainPaytableStorage) FetchPaytableByName(ctx context.Context, name string) (*paytable.Paytable, error) {
	for _, s := range c.storages {
		pt, err := s.FetchPaytableByName(ctx, name)
		if err == nil {
			return pt, nil
		}
		if !errors.Is(err, fault.NotFound) {
			return nil, err
		}
	}
	return nil, fault.Errorf(fault.NotFound, "paytable %q not found", name)
}

// FetchPaytableSlugs implements PaytableStorage.  Names hidden by an
// earlier storage are listed once.
func (c *ChainPaytableStorage) FetchPaytableSlugs(ctx context.Context) ([]*paytable.PaytableSlug, error) {
	seen := map[string]bool{}
	slugs := []*paytable.PaytableSlug{}
	for _, s := range c.storages {
		more, err := s.FetchPaytableSlugs(ctx)
		if err != nil {
			return nil, err
		}
		for _, slug := range more {
			if seen[slug.Name] {
				continue
			}
			seen[slug.Name] = true
			slugs = append(slugs, slug)
		}
	}
	sortSlugs(slugs)
	return slugs, nil
}

func sortSlugs(slugs []*paytable.PaytableSlug) {
	slices.SortFunc(slugs, func(a, b *paytable.PaytableSlug) int {
		return strings.Compare(a.Name, b.Name)
	})
}
