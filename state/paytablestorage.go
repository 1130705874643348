package state

import (
	"context"

	"github.com/ts4z/pkoledger/builtins"
	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/paytable"
)

var _ PaytableStorage = (*BuiltinPaytableStorage)(nil)

// BuiltinPaytableStorage serves the paytables compiled into the binary.
type BuiltinPaytableStorage struct {
	paytables map[string]*paytable.Paytable
}

func NewBuiltinPaytableStorage() *BuiltinPaytableStorage {
	bs := &BuiltinPaytableStorage{
		paytables: map[string]*paytable.Paytable{},
	}
	for _, pt := range builtins.Paytables() {
		bs.paytables[pt.Name] = pt
	}
	return bs
}

func (bs *BuiltinPaytableStorage) Close() {}

// FetchPaytableByName implements PaytableStorage.
func (bs *BuiltinPaytableStorage) FetchPaytableByName(ctx context.Context, name string) (*paytable.Paytable, error) {
	if pt, ok := bs.paytables[name]; ok {
		return pt.Clone(), nil
	}
	return nil, fault.Errorf(fault.NotFound, "paytable %q not found", name)
}

// FetchPaytableSlugs implements PaytableStorage.
func (bs *BuiltinPaytableStorage) FetchPaytableSlugs(ctx context.Context) ([]*paytable.PaytableSlug, error) {
	slugs := make([]*paytable.PaytableSlug, 0, len(bs.paytables))
	for _, pt := range bs.paytables {
		slug := pt.Slug()
		slugs = append(slugs, &slug)
	}
	sortSlugs(slugs)
	return slugs, nil
}
