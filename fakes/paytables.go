package fakes

import (
	"context"
	"sync"

	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/paytable"
)

// PaytableStorage is an in-memory paytable store that counts fetches.  Set
// Err to make every call fail.
type PaytableStorage struct {
	rw        sync.Mutex
	paytables map[string]*paytable.Paytable
	fetches   int
	closed    bool

	Err error
}

func NewPaytableStorage(pts ...*paytable.Paytable) *PaytableStorage {
	s := &PaytableStorage{
		paytables: map[string]*paytable.Paytable{},
	}
	for _, pt := range pts {
		s.paytables[pt.Name] = pt.Clone()
	}
	return s
}

func (s *PaytableStorage) Lock() func() {
	s.rw.Lock()
	return func() { s.rw.Unlock() }
}

func (s *PaytableStorage) Close() {
	unlock := s.Lock()
	defer unlock()
	s.closed = true
}

func (s *PaytableStorage) FetchPaytableByName(ctx context.Context, name string) (*paytable.Paytable, error) {
	unlock := s.Lock()
	defer unlock()
	s.fetches++
	if s.Err != nil {
		return nil, s.Err
	}
	if pt, ok := s.paytables[name]; ok {
		return pt.Clone(), nil
	}
	return nil, fault.Errorf(fault.NotFound, "paytable %q not found", name)
}

func (s *PaytableStorage) FetchPaytableSlugs(ctx context.Context) ([]*paytable.PaytableSlug, error) {
	unlock := s.Lock()
	defer unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	slugs := []*paytable.PaytableSlug{}
	for _, pt := range s.paytables {
		slug := pt.Slug()
		slugs = append(slugs, &slug)
	}
	return slugs, nil
}

// Fetches is the number of FetchPaytableByName calls so far.
func (s *PaytableStorage) Fetches() int {
	unlock := s.Lock()
	defer unlock()
	return s.fetches
}

func (s *PaytableStorage) Closed() bool {
	unlock := s.Lock()
	defer unlock()
	return s.closed
}
