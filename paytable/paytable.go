// Package paytable provides data models and stateless functions for
// selecting a payout structure by field size and turning a finishing place
// into cash.
package paytable

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ts4z/pkoledger/money"
)

// Structure maps finishing position (1 = first) to a fraction of the prize
// pool.  It applies once at least MinPlayers have registered.
type Structure struct {
	MinPlayers int
	Positions  map[int]decimal.Decimal
}

// Prize is one paid place on a prize sheet.
type Prize struct {
	Place  int
	Share  decimal.Decimal
	Amount decimal.Decimal
}

// Paytable is a named set of structures covering every field size.
type Paytable struct {
	Name       string
	Structures []*Structure // ascending MinPlayers
}

// PaytableSlug is a lightweight representation of a payout table for lists.
type PaytableSlug struct {
	Name  string
	Tiers int
}

var (
	ErrNoStructures = errors.New("paytable has no structures")
	ErrNoFallback   = errors.New("no structure covers a field of 2")
)

// Share returns the fraction paid to position, if any.
func (s *Structure) Share(position int) (decimal.Decimal, bool) {
	pct, ok := s.Positions[position]
	return pct, ok
}

// Total is the sum of all shares.
func (s *Structure) Total() decimal.Decimal {
	return money.Sum(slices.Collect(maps.Values(s.Positions))...)
}

// Places returns the paid positions in ascending order.
func (s *Structure) Places() []int {
	places := make([]int, 0, len(s.Positions))
	for p := range s.Positions {
		places = append(places, p)
	}
	sort.Ints(places)
	return places
}

// Validate checks that shares are fractions in [0,1], positions start at 1,
// and the structure never hands out more than the pool.
func (s *Structure) Validate() error {
	if s.MinPlayers < 1 {
		return fmt.Errorf("min players %d must be at least 1", s.MinPlayers)
	}
	if len(s.Positions) == 0 {
		return fmt.Errorf("structure for %d+ players pays nobody", s.MinPlayers)
	}
	one := decimal.NewFromInt(1)
	for pos, pct := range s.Positions {
		if pos < 1 {
			return fmt.Errorf("structure for %d+ players: position %d is not a place", s.MinPlayers, pos)
		}
		if pct.IsNegative() || pct.GreaterThan(one) {
			return fmt.Errorf("structure for %d+ players: position %d share %s outside [0,1]", s.MinPlayers, pos, pct)
		}
	}
	if total := s.Total(); total.GreaterThan(one) {
		return fmt.Errorf("structure for %d+ players pays out %s of the pool", s.MinPlayers, total)
	}
	return nil
}

// Prize computes the cash owed to position from pool, floored to the cent.
func (s *Structure) Prize(pool decimal.Decimal, position int) (decimal.Decimal, bool) {
	pct, ok := s.Share(position)
	if !ok {
		return decimal.Zero, false
	}
	return money.Quantize(pool.Mul(pct)), true
}

// Sheet lists every paid place for pool.
func (s *Structure) Sheet(pool decimal.Decimal) []Prize {
	var prizes []Prize
	for _, place := range s.Places() {
		amount, _ := s.Prize(pool, place)
		prizes = append(prizes, Prize{Place: place, Share: s.Positions[place], Amount: amount})
	}
	return prizes
}

func (s *Structure) Clone() *Structure {
	clone := &Structure{
		MinPlayers: s.MinPlayers,
		Positions:  make(map[int]decimal.Decimal, len(s.Positions)),
	}
	for k, v := range s.Positions {
		clone.Positions[k] = v
	}
	return clone
}

// New builds a paytable, sorting structures by MinPlayers.  Structures are
// cloned so later edits by the caller don't leak in.
func New(name string, structures ...*Structure) (*Paytable, error) {
	if len(structures) == 0 {
		return nil, ErrNoStructures
	}
	pt := &Paytable{Name: name}
	for _, s := range structures {
		if s == nil {
			return nil, errors.New("nil structure")
		}
		pt.Structures = append(pt.Structures, s.Clone())
	}
	sortStructures(pt.Structures)
	return pt, nil
}

func sortStructures(ss []*Structure) {
	slices.SortStableFunc(ss, func(a, b *Structure) int {
		return a.MinPlayers - b.MinPlayers
	})
}

// Validate checks every structure, and that some structure applies to a
// heads-up field.
func (pt *Paytable) Validate() error {
	if len(pt.Structures) == 0 {
		return ErrNoStructures
	}
	lowest := pt.Structures[0].MinPlayers
	for _, s := range pt.Structures {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("paytable %q: %w", pt.Name, err)
		}
		lowest = min(lowest, s.MinPlayers)
	}
	if lowest > 2 {
		return fmt.Errorf("paytable %q: %w (lowest tier starts at %d players)", pt.Name, ErrNoFallback, lowest)
	}
	return nil
}

// Select returns the structure with the largest MinPlayers not above
// numPlayers, falling back to the smallest threshold when the field is below
// every tier.
func (pt *Paytable) Select(numPlayers int) *Structure {
	if len(pt.Structures) == 0 {
		return nil
	}
	for i := len(pt.Structures) - 1; i >= 0; i-- {
		if numPlayers >= pt.Structures[i].MinPlayers {
			return pt.Structures[i]
		}
	}
	return pt.Structures[0]
}

// Payout calculates the prize sheet for a field of numPlayers.
func (pt *Paytable) Payout(pool decimal.Decimal, numPlayers int) ([]Prize, error) {
	s := pt.Select(numPlayers)
	if s == nil {
		return nil, ErrNoStructures
	}
	return s.Sheet(pool), nil
}

func (pt *Paytable) Slug() PaytableSlug {
	return PaytableSlug{Name: pt.Name, Tiers: len(pt.Structures)}
}

func (pt *Paytable) Clone() *Paytable {
	clone := &Paytable{
		Name:       pt.Name,
		Structures: make([]*Structure, len(pt.Structures)),
	}
	for i, s := range pt.Structures {
		clone.Structures[i] = s.Clone()
	}
	return clone
}

// FromBasisPoints builds a structure from a list of shares in basis points
// (10000 = 100%), index 0 being first place.
func FromBasisPoints(minPlayers int, bps ...int64) *Structure {
	s := &Structure{
		MinPlayers: minPlayers,
		Positions:  make(map[int]decimal.Decimal, len(bps)),
	}
	for i, bp := range bps {
		s.Positions[i+1] = decimal.New(bp, -4)
	}
	return s
}
