package ledger

import (
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ts4z/pkoledger/money"
)

type SettlementKind int

const (
	KindElimination SettlementKind = iota + 1
	KindKnockout
	KindMultiwayAllIn
)

func (k SettlementKind) String() string {
	switch k {
	case KindElimination:
		return "elimination"
	case KindKnockout:
		return "knockout"
	case KindMultiwayAllIn:
		return "multiway all-in"
	}
	return "unknown"
}

// Settlement records one applied elimination event.
type Settlement struct {
	Seq  int
	Kind SettlementKind
	At   time.Time
	// Eliminated lists busted player ids in finishing order, best first.
	Eliminated []int
	// Cash is bounty cash paid out now, by player id.
	Cash map[int]decimal.Decimal
	// BountyAdded is the growth of each eliminator's bounty.
	BountyAdded map[int]decimal.Decimal
	// Repaired lists players whose drifted bounty was reset before the split.
	Repaired []int
}

// TotalCash sums the cash paid out by this settlement.
func (s Settlement) TotalCash() decimal.Decimal {
	return money.Sum(slices.Collect(maps.Values(s.Cash))...)
}

// TotalBountyAdded sums the bounty growth from this settlement.
func (s Settlement) TotalBountyAdded() decimal.Decimal {
	return money.Sum(slices.Collect(maps.Values(s.BountyAdded))...)
}

func (l *Ledger) record(s Settlement) {
	s.Seq = len(l.history) + 1
	s.At = l.clock.Now()
	l.history = append(l.history, s)
}

// History returns every settlement applied so far, oldest first.
func (l *Ledger) History() []Settlement {
	out := make([]Settlement, len(l.history))
	copy(out, l.history)
	return out
}

// BountyCashPaid is the total bounty cash paid out across all settlements.
func (l *Ledger) BountyCashPaid() decimal.Decimal {
	paid := make([]decimal.Decimal, 0, len(l.history))
	for _, s := range l.history {
		paid = append(paid, s.TotalCash())
	}
	return money.Sum(paid...)
}
