package ledger

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/model"
	"github.com/ts4z/pkoledger/money"
)

// ProcessKnockout settles one player knocking out another.  Half the
// eliminated player's bounty, floored to the cent, is returned as cash owed
// to the eliminator; the rest, odd cent included, goes onto the
// eliminator's own bounty.
func (l *Ledger) ProcessKnockout(eliminatorID, eliminatedID int) (decimal.Decimal, error) {
	if !l.tournamentType.HasBounties() {
		return decimal.Zero, fault.Errorf(fault.InvalidOperation, "knockouts are only settled in knockout tournaments, this is %v", l.tournamentType)
	}
	if eliminatorID == eliminatedID {
		return decimal.Zero, fault.Errorf(fault.InvalidInput, "player %d can't eliminate themselves", eliminatorID)
	}
	eliminated, err := l.lookup(eliminatedID)
	if err != nil {
		return decimal.Zero, err
	}
	eliminator, err := l.lookup(eliminatorID)
	if err != nil {
		return decimal.Zero, err
	}
	if eliminated.player.Eliminated {
		return decimal.Zero, fault.Errorf(fault.InvalidState, "player %d (%s) is already eliminated", eliminatedID, eliminated.player.Name)
	}
	if eliminator.player.Eliminated {
		return decimal.Zero, fault.Errorf(fault.InvalidState, "player %d (%s) is out and can't claim a bounty", eliminatorID, eliminator.player.Name)
	}
	bounty, repaired, err := l.settledBounty(eliminated)
	if err != nil {
		return decimal.Zero, err
	}

	immediate := money.Quantize(money.Half(bounty))
	added := bounty.Sub(immediate)

	eliminated.player.Bounty = decimal.NewNullDecimal(bounty)
	eliminated.player.Position = l.RemainingPlayers()
	eliminated.player.Eliminated = true
	l.credit(eliminator, added)

	s := Settlement{
		Kind:        KindKnockout,
		Eliminated:  []int{eliminatedID},
		Cash:        map[int]decimal.Decimal{eliminatorID: immediate},
		BountyAdded: map[int]decimal.Decimal{eliminatorID: added},
	}
	if repaired {
		s.Repaired = []int{eliminatedID}
	}
	l.record(s)
	return immediate, nil
}

// settledBounty returns the bounty to split for e.  If the stored bounty
// has drifted from what the ledger accounted, the policy decides: repair
// returns the accounted amount (and true), reject fails.
func (l *Ledger) settledBounty(e *entry) (decimal.Decimal, bool, error) {
	stored := e.player.Bounty
	if stored.Valid && stored.Decimal.Equal(e.accounted) {
		return stored.Decimal, false, nil
	}
	if l.driftPolicy == DriftReject {
		return decimal.Zero, false, fault.Errorf(fault.InvalidState, "player %d (%s) carries bounty %s but the ledger accounts %s",
			e.player.ID, e.player.Name, nullString(stored), e.accounted)
	}
	return e.accounted, true, nil
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "none"
	}
	return d.Decimal.String()
}

// bust is one planned multiway elimination.
type bust struct {
	e           *entry
	position    int
	bounty      decimal.Decimal
	repaired    bool
	eliminators []*entry
}

// ProcessMultiwayAllIn settles a hand where several players were all in
// together.  Every player who finished strictly better than a busted player
// shares in that player's bounty equally: each gets (b/2)/k in cash,
// floored per recipient, and the unrounded (b/2)/k on their own bounty.
// The returned map sums each player's cash across all busts.
//
// Regular tournaments get an empty map and nothing is recorded.
func (l *Ledger) ProcessMultiwayAllIn(r model.MultiwayAllInResult) (map[int]decimal.Decimal, error) {
	won := map[int]decimal.Decimal{}
	if !l.tournamentType.HasBounties() {
		return won, nil
	}

	involved, err := l.validateMultiway(r)
	if err != nil {
		return nil, err
	}

	// Plan everything from the state as it stands, then apply.  Bounties
	// are read before any credit lands, so a player who busts here is
	// settled on what they carried into the hand.
	var plan []*bust
	for _, e := range involved {
		pos := r.Positions[e.player.ID]
		if pos == 1 {
			if e.player.Eliminated {
				return nil, fault.Errorf(fault.InvalidState, "player %d (%s) is out and can't win the hand", e.player.ID, e.player.Name)
			}
			continue
		}
		if e.player.Eliminated {
			return nil, fault.Errorf(fault.InvalidState, "player %d (%s) is already eliminated", e.player.ID, e.player.Name)
		}
		b, repaired, err := l.settledBounty(e)
		if err != nil {
			return nil, err
		}
		p := &bust{e: e, position: pos, bounty: b, repaired: repaired}
		for _, other := range involved {
			if r.Positions[other.player.ID] < pos {
				p.eliminators = append(p.eliminators, other)
			}
		}
		plan = append(plan, p)
	}

	added := map[int]decimal.Decimal{}
	var eliminated, repaired []int
	for _, p := range plan {
		p.e.player.Bounty = decimal.NewNullDecimal(p.bounty)
		if p.repaired {
			repaired = append(repaired, p.e.player.ID)
		}
		if len(p.eliminators) > 0 {
			k := decimal.NewFromInt(int64(len(p.eliminators)))
			half := money.Half(p.bounty)
			cash := money.Quantize(half.Div(k))
			share := half.Div(k)
			// Division rounds at decimal.DivisionPrecision; the best-placed
			// eliminator absorbs the residue so the credits sum to half.
			residue := half.Sub(share.Mul(k))
			for i, x := range p.eliminators {
				id := x.player.ID
				won[id] = won[id].Add(cash)
				amount := share
				if i == 0 {
					amount = amount.Add(residue)
				}
				l.credit(x, amount)
				added[id] = added[id].Add(amount)
			}
		}
		p.e.player.Eliminated = true
		p.e.player.Position = p.position
		eliminated = append(eliminated, p.e.player.ID)
	}

	l.record(Settlement{
		Kind:        KindMultiwayAllIn,
		Eliminated:  eliminated,
		Cash:        copyAmounts(won),
		BountyAdded: added,
		Repaired:    repaired,
	})
	return won, nil
}

// validateMultiway checks the shape of r and returns the involved entries
// ordered by position, best first.
func (l *Ledger) validateMultiway(r model.MultiwayAllInResult) ([]*entry, error) {
	if len(r.PlayerIDs) < 2 {
		return nil, fault.Errorf(fault.InvalidInput, "a multiway all-in needs at least 2 players, got %d", len(r.PlayerIDs))
	}
	if len(r.Positions) != len(r.PlayerIDs) {
		return nil, fault.Errorf(fault.InvalidInput, "%d players but %d positions", len(r.PlayerIDs), len(r.Positions))
	}

	seenPlayer := make(map[int]bool, len(r.PlayerIDs))
	seenPosition := make(map[int]int, len(r.PlayerIDs))
	involved := make([]*entry, 0, len(r.PlayerIDs))
	for _, id := range r.PlayerIDs {
		if seenPlayer[id] {
			return nil, fault.Errorf(fault.InvalidInput, "player %d listed twice", id)
		}
		seenPlayer[id] = true

		e, err := l.lookup(id)
		if err != nil {
			return nil, err
		}
		pos, ok := r.Positions[id]
		if !ok {
			return nil, fault.Errorf(fault.InvalidInput, "player %d has no position", id)
		}
		if pos < 1 {
			return nil, fault.Errorf(fault.InvalidInput, "player %d has position %d, positions start at 1", id, pos)
		}
		if other, dup := seenPosition[pos]; dup {
			return nil, fault.Errorf(fault.InvalidInput, "players %d and %d both finished in position %d", other, id, pos)
		}
		seenPosition[pos] = id
		involved = append(involved, e)
	}

	slices.SortFunc(involved, func(a, b *entry) int {
		return r.Positions[a.player.ID] - r.Positions[b.player.ID]
	})
	return involved, nil
}

func copyAmounts(m map[int]decimal.Decimal) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
