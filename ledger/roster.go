package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/model"
)

// entry is the ledger's private record for one player.  accounted is the
// bounty the ledger believes the player carries: the starting bounty plus
// every share the ledger has credited.  It is the reference for drift.
type entry struct {
	player    model.Player
	accounted decimal.Decimal
}

// Register adds a player and grows the prize pool by one buy-in.
func (l *Ledger) Register(name string) (model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, fault.Errorf(fault.InvalidInput, "player name is empty")
	}

	e := &entry{
		player: model.Player{
			ID:   len(l.players) + 1,
			Name: name,
		},
	}
	if l.tournamentType.HasBounties() {
		e.player.Bounty = decimal.NewNullDecimal(l.bounty)
		e.accounted = l.bounty
	}
	l.players = append(l.players, e)
	l.totalPrizePool = l.totalPrizePool.Add(l.buyIn)
	return e.player, nil
}

// Player returns a copy of one player.
func (l *Ledger) Player(id int) (model.Player, error) {
	e, err := l.lookup(id)
	if err != nil {
		return model.Player{}, err
	}
	return e.player, nil
}

// Players returns every registered player in id order.
func (l *Ledger) Players() []model.Player {
	out := make([]model.Player, 0, len(l.players))
	for _, e := range l.players {
		out = append(out, e.player)
	}
	return out
}

// ActivePlayers returns the players still in, in id order.
func (l *Ledger) ActivePlayers() []model.Player {
	out := []model.Player{}
	for _, e := range l.players {
		if !e.player.Eliminated {
			out = append(out, e.player)
		}
	}
	return out
}

// Count is the number of registrations, active or not.
func (l *Ledger) Count() int {
	return len(l.players)
}

func (l *Ledger) RemainingPlayers() int {
	n := 0
	for _, e := range l.players {
		if !e.player.Eliminated {
			n++
		}
	}
	return n
}

// Eliminate records a bust with no bounty movement.  The player finishes in
// the place equal to the number of players left before the bust.
func (l *Ledger) Eliminate(id int) (model.Player, error) {
	e, err := l.lookup(id)
	if err != nil {
		return model.Player{}, err
	}
	if e.player.Eliminated {
		return model.Player{}, fault.Errorf(fault.InvalidState, "player %d (%s) is already eliminated", id, e.player.Name)
	}

	e.player.Position = l.RemainingPlayers()
	e.player.Eliminated = true
	l.record(Settlement{
		Kind:       KindElimination,
		Eliminated: []int{id},
	})
	return e.player, nil
}

func (l *Ledger) lookup(id int) (*entry, error) {
	if id < 1 || id > len(l.players) {
		return nil, fault.Errorf(fault.NotFound, "no player with id %d", id)
	}
	return l.players[id-1], nil
}

// credit grows a player's bounty by amount, both stored and accounted.
func (l *Ledger) credit(e *entry, amount decimal.Decimal) {
	e.player.Bounty = decimal.NewNullDecimal(e.player.Bounty.Decimal.Add(amount))
	e.accounted = e.accounted.Add(amount)
}
