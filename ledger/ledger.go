// Package ledger owns the economic state of one tournament: who is
// registered, who is out, what is on each head, and what each place pays.
//
// A Ledger is a plain owned aggregate.  It does no locking of its own; every
// operation is a short in-memory computation, and callers that report
// eliminations from more than one goroutine must serialize through one
// boundary per tournament (see Locked).  Operations validate everything
// before they mutate anything, so a failed call leaves the ledger exactly
// as it was.
//
// The ledger never logs.  Failures come back as fault errors for the
// presentation layer to show.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/model"
	"github.com/ts4z/pkoledger/paytable"
)

// Clock gets the current time.  clockwork.Clock and ts.Clock implement this.
type Clock interface {
	Now() time.Time
}

// DriftPolicy says what to do when a player's stored bounty no longer
// matches what the ledger has accounted for them.
type DriftPolicy int

const (
	// DriftRepair resets the bounty to the accounted amount and settles.
	DriftRepair DriftPolicy = iota
	// DriftReject refuses to settle with InvalidState.
	DriftReject
)

func (p DriftPolicy) String() string {
	switch p {
	case DriftRepair:
		return "repair"
	case DriftReject:
		return "reject"
	}
	return "unknown"
}

// Config fixes the rules of a tournament at construction.
type Config struct {
	Type  model.TournamentType
	BuyIn decimal.Decimal
	// Bounty is the starting bounty on every head.  Required for PKO,
	// ignored otherwise.
	Bounty      decimal.Decimal
	Levels      []model.BlindLevel
	Paytable    *paytable.Paytable
	DriftPolicy DriftPolicy
}

type Option func(*Ledger)

// WithClock sets the clock used to stamp settlement history.
func WithClock(c Clock) Option {
	return func(l *Ledger) {
		l.clock = c
	}
}

// WithID fixes the ledger id, mostly for tests.
func WithID(id uuid.UUID) Option {
	return func(l *Ledger) {
		l.id = id
	}
}

type Ledger struct {
	id    uuid.UUID
	clock Clock

	tournamentType model.TournamentType
	buyIn          decimal.Decimal
	bounty         decimal.Decimal
	levels         []model.BlindLevel
	paytable       *paytable.Paytable
	driftPolicy    DriftPolicy

	players        []*entry // index is id-1
	totalPrizePool decimal.Decimal
	currentLevel   int
	handForHand    bool
	history        []Settlement
}

// New validates cfg and returns an empty ledger.  The paytable and level
// schedule are copied.
func New(cfg Config, opts ...Option) (*Ledger, error) {
	if cfg.Type != model.Regular && cfg.Type != model.PKO {
		return nil, fault.Errorf(fault.InvalidInput, "unknown tournament type %v", cfg.Type)
	}
	if cfg.BuyIn.IsNegative() {
		return nil, fault.Errorf(fault.InvalidInput, "buy-in %s is negative", cfg.BuyIn)
	}
	if cfg.Type.HasBounties() && !cfg.Bounty.IsPositive() {
		return nil, fault.Errorf(fault.InvalidInput, "a knockout tournament needs a positive bounty, got %s", cfg.Bounty)
	}
	if len(cfg.Levels) == 0 {
		return nil, fault.Errorf(fault.InvalidInput, "blind schedule has no levels")
	}
	for i, lvl := range cfg.Levels {
		if err := lvl.Validate(); err != nil {
			return nil, fault.Errorf(fault.InvalidInput, "level %d: %w", i+1, err)
		}
	}
	if cfg.Paytable == nil {
		return nil, fault.Errorf(fault.InvalidInput, "no payout structures")
	}
	if err := cfg.Paytable.Validate(); err != nil {
		return nil, fault.New(fault.InvalidInput, err)
	}
	if cfg.DriftPolicy != DriftRepair && cfg.DriftPolicy != DriftReject {
		return nil, fault.Errorf(fault.InvalidInput, "unknown drift policy %d", int(cfg.DriftPolicy))
	}

	pt, err := paytable.New(cfg.Paytable.Name, cfg.Paytable.Structures...)
	if err != nil {
		return nil, fault.New(fault.InvalidInput, err)
	}

	l := &Ledger{
		id:             uuid.New(),
		clock:          clockwork.NewRealClock(),
		tournamentType: cfg.Type,
		buyIn:          cfg.BuyIn,
		levels:         append([]model.BlindLevel(nil), cfg.Levels...),
		paytable:       pt,
		driftPolicy:    cfg.DriftPolicy,
		totalPrizePool: decimal.Zero,
	}
	if cfg.Type.HasBounties() {
		l.bounty = cfg.Bounty
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *Ledger) ID() uuid.UUID {
	return l.id
}

func (l *Ledger) Type() model.TournamentType {
	return l.tournamentType
}

func (l *Ledger) BuyIn() decimal.Decimal {
	return l.buyIn
}

// BountyAmount is the configured starting bounty, zero for Regular.
func (l *Ledger) BountyAmount() decimal.Decimal {
	return l.bounty
}

func (l *Ledger) DriftPolicy() DriftPolicy {
	return l.driftPolicy
}

// Paytable returns a copy of the payout structures in use.
func (l *Ledger) Paytable() *paytable.Paytable {
	return l.paytable.Clone()
}
