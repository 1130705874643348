package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ts4z/pkoledger/defaults"
	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/model"
	"github.com/ts4z/pkoledger/paytable"
)

var startTime = time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), append([]any{fmt.Sprintf("want %s, got %s", want, got)}, msgAndArgs...)...)
}

func testPaytable(t *testing.T) *paytable.Paytable {
	t.Helper()
	pt, err := paytable.New("test",
		paytable.FromBasisPoints(2, 6500, 3500),
		paytable.FromBasisPoints(7, 5000, 3000, 2000),
	)
	require.NoError(t, err)
	return pt
}

func testConfig(t *testing.T, tt model.TournamentType) Config {
	return Config{
		Type:     tt,
		BuyIn:    dec("100"),
		Bounty:   dec("100"),
		Levels:   defaults.Structure(),
		Paytable: testPaytable(t),
	}
}

func newLedger(t *testing.T, tt model.TournamentType, names ...string) (*Ledger, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(startTime)
	l, err := New(testConfig(t, tt), WithClock(clock))
	require.NoError(t, err)
	for _, name := range names {
		_, err := l.Register(name)
		require.NoError(t, err)
	}
	return l, clock
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative buy-in", func(c *Config) { c.BuyIn = dec("-1") }},
		{"pko without bounty", func(c *Config) { c.Bounty = decimal.Zero }},
		{"pko with negative bounty", func(c *Config) { c.Bounty = dec("-5") }},
		{"no levels", func(c *Config) { c.Levels = nil }},
		{"bad level", func(c *Config) { c.Levels = []model.BlindLevel{{SmallBlind: 50, BigBlind: 25, Duration: time.Minute}} }},
		{"no paytable", func(c *Config) { c.Paytable = nil }},
		{"overrun structure", func(c *Config) {
			c.Paytable = &paytable.Paytable{Name: "bad", Structures: []*paytable.Structure{paytable.FromBasisPoints(2, 8000, 4000)}}
		}},
		{"no fallback structure", func(c *Config) {
			c.Paytable = &paytable.Paytable{Name: "bad", Structures: []*paytable.Structure{paytable.FromBasisPoints(10, 10000)}}
		}},
		{"unknown type", func(c *Config) { c.Type = model.TournamentType(7) }},
		{"unknown drift policy", func(c *Config) { c.DriftPolicy = DriftPolicy(9) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, model.PKO)
			tt.mutate(&cfg)
			_, err := New(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, fault.InvalidInput)
		})
	}
}

func TestNewRegularIgnoresBounty(t *testing.T) {
	cfg := testConfig(t, model.Regular)
	cfg.Bounty = decimal.Zero
	l, err := New(cfg)
	require.NoError(t, err)
	assert.True(t, l.BountyAmount().IsZero())
	assert.Equal(t, model.Regular, l.Type())
}

func TestNewCopiesInputs(t *testing.T) {
	cfg := testConfig(t, model.PKO)
	id := uuid.MustParse("6f1c1e5e-8a43-4f47-9d43-1f0d2a51a8c1")
	l, err := New(cfg, WithID(id))
	require.NoError(t, err)
	assert.Equal(t, id, l.ID())

	cfg.Levels[0].BigBlind = 1_000_000
	cfg.Paytable.Structures[0].Positions[1] = dec("0.01")
	assert.Equal(t, int64(50), l.CurrentLevel().BigBlind)
	share, ok := l.Paytable().Structures[0].Share(1)
	require.True(t, ok)
	assertAmount(t, "0.65", share)
}

func TestRegister(t *testing.T) {
	l, _ := newLedger(t, model.PKO)

	p, err := l.Register("  Alice ")
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Alice", p.Name)
	require.True(t, p.Bounty.Valid)
	assertAmount(t, "100", p.Bounty.Decimal)
	assert.False(t, p.Eliminated)
	assert.False(t, p.HasPosition())

	p, err = l.Register("Bob")
	require.NoError(t, err)
	assert.Equal(t, 2, p.ID)
	assertAmount(t, "200", l.TotalPrizePool())
	assert.Equal(t, 2, l.Count())
	assert.Equal(t, 2, l.RemainingPlayers())
}

func TestRegisterRejectsEmptyName(t *testing.T) {
	l, _ := newLedger(t, model.PKO, "Alice")
	_, err := l.Register("   ")
	assert.ErrorIs(t, err, fault.InvalidInput)
	assert.Equal(t, 1, l.Count())
	assertAmount(t, "100", l.TotalPrizePool())
}

func TestRegisterRegularHasNoBounty(t *testing.T) {
	l, _ := newLedger(t, model.Regular, "Alice")
	p, err := l.Player(1)
	require.NoError(t, err)
	assert.False(t, p.Bounty.Valid)
}

func TestPlayerNotFound(t *testing.T) {
	l, _ := newLedger(t, model.PKO, "Alice")
	for _, id := range []int{0, -1, 2} {
		_, err := l.Player(id)
		assert.ErrorIs(t, err, fault.NotFound)
		assert.ErrorIs(t, err, fault.InvalidInput)
	}
}

func TestEliminateAssignsPositions(t *testing.T) {
	l, _ := newLedger(t, model.Regular, "A", "B", "C", "D")

	p, err := l.Eliminate(2)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Position)
	assert.True(t, p.Eliminated)

	p, err = l.Eliminate(4)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Position)

	assert.Equal(t, 2, l.RemainingPlayers())
	var active []int
	for _, p := range l.ActivePlayers() {
		active = append(active, p.ID)
	}
	assert.Equal(t, []int{1, 3}, active)
	assert.Len(t, l.Players(), 4)
}

func TestEliminateTwiceIsInvalidState(t *testing.T) {
	l, _ := newLedger(t, model.Regular, "A", "B", "C")
	_, err := l.Eliminate(3)
	require.NoError(t, err)

	_, err = l.Eliminate(3)
	assert.ErrorIs(t, err, fault.InvalidState)
	p, _ := l.Player(3)
	assert.Equal(t, 3, p.Position)
	assert.Len(t, l.History(), 1)
}

func TestLevels(t *testing.T) {
	l, _ := newLedger(t, model.PKO)
	n := len(l.Levels())
	require.Greater(t, n, 1)

	assert.ErrorIs(t, l.PreviousLevel(), fault.InvalidState)
	assert.Equal(t, 0, l.CurrentLevelNumber())

	next, ok := l.NextLevel()
	require.True(t, ok)
	require.NoError(t, l.AdvanceLevel())
	assert.Equal(t, next, l.CurrentLevel())

	for l.CurrentLevelNumber() < n-1 {
		require.NoError(t, l.AdvanceLevel())
	}
	_, ok = l.NextLevel()
	assert.False(t, ok)
	assert.ErrorIs(t, l.AdvanceLevel(), fault.InvalidState)
	assert.Equal(t, n-1, l.CurrentLevelNumber())

	require.NoError(t, l.PreviousLevel())
	assert.Equal(t, n-2, l.CurrentLevelNumber())
}

func TestHandForHand(t *testing.T) {
	l, _ := newLedger(t, model.PKO, "A", "B")
	assert.False(t, l.HandForHand())
	assert.True(t, l.ToggleHandForHand())
	assert.True(t, l.HandForHand())
	l.SetHandForHand(false)
	assert.False(t, l.HandForHand())

	// no bearing on settlement
	l.SetHandForHand(true)
	cash, err := l.ProcessKnockout(1, 2)
	require.NoError(t, err)
	assertAmount(t, "50", cash)
}

func TestLockedSerializesRegistrations(t *testing.T) {
	l, _ := newLedger(t, model.PKO)
	lk := NewLocked(l)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := lk.Do(func(l *Ledger) error {
				_, err := l.Register(fmt.Sprintf("player %d", i))
				return err
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	err := lk.Do(func(l *Ledger) error {
		if l.Count() != n {
			return fmt.Errorf("count %d", l.Count())
		}
		return nil
	})
	assert.NoError(t, err)
	assertAmount(t, "5000", l.TotalPrizePool())
}

func TestLockedPassesErrorsThrough(t *testing.T) {
	l, _ := newLedger(t, model.PKO, "A")
	lk := NewLocked(l)
	err := lk.Do(func(l *Ledger) error {
		_, err := l.ProcessKnockout(1, 1)
		return err
	})
	assert.True(t, errors.Is(err, fault.InvalidInput))
}

func TestNewLockedNeedsALedger(t *testing.T) {
	assert.Panics(t, func() { NewLocked(nil) })
}
