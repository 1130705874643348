package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"maze.io/x/duration"
)

var (
	dashDashRE = regexp.MustCompile(`\s*--\s*`)
	slashRE    = regexp.MustCompile(`\s*/\s*`)
)

// TournamentType selects the settlement rules.  It is fixed for the life of
// a tournament.
type TournamentType int

const (
	Regular TournamentType = iota
	PKO
)

func (tt TournamentType) String() string {
	switch tt {
	case Regular:
		return "Regular"
	case PKO:
		return "Progressive Knockout"
	default:
		return fmt.Sprintf("TournamentType(%d)", int(tt))
	}
}

// HasBounties reports whether knockouts move money in this format.
func (tt TournamentType) HasBounties() bool {
	return tt == PKO
}

func ParseTournamentType(s string) (TournamentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular", "":
		return Regular, nil
	case "pko", "progressive-knockout", "progressive knockout":
		return PKO, nil
	}
	return Regular, fmt.Errorf("unknown tournament type %q", s)
}

// Player is one entrant.
type Player struct {
	ID   int
	Name string
	// Bounty is the cash on this player's head.  Invalid in Regular
	// tournaments.
	Bounty     decimal.NullDecimal
	Eliminated bool
	// Position is the finishing rank, 1 for the winner.  Zero while unset.
	// Single eliminations record the rank in the tournament.  A multiway
	// bust records the rank within that hand as the caller supplied it.
	Position int
}

func (p Player) HasPosition() bool {
	return p.Position > 0
}

// BlindLevel is one step of the blind schedule.
type BlindLevel struct {
	SmallBlind int64
	BigBlind   int64
	Ante       int64
	Duration   time.Duration
}

func (l BlindLevel) String() string {
	if l.Ante > 0 {
		return fmt.Sprintf("%d-%d + %d ANTE", l.SmallBlind, l.BigBlind, l.Ante)
	}
	return fmt.Sprintf("%d-%d", l.SmallBlind, l.BigBlind)
}

// DoubledLevel builds the level that follows prev when a schedule is
// extended by hand: blinds and any ante double, duration carries over.
func DoubledLevel(prev BlindLevel) BlindLevel {
	return BlindLevel{
		SmallBlind: prev.SmallBlind * 2,
		BigBlind:   prev.BigBlind * 2,
		Ante:       prev.Ante * 2,
		Duration:   prev.Duration,
	}
}

// ExtendLevels returns a copy of levels with n doubled levels appended.  An
// empty schedule starts from 100-200 at 20 minutes.
func ExtendLevels(levels []BlindLevel, n int) []BlindLevel {
	out := make([]BlindLevel, len(levels), len(levels)+max(n, 0))
	copy(out, levels)
	for i := 0; i < n; i++ {
		if len(out) == 0 {
			out = append(out, BlindLevel{SmallBlind: 100, BigBlind: 200, Duration: 20 * time.Minute})
			continue
		}
		out = append(out, DoubledLevel(out[len(out)-1]))
	}
	return out
}

// ParseLevels reads one level per line in the form
//
//	SB/BB/ANTE -- DURATION
//
// where the ante may be omitted and DURATION is anything maze.io/x/duration
// accepts ("20m", "1h30m", "1d").  Blank lines and lines starting with #
// are skipped.
func ParseLevels(input string) ([]BlindLevel, error) {
	levels := []BlindLevel{}
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := dashDashRE.Split(line, 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line unparsable: %q", line)
		}
		lvl, err := parseBlinds(parts[0])
		if err != nil {
			return nil, fmt.Errorf("can't parse blinds in line %q: %w", line, err)
		}
		d, err := duration.ParseDuration(parts[1])
		if err != nil {
			return nil, fmt.Errorf("can't parse duration in line %q: %w", line, err)
		}
		lvl.Duration = time.Duration(d)
		if err := lvl.Validate(); err != nil {
			return nil, fmt.Errorf("line %q: %w", line, err)
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

func parseBlinds(s string) (BlindLevel, error) {
	fields := slashRE.Split(strings.TrimSpace(s), -1)
	if len(fields) < 2 || len(fields) > 3 {
		return BlindLevel{}, fmt.Errorf("want SB/BB or SB/BB/ANTE, got %q", s)
	}
	nums := make([]int64, 3)
	for i, f := range fields {
		n, err := strconv.ParseInt(strings.ReplaceAll(f, ",", ""), 10, 64)
		if err != nil {
			return BlindLevel{}, err
		}
		nums[i] = n
	}
	return BlindLevel{SmallBlind: nums[0], BigBlind: nums[1], Ante: nums[2]}, nil
}

// Validate rejects levels no dealer could run.
func (l BlindLevel) Validate() error {
	if l.SmallBlind < 0 || l.BigBlind <= 0 || l.Ante < 0 {
		return fmt.Errorf("blinds must be positive: %v", l)
	}
	if l.SmallBlind > l.BigBlind {
		return fmt.Errorf("small blind %d exceeds big blind %d", l.SmallBlind, l.BigBlind)
	}
	if l.Duration <= 0 {
		return fmt.Errorf("level %v has no duration", l)
	}
	return nil
}

// MultiwayAllInResult is the outcome of one hand where several players were
// all in together.  Positions maps player id to rank within the hand, 1
// being the player who survives.
type MultiwayAllInResult struct {
	PlayerIDs []int
	Positions map[int]int
}
