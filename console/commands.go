package console

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/ledger"
	"github.com/ts4z/pkoledger/model"
	"github.com/ts4z/pkoledger/textutil"
	"github.com/ts4z/pkoledger/varz"
)

var commands map[string]command

// commands refers to help, which lists commands, so it is built in init.
func init() {
	commands = map[string]command{
		"register": {"register NAME", "add a player and a buy-in", register},
		"ko":       {"ko ELIMINATOR ELIMINATED", "settle a knockout", knockout},
		"allin":    {"allin ID:POS ID:POS...", "settle a multiway all-in, 1 being the survivor", allIn},
		"out":      {"out ID", "eliminate a player with no bounty movement", eliminate},
		"players":  {"players", "list every player", players},
		"active":   {"active", "list players still in", active},
		"pool":     {"pool", "show the prize pool", pool},
		"payouts":  {"payouts", "show the prize sheet for the current field", payouts},
		"prize":    {"prize POS", "show what a place pays", prize},
		"level":    {"level", "show the current blind level", level},
		"next":     {"next", "advance to the next blind level", nextLevel},
		"prev":     {"prev", "go back one blind level", prevLevel},
		"hfh":      {"hfh [on|off]", "toggle or set hand-for-hand", handForHand},
		"history":  {"history", "list settlements", history},
		"stats":    {"stats", "show command and cache counters", stats},
		"help":     {"help", "this message", help},
		"quit":     {"quit", "stop reading commands", quit},
	}
}

func decomma(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(decomma(s))
	if err != nil {
		return 0, fault.Errorf(fault.InvalidInput, "%q is not a number", s)
	}
	return n, nil
}

func wantArgs(args []string, n int, usage string) error {
	if len(args) != n {
		return fault.Errorf(fault.InvalidInput, "usage: %s", usage)
	}
	return nil
}

func register(c *Console, args []string) error {
	if len(args) == 0 {
		return fault.Errorf(fault.InvalidInput, "usage: register NAME")
	}
	name := strings.Join(args, " ")
	return c.do(func(l *ledger.Ledger) error {
		p, err := l.Register(name)
		if err != nil {
			return err
		}
		if p.Bounty.Valid {
			c.success("Registered #%d %s, bounty %s", p.ID, p.Name, textutil.FormatBounty(p.Bounty))
		} else {
			c.success("Registered #%d %s", p.ID, p.Name)
		}
		return nil
	})
}

func knockout(c *Console, args []string) error {
	if err := wantArgs(args, 2, commands["ko"].usage); err != nil {
		return err
	}
	eliminator, err := parseInt(args[0])
	if err != nil {
		return err
	}
	eliminated, err := parseInt(args[1])
	if err != nil {
		return err
	}
	return c.do(func(l *ledger.Ledger) error {
		cash, err := l.ProcessKnockout(eliminator, eliminated)
		if err != nil {
			return err
		}
		winner, _ := l.Player(eliminator)
		loser, _ := l.Player(eliminated)
		c.success("%s knocks out %s in %s: %s cash, bounty now %s",
			winner.Name, loser.Name, textutil.FormatPlace(loser.Position),
			textutil.FormatMoney(cash), textutil.FormatBounty(winner.Bounty))
		return nil
	})
}

// parseAllIn reads "ID:POS" pairs.  "ID=POS" also works.
func parseAllIn(args []string) (model.MultiwayAllInResult, error) {
	r := model.MultiwayAllInResult{Positions: map[int]int{}}
	for _, arg := range args {
		idText, posText, ok := strings.Cut(arg, ":")
		if !ok {
			idText, posText, ok = strings.Cut(arg, "=")
		}
		if !ok {
			return r, fault.Errorf(fault.InvalidInput, "want ID:POS, got %q", arg)
		}
		id, err := parseInt(idText)
		if err != nil {
			return r, err
		}
		pos, err := parseInt(posText)
		if err != nil {
			return r, err
		}
		r.PlayerIDs = append(r.PlayerIDs, id)
		r.Positions[id] = pos
	}
	return r, nil
}

func allIn(c *Console, args []string) error {
	r, err := parseAllIn(args)
	if err != nil {
		return err
	}
	return c.do(func(l *ledger.Ledger) error {
		won, err := l.ProcessMultiwayAllIn(r)
		if err != nil {
			return err
		}
		if !l.Type().HasBounties() {
			c.info("No bounties in a %v tournament", l.Type())
			return nil
		}
		data := pterm.TableData{{"#", "Name", "Result", "Cash", "Bounty"}}
		for _, p := range sortedByPosition(l, r) {
			result := "survives"
			if p.Eliminated {
				result = "out " + textutil.FormatPlace(p.Position)
			}
			cash := "-"
			if amt, ok := won[p.ID]; ok {
				cash = textutil.FormatMoney(amt)
			}
			data = append(data, []string{strconv.Itoa(p.ID), p.Name, result, cash, textutil.FormatBounty(p.Bounty)})
		}
		return c.table(data)
	})
}

func sortedByPosition(l *ledger.Ledger, r model.MultiwayAllInResult) []model.Player {
	ps := make([]model.Player, 0, len(r.PlayerIDs))
	for _, id := range r.PlayerIDs {
		p, _ := l.Player(id)
		ps = append(ps, p)
	}
	slices.SortFunc(ps, func(a, b model.Player) int {
		return r.Positions[a.ID] - r.Positions[b.ID]
	})
	return ps
}

func eliminate(c *Console, args []string) error {
	if err := wantArgs(args, 1, commands["out"].usage); err != nil {
		return err
	}
	id, err := parseInt(args[0])
	if err != nil {
		return err
	}
	return c.do(func(l *ledger.Ledger) error {
		p, err := l.Eliminate(id)
		if err != nil {
			return err
		}
		c.success("%s finishes %s", p.Name, textutil.FormatPlace(p.Position))
		return nil
	})
}

func playerTable(c *Console, ps []model.Player) error {
	if len(ps) == 0 {
		c.info("No players")
		return nil
	}
	data := pterm.TableData{{"#", "Name", "Bounty", "Status"}}
	for _, p := range ps {
		status := "in"
		if p.Eliminated {
			status = "out"
			if p.HasPosition() {
				status = textutil.FormatPlace(p.Position)
			}
		}
		data = append(data, []string{strconv.Itoa(p.ID), p.Name, textutil.FormatBounty(p.Bounty), status})
	}
	return c.table(data)
}

func players(c *Console, args []string) error {
	return c.do(func(l *ledger.Ledger) error {
		return playerTable(c, l.Players())
	})
}

func active(c *Console, args []string) error {
	return c.do(func(l *ledger.Ledger) error {
		return playerTable(c, l.ActivePlayers())
	})
}

func pool(c *Console, args []string) error {
	return c.do(func(l *ledger.Ledger) error {
		c.info("Prize pool %s from %d entries, %d remaining",
			textutil.FormatMoney(l.TotalPrizePool()), l.Count(), l.RemainingPlayers())
		if l.Type().HasBounties() {
			c.info("Bounty cash paid %s", textutil.FormatMoney(l.BountyCashPaid()))
		}
		return nil
	})
}

func payouts(c *Console, args []string) error {
	return c.do(func(l *ledger.Ledger) error {
		data := pterm.TableData{{"Place", "Share", "Prize"}}
		for _, p := range l.PrizeSheet() {
			data = append(data, []string{
				textutil.FormatPlace(p.Place),
				p.Share.Mul(decimal.NewFromInt(100)).String() + "%",
				textutil.FormatMoney(p.Amount),
			})
		}
		return c.table(data)
	})
}

func prize(c *Console, args []string) error {
	if err := wantArgs(args, 1, commands["prize"].usage); err != nil {
		return err
	}
	pos, err := parseInt(args[0])
	if err != nil {
		return err
	}
	return c.do(func(l *ledger.Ledger) error {
		amt, ok := l.PrizeFor(pos)
		if !ok {
			c.info("%s is not paid", textutil.FormatPlace(pos))
			return nil
		}
		c.info("%s pays %s", textutil.FormatPlace(pos), textutil.FormatMoney(amt))
		return nil
	})
}

func showLevel(c *Console, l *ledger.Ledger) {
	cur := l.CurrentLevel()
	msg := fmt.Sprintf("Level %d: %s for %s", l.CurrentLevelNumber()+1, cur, cur.Duration)
	if next, ok := l.NextLevel(); ok {
		msg += fmt.Sprintf(", next %s", next)
	}
	if l.HandForHand() {
		msg += ", hand for hand"
	}
	c.info("%s", msg)
}

func level(c *Console, args []string) error {
	return c.do(func(l *ledger.Ledger) error {
		showLevel(c, l)
		return nil
	})
}

func nextLevel(c *Console, args []string) error {
	return c.do(func(l *ledger.Ledger) error {
		if err := l.AdvanceLevel(); err != nil {
			return err
		}
		showLevel(c, l)
		return nil
	})
}

func prevLevel(c *Console, args []string) error {
	return c.do(func(l *ledger.Ledger) error {
		if err := l.PreviousLevel(); err != nil {
			return err
		}
		showLevel(c, l)
		return nil
	})
}

func handForHand(c *Console, args []string) error {
	if len(args) > 1 {
		return fault.Errorf(fault.InvalidInput, "usage: %s", commands["hfh"].usage)
	}
	return c.do(func(l *ledger.Ledger) error {
		on := false
		if len(args) == 0 {
			on = l.ToggleHandForHand()
		} else {
			switch strings.ToLower(args[0]) {
			case "on":
				on = true
			case "off":
			default:
				return fault.Errorf(fault.InvalidInput, "hand-for-hand is on or off, not %q", args[0])
			}
			l.SetHandForHand(on)
		}
		if on {
			c.info("Hand for hand: on")
		} else {
			c.info("Hand for hand: off")
		}
		return nil
	})
}

func history(c *Console, args []string) error {
	return c.do(func(l *ledger.Ledger) error {
		h := l.History()
		if len(h) == 0 {
			c.info("Nothing settled yet")
			return nil
		}
		data := pterm.TableData{{"Seq", "Time", "Kind", "Out", "Cash"}}
		for _, s := range h {
			data = append(data, []string{
				strconv.Itoa(s.Seq),
				s.At.Format(time.Kitchen),
				s.Kind.String(),
				textutil.JoinInts(s.Eliminated, ","),
				textutil.FormatMoney(s.TotalCash()),
			})
		}
		return c.table(data)
	})
}

func stats(c *Console, args []string) error {
	data := pterm.TableData{{"Counter", "Value"}}
	for _, prefix := range []string{"console.", "state."} {
		for _, kv := range varz.Snapshot(prefix) {
			data = append(data, []string{kv[0], kv[1]})
		}
	}
	return c.table(data)
}

func help(c *Console, args []string) error {
	data := pterm.TableData{{"Command", "Does"}}
	for _, name := range commandNames() {
		data = append(data, []string{commands[name].usage, commands[name].help})
	}
	return c.table(data)
}

func quit(c *Console, args []string) error {
	return ErrQuit
}
