package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ts4z/pkoledger/paytable"
	"github.com/ts4z/pkoledger/textutil"
)

// TotalPrizePool is registrations times buy-in.
func (l *Ledger) TotalPrizePool() decimal.Decimal {
	return l.totalPrizePool
}

// ActiveStructure picks the payout tier for the current registration count.
// Nothing is cached: registrations change the answer.
func (l *Ledger) ActiveStructure() *paytable.Structure {
	return l.paytable.Select(l.Count()).Clone()
}

// PrizeFor returns the cash owed to a finishing position, or false if the
// position is not paid.
func (l *Ledger) PrizeFor(position int) (decimal.Decimal, bool) {
	return l.paytable.Select(l.Count()).Prize(l.totalPrizePool, position)
}

// PrizeSheet lists every paid place under the active structure.
func (l *Ledger) PrizeSheet() []paytable.Prize {
	return l.paytable.Select(l.Count()).Sheet(l.totalPrizePool)
}

// PrizePoolText renders the prize sheet for display, one place per line.
func (l *Ledger) PrizePoolText() string {
	prizes := l.PrizeSheet()
	if len(prizes) == 0 {
		return ""
	}
	lines := make([]string, 0, len(prizes))
	for _, p := range prizes {
		lines = append(lines, fmt.Sprintf("%s: %s", textutil.FormatPlace(p.Place), textutil.FormatMoney(p.Amount)))
	}
	return strings.Join(lines, "\n")
}
