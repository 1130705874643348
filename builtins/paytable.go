package builtins

import (
	"github.com/ts4z/pkoledger/paytable"
)

const (
	HomeGamePaytableName = "Home Game"
	BARGEPaytableName    = "BARGE Unified Poker Payouts"
)

// homeGamePaytable is the table the club has always used: two paid up to six
// entrants, then three, five and seven places.
var homeGamePaytable = &paytable.Paytable{
	Name: HomeGamePaytableName,
	Structures: []*paytable.Structure{
		paytable.FromBasisPoints(2, 6500, 3500),
		paytable.FromBasisPoints(7, 5000, 3000, 2000),
		paytable.FromBasisPoints(15, 4000, 2500, 1500, 1200, 800),
		paytable.FromBasisPoints(30, 3500, 2000, 1500, 1000, 800, 700, 500),
	},
}

// bargePaytable is the BARGE 2025 payout structure from page 14 of the 2025
// BARGE Structures PDF, with each row keyed by its lower player bound.
// Tournaments with less than 5 players are winner take all.
var bargePaytable = &paytable.Paytable{
	Name: BARGEPaytableName,
	Structures: []*paytable.Structure{
		paytable.FromBasisPoints(1, 10000),
		paytable.FromBasisPoints(5, 6500, 3500),
		paytable.FromBasisPoints(9, 5000, 3000, 2000),
		paytable.FromBasisPoints(16, 4200, 2600, 1800, 1400),
		paytable.FromBasisPoints(25, 3600, 2400, 1700, 1300, 1000),
		paytable.FromBasisPoints(36, 3100, 2200, 1700, 1300, 1000, 700),
		paytable.FromBasisPoints(48, 2800, 2100, 1600, 1300, 1000, 700, 500),
		paytable.FromBasisPoints(56, 2700, 2000, 1600, 1200, 900, 700, 500, 400),
		paytable.FromBasisPoints(65, 2600, 1900, 1500, 1200, 900, 700, 500, 400, 300),
		paytable.FromBasisPoints(73, 2500, 1900, 1400, 1100, 900, 700, 500, 400, 300, 300),
		paytable.FromBasisPoints(81, 2500, 1800, 1300, 1000, 800, 600, 500, 400, 300, 300, 250, 250),
		paytable.FromBasisPoints(97, 2500, 1700, 1200, 900, 700, 600, 400, 300, 300, 300, 250, 250, 200, 200, 200),
		paytable.FromBasisPoints(121, 2400, 1600, 1200, 900, 700, 500, 400, 300, 250, 250, 225, 225, 200, 200, 200, 150, 150, 150),
		paytable.FromBasisPoints(145, 2300, 1500, 1100, 850, 600, 500, 400, 300, 250, 250, 225, 225, 200, 200, 200, 150, 150, 150, 150, 150, 150),
	},
}

func HomeGamePaytable() *paytable.Paytable {
	return homeGamePaytable.Clone()
}

func BARGEPaytable() *paytable.Paytable {
	return bargePaytable.Clone()
}

// Paytables returns fresh copies of every built-in table.
func Paytables() []*paytable.Paytable {
	return []*paytable.Paytable{HomeGamePaytable(), BARGEPaytable()}
}
