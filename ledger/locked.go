package ledger

import (
	"sync"

	"github.com/ts4z/pkoledger/dep"
)

// Locked serializes every access to one Ledger.  Knockout settlement reads
// and then writes two or more players, so concurrent reporters must share a
// single Locked per tournament.
type Locked struct {
	mu sync.Mutex
	l  *Ledger
}

func NewLocked(l *Ledger) *Locked {
	return &Locked{l: dep.Required(l)}
}

// Do runs f with exclusive access to the ledger.
func (lk *Locked) Do(f func(*Ledger) error) error {
	lk.mu.Lock()
	defer lk.mu.Unlock()
	return f(lk.l)
}
