package ts

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock wraps clockwork.Clock so that Now is a little more convenient for
// settlement stamps that humans read.
type Clock struct {
	realClock clockwork.Clock
}

func NewRealClock() *Clock {
	return &Clock{
		realClock: clockwork.NewRealClock(),
	}
}

// NewClock wraps any clockwork clock; tests pass a fake one.
func NewClock(c clockwork.Clock) *Clock {
	return &Clock{
		realClock: c,
	}
}

// Now provides a timestamp truncated to the second, and in local time,
// convenient for human-readable times.
func (c *Clock) Now() time.Time {
	return c.realClock.Now().Local().Truncate(time.Second)
}
