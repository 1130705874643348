package ts

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestNowTruncatesToSecond(t *testing.T) {
	at := time.Date(2025, 3, 14, 20, 15, 9, 987654321, time.UTC)
	c := NewClock(clockwork.NewFakeClockAt(at))

	got := c.Now()
	assert.Equal(t, 0, got.Nanosecond())
	assert.True(t, got.Equal(at.Truncate(time.Second)))
}

func TestRealClockAdvances(t *testing.T) {
	c := NewRealClock()
	assert.False(t, c.Now().IsZero())
}
