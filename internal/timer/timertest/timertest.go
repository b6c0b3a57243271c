// Package timertest runs timer.Clock on a fake clock.
package timertest

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aliskhannn/quiz-engine/internal/timer"
)

// Clock is a timer.Clock whose time only moves on Advance.
type Clock struct {
	*timer.Clock
	Fake *clockwork.FakeClock
}

// New creates a fake clock.
func New() *Clock {
	fake := clockwork.NewFakeClock()
	return &Clock{
		Clock: timer.New(fake),
		Fake:  fake,
	}
}

// Advance moves the time forward by d. Deadlines inside the window are reached
// one at a time and the callbacks due at each return before the next one.
func (c *Clock) Advance(d time.Duration) {
	target := c.Fake.Now().Add(d)

	for {
		next, ok := c.Next()
		if !ok || next.After(target) {
			break
		}
		c.Fake.Advance(next.Sub(c.Fake.Now()))
		c.Settle()
	}

	if rest := target.Sub(c.Fake.Now()); rest > 0 {
		c.Fake.Advance(rest)
	}
	c.Settle()
}
