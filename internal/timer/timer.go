// Package timer schedules delayed callbacks that can be cancelled.
package timer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Handle cancels a scheduled callback.
// Stop reports whether the call prevented the callback from running.
type Handle interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
	Now() time.Time
}

// Clock is a Scheduler on top of a clockwork.Clock. It keeps track of the
// callbacks it scheduled until they return or are stopped.
type Clock struct {
	clock clockwork.Clock

	mu    sync.Mutex
	tasks map[*task]struct{}
}

// New creates a Clock that schedules on c.
func New(c clockwork.Clock) *Clock {
	return &Clock{
		clock: c,
		tasks: make(map[*task]struct{}),
	}
}

// NewReal creates a Clock backed by the runtime timers.
func NewReal() *Clock {
	return New(clockwork.NewRealClock())
}

// Now returns the current time of the underlying clock.
func (c *Clock) Now() time.Time {
	return c.clock.Now()
}

// AfterFunc runs fn once after d on its own goroutine.
func (c *Clock) AfterFunc(d time.Duration, fn func()) Handle {
	t := &task{
		owner: c,
		due:   c.clock.Now().Add(d),
		done:  make(chan struct{}),
	}

	c.mu.Lock()
	c.tasks[t] = struct{}{}
	c.mu.Unlock()

	t.timer = c.clock.AfterFunc(d, func() {
		defer t.finish()
		fn()
	})
	return t
}

// Pending returns the number of callbacks that are scheduled or running.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Next returns the earliest due time of the scheduled callbacks.
func (c *Clock) Next() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		next  time.Time
		found bool
	)
	for t := range c.tasks {
		if !found || t.due.Before(next) {
			next, found = t.due, true
		}
	}
	return next, found
}

// Settle blocks until every callback due by the current time has returned,
// including the ones those callbacks schedule for the same instant.
func (c *Clock) Settle() {
	for {
		t := c.due()
		if t == nil {
			return
		}
		<-t.done
	}
}

func (c *Clock) due() *task {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	for t := range c.tasks {
		if !t.due.After(now) {
			return t
		}
	}
	return nil
}

type task struct {
	owner *Clock
	due   time.Time
	timer clockwork.Timer
	done  chan struct{}
	once  sync.Once
}

func (t *task) Stop() bool {
	if !t.timer.Stop() {
		return false
	}
	t.finish()
	return true
}

func (t *task) finish() {
	t.once.Do(func() {
		t.owner.mu.Lock()
		delete(t.owner.tasks, t)
		t.owner.mu.Unlock()
		close(t.done)
	})
}
