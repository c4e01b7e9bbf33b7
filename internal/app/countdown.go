package app

import (
	"sync"
	"time"

	"trivia-quiz-service/internal/clock"
)

// CountdownState is the lifecycle of a question timer.
type CountdownState int

const (
	CountdownIdle CountdownState = iota
	CountdownRunning
	CountdownExpired
)

func (s CountdownState) String() string {
	switch s {
	case CountdownRunning:
		return "running"
	case CountdownExpired:
		return "expired"
	default:
		return "idle"
	}
}

// Countdown ticks once per interval and fires its expiry callback exactly once.
// Callbacks run outside the countdown's lock, on the clock's goroutine.
type Countdown struct {
	clock    clock.Clock
	interval time.Duration

	mu        sync.Mutex
	state     CountdownState
	remaining int
	run       uint64
	timer     clock.Timer
	onTick    func(remaining int)
	onExpire  func()
}

// NewCountdown creates an idle countdown. A non-positive interval means one second.
func NewCountdown(c clock.Clock, interval time.Duration) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{clock: c, interval: interval}
}

// Start begins counting down from seconds, cancelling any countdown already running.
// onTick receives the remaining seconds after every decrement; onExpire runs once at zero.
// Neither callback is invoked synchronously from Start.
func (c *Countdown) Start(seconds int, onTick func(remaining int), onExpire func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.run++
	c.state = CountdownRunning
	c.remaining = seconds
	c.onTick = onTick
	c.onExpire = onExpire

	run := c.run
	delay := c.interval
	if seconds <= 0 {
		delay = 0
	}
	c.timer = c.clock.AfterFunc(delay, func() { c.tick(run) })
}

// Cancel stops a running countdown without firing the expiry callback. It is a no-op otherwise.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != CountdownRunning {
		return
	}
	c.stopLocked()
	c.run++
	c.state = CountdownIdle
}

// State returns the current lifecycle state.
func (c *Countdown) State() CountdownState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Remaining returns the seconds left on the current countdown.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) tick(run uint64) {
	c.mu.Lock()
	if run != c.run || c.state != CountdownRunning {
		c.mu.Unlock()
		return
	}
	if c.remaining > 0 {
		c.remaining--
	}
	remaining := c.remaining
	onTick := c.onTick
	var onExpire func()
	if remaining == 0 {
		c.state = CountdownExpired
		c.timer = nil
		onExpire = c.onExpire
	} else {
		c.timer = c.clock.AfterFunc(c.interval, func() { c.tick(run) })
	}
	c.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if onExpire != nil {
		onExpire()
	}
}

func (c *Countdown) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
