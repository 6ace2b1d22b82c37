package tui

import "time"

// timerState tracks the current state of the phase clock.
type timerState int

const (
	timerStopped timerState = iota
	timerRunning
	timerPaused
)

// phaseClock counts one phase down from its planned length. It knows nothing
// about the store; the pomodoro model decides what a finished phase means.
type phaseClock struct {
	now func() time.Time

	state     timerState
	planned   time.Duration
	startTime time.Time
	pausedAt  time.Time // when paused, to compute pause gap
	pauseGap  time.Duration
}

func newPhaseClock() phaseClock {
	return phaseClock{now: time.Now, state: timerStopped}
}

func (c *phaseClock) start(planned time.Duration) {
	c.state = timerRunning
	c.planned = planned
	c.startTime = c.now()
	c.pauseGap = 0
}

// stop halts the clock and returns the time actually run.
func (c *phaseClock) stop() time.Duration {
	if c.state == timerStopped {
		return 0
	}
	run := c.elapsed()
	c.state = timerStopped
	return run
}

func (c *phaseClock) pause() {
	if c.state != timerRunning {
		return
	}
	c.state = timerPaused
	c.pausedAt = c.now()
}

func (c *phaseClock) resume() {
	if c.state != timerPaused {
		return
	}
	c.pauseGap += c.now().Sub(c.pausedAt)
	c.state = timerRunning
}

func (c *phaseClock) toggle() {
	switch c.state {
	case timerRunning:
		c.pause()
	case timerPaused:
		c.resume()
	}
}

func (c phaseClock) running() bool {
	return c.state != timerStopped
}

func (c phaseClock) paused() bool {
	return c.state == timerPaused
}

func (c phaseClock) elapsed() time.Duration {
	switch c.state {
	case timerStopped:
		return 0
	case timerPaused:
		return c.pausedAt.Sub(c.startTime) - c.pauseGap
	}
	return c.now().Sub(c.startTime) - c.pauseGap
}

func (c phaseClock) remaining() time.Duration {
	if c.state == timerStopped {
		return c.planned
	}
	r := c.planned - c.elapsed()
	if r < 0 {
		return 0
	}
	return r
}

// done reports whether a running phase has used up its planned time.
func (c phaseClock) done() bool {
	return c.state == timerRunning && c.elapsed() >= c.planned
}
