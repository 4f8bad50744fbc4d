package core

import "time"

// Clock reports the current time. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Interval is a one-shot deadline that a caller re-arms after each tick. It
// replaces a self-rescheduling timer callback in a polled loop: the host asks
// Due on every frame and the owner re-arms from the time the tick ran.
type Interval struct {
	period time.Duration
	next   time.Time
	armed  bool
}

// NewInterval returns a disarmed Interval with the given period. Non-positive
// periods fall back to 100ms.
func NewInterval(period time.Duration) *Interval {
	if period <= 0 {
		period = 100 * time.Millisecond
	}
	return &Interval{period: period}
}

// Period returns the delay between ticks.
func (iv *Interval) Period() time.Duration { return iv.period }

// Armed reports whether a tick is pending.
func (iv *Interval) Armed() bool { return iv.armed }

// Next returns the pending deadline. It is meaningless while disarmed.
func (iv *Interval) Next() time.Time { return iv.next }

// Arm schedules the next tick one period after now.
func (iv *Interval) Arm(now time.Time) {
	iv.next = now.Add(iv.period)
	iv.armed = true
}

// Disarm cancels any pending tick.
func (iv *Interval) Disarm() { iv.armed = false }

// Due reports whether an armed deadline has passed. It does not re-arm; a
// stall longer than several periods still yields a single tick.
func (iv *Interval) Due(now time.Time) bool {
	return iv.armed && !now.Before(iv.next)
}

// FixedStep helps run updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	clock       Clock
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int, clock Clock) *FixedStep {
	if clock == nil {
		clock = SystemClock{}
	}
	fs := &FixedStep{clock: clock}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// ShouldStep reports whether the caller should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.clock.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
