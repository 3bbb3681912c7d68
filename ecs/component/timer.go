package component

// Timer is a countdown in milliseconds that is either inactive or holds the
// remaining time. The zero value is inactive.
type Timer struct {
	remaining float64
	duration  float64
	active    bool
}

// NewTimer returns a timer already counting down from ms.
func NewTimer(ms float64) Timer {
	var t Timer
	t.Start(ms)
	return t
}

// Start (re)arms the timer. A non-positive duration leaves it inactive.
func (t *Timer) Start(ms float64) {
	if ms <= 0 {
		t.Stop()
		return
	}
	t.remaining = ms
	t.duration = ms
	t.active = true
}

// Stop deactivates the timer.
func (t *Timer) Stop() {
	t.remaining = 0
	t.active = false
}

// Active reports whether the timer is still counting down.
func (t Timer) Active() bool {
	return t.active
}

// Remaining returns the milliseconds left, or zero when inactive.
func (t Timer) Remaining() float64 {
	if !t.active {
		return 0
	}
	return t.remaining
}

// Duration returns the length the timer was last started with.
func (t Timer) Duration() float64 {
	return t.duration
}

// Progress returns elapsed/duration in [0, 1]. An inactive timer that ran
// to completion reports 1; one never started reports 0.
func (t Timer) Progress() float64 {
	if t.duration <= 0 {
		return 0
	}
	if !t.active {
		return 1
	}
	p := (t.duration - t.remaining) / t.duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Tick subtracts ms from an active timer and deactivates it at zero.
func (t *Timer) Tick(ms float64) {
	if !t.active || ms <= 0 {
		return
	}
	t.remaining -= ms
	if t.remaining <= 0 {
		t.Stop()
	}
}
