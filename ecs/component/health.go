package component

// Health is the hit-point pool of a boss.
type Health struct {
	Max     int
	Current int
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether any health remains.
func (h *Health) IsAlive() bool {
	return h != nil && h.Current > 0
}

// ApplyDamage removes amount, never going below zero. Returns true if damage
// was applied.
func (h *Health) ApplyDamage(amount int) bool {
	if h == nil || amount <= 0 || h.Current <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	return true
}

var HealthComponent = NewComponent[Health]()

// Energy is the bounded resource spent by special attacks.
type Energy struct {
	Max     float64
	Current float64
}

// NewEnergy returns a full pool.
func NewEnergy(max float64) *Energy {
	if max < 0 {
		max = 0
	}
	return &Energy{Max: max, Current: max}
}

// Deplete subtracts amount, clamped at zero.
func (e *Energy) Deplete(amount float64) {
	if e == nil || amount <= 0 {
		return
	}
	e.Current -= amount
	if e.Current < 0 {
		e.Current = 0
	}
}

// Restore refills the pool.
func (e *Energy) Restore() {
	if e == nil {
		return
	}
	e.Current = e.Max
}

// Exhausted reports whether the pool is empty.
func (e *Energy) Exhausted() bool {
	return e != nil && e.Current <= 0
}

var EnergyComponent = NewComponent[Energy]()
