package decay

import (
	"time"

	"github.com/julianstephens/vanguard/internal/models"
)

// SessionOverride is the in-memory bypass a user may set for the current
// session. It is never persisted and never changes ally data.
type SessionOverride struct {
	Bypassed bool
}

// GateState is the result of evaluating the comms gate.
type GateState struct {
	Locked bool
	// Ally and Health describe the lock target when Locked is true.
	Ally   *models.Ally
	Health Health
	// Bypassed reports that a session override is suppressing the lock.
	Bypassed bool
}

// Blocks reports whether gated surfaces should refuse access.
func (g GateState) Blocks() bool {
	return g.Locked && !g.Bypassed
}

// SelectCritical returns the lock target: the ally with the largest positive
// overdue days, or nil if none is overdue. Allies with an invalid frequency
// outrank every overdue ally. Ties go to the earliest ally in the slice.
func SelectCritical(allies []models.Ally, now time.Time) *models.Ally {
	var (
		best       *models.Ally
		bestHealth Health
	)
	for i := range allies {
		h := healthOf(allies[i], now)
		if !h.Invalid && h.OverdueDays <= 0 {
			continue
		}
		if best == nil || outranks(h, bestHealth) {
			a := allies[i]
			best, bestHealth = &a, h
		}
	}
	return best
}

func outranks(h, current Health) bool {
	if h.Invalid != current.Invalid {
		return h.Invalid
	}
	if h.Invalid {
		return false
	}
	return h.OverdueDays > current.OverdueDays
}

// IsLocked reports whether any ally is overdue. Health values alone never
// lock the gate.
func IsLocked(allies []models.Ally, now time.Time) bool {
	return SelectCritical(allies, now) != nil
}

// Evaluate computes the gate for this access. The override only suppresses
// a lock; it never unlocks the underlying state.
func Evaluate(allies []models.Ally, now time.Time, override SessionOverride) GateState {
	target := SelectCritical(allies, now)
	if target == nil {
		return GateState{}
	}
	return GateState{
		Locked:   true,
		Ally:     target,
		Health:   healthOf(*target, now),
		Bypassed: override.Bypassed,
	}
}
