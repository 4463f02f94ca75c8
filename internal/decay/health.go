// Package decay computes relationship health from contact cadence and the
// comms gate that locks gated surfaces while an ally is overdue.
//
// Everything here is pure: callers pass the wall-clock time explicitly and
// the gate is re-evaluated on every access.
package decay

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/vanguard/internal/constants"
	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/models"
)

const day = 24 * time.Hour

// Health is the decay state of one ally at a point in time.
type Health struct {
	DaysSince   int
	OverdueDays int
	HealthPct   int
	Tier        constants.HealthTier
	// Invalid marks an ally whose FrequencyDays is not positive. Such an
	// ally is permanently CRITICAL and always a lock candidate.
	Invalid bool
}

// DaysSince returns the whole days elapsed since last, rounded up. A
// contact in the future counts as zero days.
func DaysSince(last, now time.Time) int {
	elapsed := now.Sub(last)
	if elapsed <= 0 {
		return 0
	}
	return int((elapsed + day - 1) / day)
}

// TierFor maps an unrounded health value onto its band.
func TierFor(health float64) constants.HealthTier {
	switch {
	case health < constants.DecayingMinHealth:
		return constants.TierCritical
	case health < constants.StableMinHealth:
		return constants.TierDecaying
	default:
		return constants.TierStable
	}
}

// HealthOf computes the ally's health at now. A non-positive frequency
// yields a CRITICAL Health alongside an error wrapping ErrInvalidFrequency.
func HealthOf(ally models.Ally, now time.Time) (Health, error) {
	since := DaysSince(ally.LastContact, now)
	if ally.FrequencyDays <= 0 {
		return Health{
			DaysSince:   since,
			OverdueDays: since - ally.FrequencyDays,
			HealthPct:   0,
			Tier:        constants.TierCritical,
			Invalid:     true,
		}, fmt.Errorf("ally %q has frequency %d: %w", ally.Name, ally.FrequencyDays, apperr.ErrInvalidFrequency)
	}

	// The tier comes from the clamped raw value; only HealthPct is rounded.
	ratio := float64(since) / float64(ally.FrequencyDays)
	raw := math.Max(0, 100-ratio*100)
	return Health{
		DaysSince:   since,
		OverdueDays: since - ally.FrequencyDays,
		HealthPct:   int(math.Round(raw)),
		Tier:        TierFor(raw),
	}, nil
}

// healthOf drops the frequency error; Health.Invalid carries it.
func healthOf(ally models.Ally, now time.Time) Health {
	h, _ := HealthOf(ally, now)
	return h
}

// Status pairs an ally with its computed health.
type Status struct {
	Ally   models.Ally
	Health Health
}

// Network computes health for every ally, most critical first. Equal health
// keeps the input order.
func Network(allies []models.Ally, now time.Time) []Status {
	out := make([]Status, len(allies))
	for i, a := range allies {
		out[i] = Status{Ally: a, Health: healthOf(a, now)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Health.Invalid != out[j].Health.Invalid {
			return out[i].Health.Invalid
		}
		return out[i].Health.HealthPct < out[j].Health.HealthPct
	})
	return out
}

// Restore returns the ally with its last contact reset to now.
func Restore(ally models.Ally, now time.Time) models.Ally {
	ally.LastContact = now
	return ally
}
