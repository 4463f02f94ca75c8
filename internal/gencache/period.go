// Package gencache decides when cached generated artifacts can be reused and
// regenerates them without ever writing a failed result.
package gencache

import (
	"time"

	"github.com/julianstephens/vanguard/internal/constants"
	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/utils"
)

// Period is the validity span of an artifact: [Start, End).
type Period struct {
	Key   string
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Day is now's calendar day in loc.
func Day(now time.Time, loc *time.Location) Period {
	start := utils.StartOfDay(now, loc)
	return Period{Key: start.Format(constants.DateFormat), Start: start, End: start.AddDate(0, 0, 1)}
}

// ISOWeek is the Monday-based week containing now in loc.
func ISOWeek(now time.Time, loc *time.Location) Period {
	start := utils.ISOWeekStart(now, loc)
	return Period{Key: start.Format(constants.DateFormat), Start: start, End: start.AddDate(0, 0, 7)}
}

// TrailingWindow is the size-day window ending today, keyed by its first day.
// The key rolls over every day.
func TrailingWindow(now time.Time, loc *time.Location, size int) Period {
	today := utils.StartOfDay(now, loc)
	start := today.AddDate(0, 0, -(size - 1))
	return Period{Key: start.Format(constants.DateFormat), Start: start, End: today.AddDate(0, 0, 1)}
}

// ShouldRegenerate reports whether cached must be regenerated. A cached
// artifact is reusable only if it belongs to period, its freshness marker
// falls inside period, and it is strictly newer than every source record.
func ShouldRegenerate(cached *models.Artifact, sourceMaxUpdatedAt time.Time, period Period) bool {
	if cached == nil {
		return true
	}
	if cached.PeriodKey != period.Key || !period.Contains(cached.UpdatedAt) {
		return true
	}
	return !cached.UpdatedAt.After(sourceMaxUpdatedAt)
}

// BatchGate enforces a hard ordinal ceiling of batches per period.
type BatchGate struct {
	Ceiling int
}

// Check returns ErrBatchLimit once index reaches the ceiling. The caller
// must stop and not retry.
func (b BatchGate) Check(index int) error {
	if index < 0 {
		return apperr.Invalid("batch index %d must not be negative", index)
	}
	if index >= b.Ceiling {
		return apperr.ErrBatchLimit
	}
	return nil
}
