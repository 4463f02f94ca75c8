// Package progression converts XP events into levels and ranks.
//
// Level is always a function of cumulative XP: level = xp/100 + 1. Nothing in
// this package stores a level independently; every write path recomputes it.
package progression

import (
	"fmt"

	"github.com/julianstephens/vanguard/internal/constants"
	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/models"
)

// LevelFor returns the level reached with xp cumulative points.
func LevelFor(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/constants.XPPerLevel + 1
}

// Progress returns how far xp is into its current level and the level width.
func Progress(xp int) (into, span int) {
	if xp < 0 {
		xp = 0
	}
	return xp % constants.XPPerLevel, constants.XPPerLevel
}

// Result is the outcome of applying XP to a track.
type Result struct {
	Track     models.SkillTrack
	LeveledUp bool
	NewLevel  int
}

// ApplyXP adds amount to the track and recomputes its level. The previous
// level is derived from the track's XP, not from its stored Level field.
func ApplyXP(track models.SkillTrack, amount int) (Result, error) {
	if amount < 0 {
		return Result{}, apperr.Invalid("xp amount %d is negative", amount)
	}
	if track.XP < 0 {
		return Result{}, apperr.Invalid("track %s has negative xp %d", track.PerkID, track.XP)
	}

	oldLevel := LevelFor(track.XP)
	track.XP += amount
	track.Level = LevelFor(track.XP)

	return Result{
		Track:     track,
		LeveledUp: track.Level > oldLevel,
		NewLevel:  track.Level,
	}, nil
}

// Grant is one XP award produced by an event.
type Grant struct {
	PerkID constants.PerkID
	Amount int
	Habit  models.Habit
}

// CheckInGrants diffs a check-in against the previously stored row for the
// same day. Only flags going from false to true earn XP; re-logging a checked
// habit and un-checking one both earn nothing.
func CheckInGrants(prev *models.HabitDay, next models.HabitDay) []Grant {
	var grants []Grant
	for _, h := range models.AllHabits {
		if !next.Flag(h) {
			continue
		}
		if prev != nil && prev.Flag(h) {
			continue
		}
		grants = append(grants, Grant{
			PerkID: models.HabitPerks[h],
			Amount: constants.HabitXP,
			Habit:  h,
		})
	}
	return grants
}

// OracleGrant is the award for acknowledging an oracle card.
func OracleGrant() Grant {
	return Grant{PerkID: constants.PerkStateControl, Amount: constants.OracleXP}
}

// LevelUp describes a track crossing into a new level.
type LevelUp struct {
	PerkID constants.PerkID
	Label  string
	Level  int
}

func (l LevelUp) String() string {
	return fmt.Sprintf("%s UPGRADED TO LEVEL %d", l.Label, l.Level)
}

// LevelUpFor returns the level-up notice for r, if any.
func LevelUpFor(r Result) (LevelUp, bool) {
	if !r.LeveledUp {
		return LevelUp{}, false
	}
	label := string(r.Track.PerkID)
	if perk, ok := models.LookupPerk(r.Track.PerkID); ok {
		label = perk.Label
	}
	return LevelUp{PerkID: r.Track.PerkID, Label: label, Level: r.NewLevel}, true
}
