package models

import (
	"time"

	"github.com/julianstephens/vanguard/internal/constants"
)

// Perk describes a progression track.
type Perk struct {
	ID          constants.PerkID `json:"id"`
	Label       string           `json:"label"`
	Class       string           `json:"class"`
	Description string           `json:"description"`
}

// Perks is the fixed track catalogue.
var Perks = []Perk{
	{ID: constants.PerkBioEngine, Label: "Bio-Engine", Class: "OPERATOR", Description: "Maintains biological systems."},
	{ID: constants.PerkStateControl, Label: "State Control", Class: "STOIC", Description: "Regulates nervous system."},
	{ID: constants.PerkTribalGlue, Label: "Tribal Glue", Class: "DIPLOMAT", Description: "Strengthens social bonds."},
}

// HabitPerks maps each habit to the track its completion feeds.
var HabitPerks = map[Habit]constants.PerkID{
	HabitHydration: constants.PerkBioEngine,
	HabitMobility:  constants.PerkBioEngine,
	HabitBreathing: constants.PerkStateControl,
	HabitReset:     constants.PerkStateControl,
	HabitDiplomat:  constants.PerkTribalGlue,
}

// LookupPerk returns the catalogue entry for id.
func LookupPerk(id constants.PerkID) (Perk, bool) {
	for _, p := range Perks {
		if p.ID == id {
			return p, true
		}
	}
	return Perk{}, false
}

// SkillTrack is a user's cumulative XP on one perk.
type SkillTrack struct {
	UserID    string           `json:"user_id"`
	PerkID    constants.PerkID `json:"perk_id"`
	XP        int              `json:"xp"`
	Level     int              `json:"level"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Season archives a user's totals at the moment of a prestige reset.
type Season struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	Name       string         `json:"name"`
	StartDate  time.Time      `json:"start_date"`
	EndDate    time.Time      `json:"end_date"`
	TotalXP    int            `json:"total_xp"`
	TotalLevel int            `json:"total_level"`
	Rank       constants.Rank `json:"rank"`
	Tracks     []SkillTrack   `json:"tracks"`
}
