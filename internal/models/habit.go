package models

import "time"

// Habit names one of the boolean flags recorded on a HabitDay.
type Habit string

// Category is a named bucket of habits scored together.
type Category string

const (
	HabitHydration Habit = "hydration"
	HabitMobility  Habit = "mobility"
	HabitBreathing Habit = "breathing"
	HabitReset     Habit = "reset"
	HabitDiplomat  Habit = "diplomat"

	CategoryBody  Category = "body"
	CategoryMind  Category = "mind"
	CategoryTribe Category = "tribe"
)

// CoreHabits are the four daily protocol habits. Diplomat is auxiliary.
var CoreHabits = []Habit{HabitHydration, HabitMobility, HabitBreathing, HabitReset}

// AllHabits is every flag on a HabitDay, in display order.
var AllHabits = []Habit{HabitHydration, HabitMobility, HabitBreathing, HabitReset, HabitDiplomat}

// CategoryBucket groups habits under a category.
type CategoryBucket struct {
	Category Category
	Habits   []Habit
}

// Categories partitions AllHabits into the body/mind/tribe buckets.
var Categories = []CategoryBucket{
	{Category: CategoryBody, Habits: []Habit{HabitHydration, HabitMobility}},
	{Category: CategoryMind, Habits: []Habit{HabitBreathing, HabitReset}},
	{Category: CategoryTribe, Habits: []Habit{HabitDiplomat}},
}

// HabitDay is one user's check-in for a single calendar day.
type HabitDay struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format, in the user's timezone
	Hydration bool      `json:"hydration"`
	Mobility  bool      `json:"mobility"`
	Breathing bool      `json:"breathing"`
	Reset     bool      `json:"reset"`
	Diplomat  bool      `json:"diplomat"`
	Mood      int       `json:"mood"` // 0 means unset
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Flag reports whether the given habit was checked on this day.
func (d HabitDay) Flag(h Habit) bool {
	switch h {
	case HabitHydration:
		return d.Hydration
	case HabitMobility:
		return d.Mobility
	case HabitBreathing:
		return d.Breathing
	case HabitReset:
		return d.Reset
	case HabitDiplomat:
		return d.Diplomat
	default:
		return false
	}
}

// SetFlag sets the given habit's flag.
func (d *HabitDay) SetFlag(h Habit, v bool) {
	switch h {
	case HabitHydration:
		d.Hydration = v
	case HabitMobility:
		d.Mobility = v
	case HabitBreathing:
		d.Breathing = v
	case HabitReset:
		d.Reset = v
	case HabitDiplomat:
		d.Diplomat = v
	}
}

// HasJournal reports whether the day carries a non-blank summary.
func (d HabitDay) HasJournal() bool {
	for _, r := range d.Summary {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
