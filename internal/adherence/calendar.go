package adherence

import (
	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
)

// CalendarDay is one cell of the history grid.
type CalendarDay struct {
	ID         string
	Day        string
	Adherence  int
	Class      constants.DayClass
	Mood       int
	HasJournal bool
}

// TrendPoint is the per-day series used by the trend chart.
type TrendPoint struct {
	Day    string
	Mood   int
	Counts map[models.Category]int
}

// DayPct scores a single day over habits.
func DayPct(d models.HabitDay, habits []models.Habit) int {
	checks := 0
	for _, h := range habits {
		if d.Flag(h) {
			checks++
		}
	}
	return percent(checks, len(habits))
}

// Classify maps a same-day score onto the elite/standard/missed grid.
func Classify(pct int) constants.DayClass {
	switch {
	case pct >= constants.EliteMinPct:
		return constants.DayElite
	case pct >= constants.StandardMinPct:
		return constants.DayStandard
	default:
		return constants.DayMissed
	}
}

// Calendar builds grid cells for the logged days, scored over all five flags.
func Calendar(days []models.HabitDay) []CalendarDay {
	unique := dedupe(days)
	out := make([]CalendarDay, 0, len(unique))
	for _, d := range unique {
		pct := DayPct(d, models.AllHabits)
		out = append(out, CalendarDay{
			ID:         d.ID,
			Day:        d.Day,
			Adherence:  pct,
			Class:      Classify(pct),
			Mood:       d.Mood,
			HasJournal: d.HasJournal(),
		})
	}
	return out
}

// Trend returns raw per-category check counts and mood for each logged day.
func Trend(days []models.HabitDay) []TrendPoint {
	unique := dedupe(days)
	out := make([]TrendPoint, 0, len(unique))
	for _, d := range unique {
		counts := make(map[models.Category]int, len(models.Categories))
		for _, bucket := range models.Categories {
			for _, h := range bucket.Habits {
				if d.Flag(h) {
					counts[bucket.Category]++
				}
			}
		}
		out = append(out, TrendPoint{Day: d.Day, Mood: d.Mood, Counts: counts})
	}
	return out
}
