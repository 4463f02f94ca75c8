// Package adherence scores logged habit days against a fixed trailing window.
//
// The denominator is always windowSize * habits: a day with no row counts as
// a day with every flag false.
package adherence

import (
	"math"
	"sort"

	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/models"
)

// Score is the adherence of a window of days.
type Score struct {
	OverallPct  int
	PerCategory map[models.Category]int
	Checks      map[models.Habit]int
	LoggedDays  int
}

// ScoreWindow scores days against a window of windowSize calendar days over
// the given habits. days must already be restricted to the window; rows are
// deduplicated by Day (the last row for a day wins).
func ScoreWindow(days []models.HabitDay, windowSize int, habits []models.Habit) (Score, error) {
	if windowSize < 1 {
		return Score{}, apperr.Invalid("window size %d must be at least 1", windowSize)
	}
	if len(habits) == 0 {
		return Score{}, apperr.Invalid("at least one habit is required")
	}

	unique := dedupe(days)
	if len(unique) > windowSize {
		return Score{}, apperr.Invalid("%d logged days do not fit a %d-day window", len(unique), windowSize)
	}

	score := Score{
		PerCategory: make(map[models.Category]int),
		Checks:      make(map[models.Habit]int, len(habits)),
		LoggedDays:  len(unique),
	}
	for _, h := range habits {
		score.Checks[h] = 0
	}

	total := 0
	for _, d := range unique {
		for _, h := range habits {
			if d.Flag(h) {
				score.Checks[h]++
				total++
			}
		}
	}
	score.OverallPct = percent(total, windowSize*len(habits))

	included := make(map[models.Habit]bool, len(habits))
	for _, h := range habits {
		included[h] = true
	}
	for _, bucket := range models.Categories {
		size, checks := 0, 0
		for _, h := range bucket.Habits {
			if !included[h] {
				continue
			}
			size++
			checks += score.Checks[h]
		}
		if size == 0 {
			continue
		}
		score.PerCategory[bucket.Category] = percent(checks, windowSize*size)
	}

	return score, nil
}

// InWindow returns the days whose Day falls in [start, end] (YYYY-MM-DD keys).
func InWindow(days []models.HabitDay, start, end string) []models.HabitDay {
	out := make([]models.HabitDay, 0, len(days))
	for _, d := range days {
		if d.Day >= start && d.Day <= end {
			out = append(out, d)
		}
	}
	return out
}

// AverageMood averages the mood of days that have one, rounded to one
// decimal. Days with mood 0 are unset and excluded; no rated days yields 0.
func AverageMood(days []models.HabitDay) float64 {
	sum, n := 0, 0
	for _, d := range dedupe(days) {
		if d.Mood > 0 {
			sum += d.Mood
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}

func percent(n, d int) int {
	if d < 1 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}

// dedupe keeps one row per Day, sorted by Day ascending.
func dedupe(days []models.HabitDay) []models.HabitDay {
	byDay := make(map[string]models.HabitDay, len(days))
	for _, d := range days {
		byDay[d.Day] = d
	}
	out := make([]models.HabitDay, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}
