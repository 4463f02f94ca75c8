package adherence

import (
	"sort"

	"github.com/julianstephens/vanguard/internal/models"
)

// JournalEntry is a non-empty daily summary.
type JournalEntry struct {
	Day     string
	Summary string
}

// Report is the weekly debrief over the core habits.
type Report struct {
	Start       string
	End         string
	Adherence   int
	AverageMood float64
	Breakdown   map[models.Habit]int
	LoggedDays  int
	Journal     []JournalEntry // newest first
}

// WeeklyReport summarizes the days in [start, end] over the core habits.
func WeeklyReport(days []models.HabitDay, start, end string, windowSize int) (Report, error) {
	inWindow := InWindow(days, start, end)
	score, err := ScoreWindow(inWindow, windowSize, models.CoreHabits)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Start:       start,
		End:         end,
		Adherence:   score.OverallPct,
		AverageMood: AverageMood(inWindow),
		Breakdown:   score.Checks,
		LoggedDays:  score.LoggedDays,
	}
	for _, d := range dedupe(inWindow) {
		if d.HasJournal() {
			r.Journal = append(r.Journal, JournalEntry{Day: d.Day, Summary: d.Summary})
		}
	}
	sort.Slice(r.Journal, func(i, j int) bool { return r.Journal[i].Day > r.Journal[j].Day })
	return r, nil
}

// Trinity scores the window per body/mind/tribe category over all flags.
func Trinity(days []models.HabitDay, start, end string, windowSize int) (map[models.Category]int, error) {
	score, err := ScoreWindow(InWindow(days, start, end), windowSize, models.AllHabits)
	if err != nil {
		return nil, err
	}
	return score.PerCategory, nil
}
