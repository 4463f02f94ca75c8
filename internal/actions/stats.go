package actions

import (
	"time"

	"github.com/julianstephens/vanguard/internal/adherence"
	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/progression"
	"github.com/julianstephens/vanguard/internal/utils"
)

// Profile returns every track with the derived total level and rank.
func (s *Service) Profile(userID string) (progression.Standing, error) {
	if err := requireUser(userID); err != nil {
		return progression.Standing{}, err
	}
	tracks, err := s.store.GetSkillTracks(userID)
	if err != nil {
		return progression.Standing{}, err
	}
	return progression.StandingOf(userID, tracks), nil
}

// window returns the trailing window ending today and its rows.
func (s *Service) window(userID string) (start, end string, days []models.HabitDay, err error) {
	start, end = utils.TrailingWindow(s.now(), s.loc, s.settings.WindowDays)
	days, err = s.store.GetHabitDays(userID, start, end)
	return start, end, days, err
}

// WeeklyReport scores the trailing window over the core habits.
func (s *Service) WeeklyReport(userID string) (adherence.Report, error) {
	if err := requireUser(userID); err != nil {
		return adherence.Report{}, err
	}
	start, end, days, err := s.window(userID)
	if err != nil {
		return adherence.Report{}, err
	}
	return adherence.WeeklyReport(days, start, end, s.settings.WindowDays)
}

// Trinity scores the trailing window per body/mind/tribe category.
func (s *Service) Trinity(userID string) (map[models.Category]int, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	start, end, days, err := s.window(userID)
	if err != nil {
		return nil, err
	}
	return adherence.Trinity(days, start, end, s.settings.WindowDays)
}

// Calendar classifies every logged day of the month.
func (s *Service) Calendar(userID string, year int, month time.Month) ([]adherence.CalendarDay, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if month < time.January || month > time.December {
		return nil, apperr.Invalid("month %d out of range", month)
	}
	start, end := utils.MonthBounds(year, month)
	days, err := s.store.GetHabitDays(userID, start, end)
	if err != nil {
		return nil, err
	}
	return adherence.Calendar(days), nil
}

// Trend returns the per-day series for the last n days, today included.
func (s *Service) Trend(userID string, n int) ([]adherence.TrendPoint, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, apperr.Invalid("trend length %d must be at least 1", n)
	}
	start, end := utils.TrailingWindow(s.now(), s.loc, n)
	days, err := s.store.GetHabitDays(userID, start, end)
	if err != nil {
		return nil, err
	}
	return adherence.Trend(days), nil
}
