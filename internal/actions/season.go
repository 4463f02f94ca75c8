package actions

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/logger"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/progression"
	"github.com/julianstephens/vanguard/internal/utils"
)

// SeasonResult reports an archived season.
type SeasonResult struct {
	Season models.Season
	// BackupPath is empty when no backup was taken.
	BackupPath string
}

// EndSeason archives the current tracks as a season and resets them to XP 0,
// level 1. A failed archive aborts before anything is reset. A failed reset
// after the archive returns ErrStaleLedger along with the archived season.
func (s *Service) EndSeason(userID, name string) (SeasonResult, error) {
	if err := requireUser(userID); err != nil {
		return SeasonResult{}, err
	}

	log := logger.ForUser(userID)
	var out SeasonResult
	if s.backup != nil {
		path, err := s.backup()
		if err != nil {
			log.Warn("pre-season backup failed", "error", err)
		}
		out.BackupPath = path
	}

	tracks, err := s.store.GetSkillTracks(userID)
	if err != nil {
		return SeasonResult{}, err
	}
	seasons, err := s.store.GetSeasons(userID)
	if err != nil {
		return SeasonResult{}, err
	}

	now := s.now()
	start, err := s.seasonStart(userID, seasons, now)
	if err != nil {
		return SeasonResult{}, err
	}
	if name == "" {
		name = fmt.Sprintf("Season %d", len(seasons)+1)
	}

	season := progression.Archive(userID, name, tracks, start, now)
	season.ID = uuid.NewString()
	if err := s.store.AddSeason(season); err != nil {
		return SeasonResult{}, fmt.Errorf("archiving season: %w", err)
	}
	out.Season = season

	if err := s.store.ResetSkillTracks(userID, now); err != nil {
		log.Error("season archived but reset failed", "season", season.ID, "error", err)
		return out, fmt.Errorf("%w: %v", apperr.ErrStaleLedger, err)
	}
	return out, nil
}

// seasonStart is the end of the previous season, else the first logged day,
// else now.
func (s *Service) seasonStart(userID string, seasons []models.Season, now time.Time) (time.Time, error) {
	if len(seasons) > 0 {
		return seasons[0].EndDate, nil
	}
	days, err := s.store.GetHabitDays(userID, "0000-01-01", "9999-12-31")
	if err != nil {
		return time.Time{}, err
	}
	if len(days) == 0 {
		return now, nil
	}
	first, err := utils.ParseDateInLocation(days[0].Day, s.loc)
	if err != nil {
		return now, nil
	}
	return first, nil
}

// Seasons lists archived seasons, newest first.
func (s *Service) Seasons(userID string) ([]models.Season, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.store.GetSeasons(userID)
}
