package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
)

func (s *Store) AddSeason(season models.Season) error {
	tracks, err := json.Marshal(season.Tracks)
	if err != nil {
		return fmt.Errorf("encoding season tracks: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO seasons (id, user_id, name, start_date, end_date, total_xp, total_level, rank, tracks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		season.ID, season.UserID, season.Name, formatTime(season.StartDate), formatTime(season.EndDate),
		season.TotalXP, season.TotalLevel, string(season.Rank), string(tracks))
	return err
}

func (s *Store) GetSeasons(userID string) ([]models.Season, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, name, start_date, end_date, total_xp, total_level, rank, tracks
		FROM seasons WHERE user_id = ? ORDER BY end_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seasons []models.Season
	for rows.Next() {
		var (
			season             models.Season
			start, end, tracks string
			rank               string
		)
		if err := rows.Scan(&season.ID, &season.UserID, &season.Name, &start, &end,
			&season.TotalXP, &season.TotalLevel, &rank, &tracks); err != nil {
			return nil, err
		}
		season.Rank = constants.Rank(rank)
		if season.StartDate, err = parseTime(start); err != nil {
			return nil, err
		}
		if season.EndDate, err = parseTime(end); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tracks), &season.Tracks); err != nil {
			return nil, fmt.Errorf("decoding season %s tracks: %w", season.ID, err)
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}
