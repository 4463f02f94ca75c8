package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/storage"
)

const habitDayColumns = `id, user_id, day, hydration, mobility, breathing, reset, diplomat, mood, summary, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type queryer interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

func scanHabitDay(row rowScanner) (models.HabitDay, error) {
	var d models.HabitDay
	err := row.Scan(&d.ID, &d.UserID, &d.Day, &d.Hydration, &d.Mobility, &d.Breathing, &d.Reset, &d.Diplomat,
		&d.Mood, &d.Summary, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return models.HabitDay{}, err
	}
	d.CreatedAt, d.UpdatedAt = d.CreatedAt.UTC(), d.UpdatedAt.UTC()
	return d, nil
}

func getHabitDay(q queryer, userID, day string) (*models.HabitDay, error) {
	row := q.QueryRow("SELECT "+habitDayColumns+" FROM habit_days WHERE user_id = $1 AND day = $2", userID, day)
	d, err := scanHabitDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) GetHabitDay(userID, day string) (*models.HabitDay, error) {
	return getHabitDay(s.db, userID, day)
}

func (s *Store) GetHabitDays(userID, startDay, endDay string) ([]models.HabitDay, error) {
	rows, err := s.db.Query("SELECT "+habitDayColumns+" FROM habit_days WHERE user_id = $1 AND day >= $2 AND day <= $3 ORDER BY day",
		userID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.HabitDay
	for rows.Next() {
		d, err := scanHabitDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// RecordCheckIn holds the per-user ledger lock and row-locks every track
// before fn runs, so it excludes other check-ins and UpdateSkillTrack alike.
func (s *Store) RecordCheckIn(day models.HabitDay, fn storage.CheckInFunc) (*models.HabitDay, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := lockLedger(tx, day.UserID); err != nil {
		return nil, err
	}

	prev, err := getHabitDay(tx, day.UserID, day.Day)
	if err != nil {
		return nil, fmt.Errorf("reading previous check-in: %w", err)
	}
	if err := seedSkillTracks(tx, day.UserID, day.UpdatedAt); err != nil {
		return nil, err
	}
	tracks, err := getSkillTracks(tx, day.UserID, true)
	if err != nil {
		return nil, err
	}

	updated, err := fn(prev, tracks)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO habit_days (`+habitDayColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, day) DO UPDATE SET
			hydration = EXCLUDED.hydration,
			mobility = EXCLUDED.mobility,
			breathing = EXCLUDED.breathing,
			reset = EXCLUDED.reset,
			diplomat = EXCLUDED.diplomat,
			mood = EXCLUDED.mood,
			summary = EXCLUDED.summary,
			updated_at = EXCLUDED.updated_at`,
		day.ID, day.UserID, day.Day, day.Hydration, day.Mobility, day.Breathing, day.Reset, day.Diplomat,
		day.Mood, day.Summary, day.CreatedAt.UTC(), day.UpdatedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("saving check-in: %w", err)
	}

	for _, t := range updated {
		if err := putSkillTrack(tx, t); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return prev, nil
}
