package sqlite

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

func scanHabitDay(row rowScanner) (models.HabitDay, error) {
	var (
		d                         models.HabitDay
		hyd, mob, brth, rst, dipl int
		createdAt, updatedAt      string
	)
	if err := row.Scan(&d.ID, &d.UserID, &d.Day, &hyd, &mob, &brth, &rst, &dipl, &d.Mood, &d.Summary, &createdAt, &updatedAt); err != nil {
		return models.HabitDay{}, err
	}
	d.Hydration, d.Mobility, d.Breathing, d.Reset, d.Diplomat = hyd == 1, mob == 1, brth == 1, rst == 1, dipl == 1

	var err error
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.HabitDay{}, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.HabitDay{}, err
	}
	return d, nil
}

// GetHabitDay returns the user's row for day, or nil if none exists.
func (s *Store) GetHabitDay(userID, day string) (*models.HabitDay, error) {
	return getHabitDay(s.db, userID, day)
}

type queryer interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

func getHabitDay(q queryer, userID, day string) (*models.HabitDay, error) {
	row := q.QueryRow("SELECT "+habitDayColumns+" FROM habit_days WHERE user_id = ? AND day = ?", userID, day)
	d, err := scanHabitDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetHabitDays returns the user's rows with startDay <= day <= endDay, oldest first.
func (s *Store) GetHabitDays(userID, startDay, endDay string) ([]models.HabitDay, error) {
	rows, err := s.db.Query("SELECT "+habitDayColumns+" FROM habit_days WHERE user_id = ? AND day >= ? AND day <= ? ORDER BY day", userID, startDay, endDay)
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

// RecordCheckIn upserts day and the tracks fn returns in one immediate
// transaction. The stored row keeps its original ID and CreatedAt.
func (s *Store) RecordCheckIn(day models.HabitDay, fn storage.CheckInFunc) (*models.HabitDay, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	prev, err := getHabitDay(tx, day.UserID, day.Day)
	if err != nil {
		return nil, fmt.Errorf("reading previous check-in: %w", err)
	}
	tracks, err := getSkillTracks(tx, day.UserID)
	if err != nil {
		return nil, err
	}

	updated, err := fn(prev, tracks)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO habit_days (`+habitDayColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, day) DO UPDATE SET
			hydration = excluded.hydration,
			mobility = excluded.mobility,
			breathing = excluded.breathing,
			reset = excluded.reset,
			diplomat = excluded.diplomat,
			mood = excluded.mood,
			summary = excluded.summary,
			updated_at = excluded.updated_at`,
		day.ID, day.UserID, day.Day,
		boolToInt(day.Hydration), boolToInt(day.Mobility), boolToInt(day.Breathing), boolToInt(day.Reset), boolToInt(day.Diplomat),
		day.Mood, day.Summary, formatTime(day.CreatedAt), formatTime(day.UpdatedAt))
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
