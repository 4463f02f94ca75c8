package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/progression"
	"github.com/julianstephens/vanguard/internal/storage"
)

func getSkillTracks(q queryer, userID string) ([]models.SkillTrack, error) {
	rows, err := q.Query("SELECT user_id, perk_id, xp, level, updated_at FROM skill_tracks WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []models.SkillTrack
	for rows.Next() {
		var (
			t         models.SkillTrack
			perk      string
			updatedAt string
		)
		if err := rows.Scan(&t.UserID, &perk, &t.XP, &t.Level, &updatedAt); err != nil {
			return nil, err
		}
		t.PerkID = constants.PerkID(perk)
		if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return progression.CompleteTracks(userID, tracks), nil
}

func putSkillTrack(tx *sql.Tx, t models.SkillTrack) error {
	_, err := tx.Exec(`
		INSERT INTO skill_tracks (user_id, perk_id, xp, level, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, perk_id) DO UPDATE SET
			xp = excluded.xp,
			level = excluded.level,
			updated_at = excluded.updated_at`,
		t.UserID, string(t.PerkID), t.XP, t.Level, formatTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving skill track %s: %w", t.PerkID, err)
	}
	return nil
}

// GetSkillTracks returns one track per catalogue perk. Perks without a row
// are reported at XP 0, level 1 without being written.
func (s *Store) GetSkillTracks(userID string) ([]models.SkillTrack, error) {
	return getSkillTracks(s.db, userID)
}

// UpdateSkillTrack applies fn to the current track inside an immediate
// transaction and stores the result.
func (s *Store) UpdateSkillTrack(userID string, perk constants.PerkID, fn storage.TrackFunc) (models.SkillTrack, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.SkillTrack{}, err
	}
	defer tx.Rollback()

	tracks, err := getSkillTracks(tx, userID)
	if err != nil {
		return models.SkillTrack{}, err
	}
	current := models.SkillTrack{UserID: userID, PerkID: perk, Level: 1}
	for _, t := range tracks {
		if t.PerkID == perk {
			current = t
		}
	}

	next, err := fn(current)
	if err != nil {
		return models.SkillTrack{}, err
	}
	if err := putSkillTrack(tx, next); err != nil {
		return models.SkillTrack{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.SkillTrack{}, err
	}
	return next, nil
}

// ResetSkillTracks sets every stored track of the user back to XP 0, level 1.
func (s *Store) ResetSkillTracks(userID string, at time.Time) error {
	_, err := s.db.Exec("UPDATE skill_tracks SET xp = 0, level = 1, updated_at = ? WHERE user_id = ?", formatTime(at), userID)
	return err
}
