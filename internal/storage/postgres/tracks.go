package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/progression"
	"github.com/julianstephens/vanguard/internal/storage"
)

func getSkillTracks(q queryer, userID string, forUpdate bool) ([]models.SkillTrack, error) {
	query := "SELECT user_id, perk_id, xp, level, updated_at FROM skill_tracks WHERE user_id = $1 ORDER BY perk_id"
	if forUpdate {
		query += " FOR UPDATE"
	}
	rows, err := q.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []models.SkillTrack
	for rows.Next() {
		var (
			t    models.SkillTrack
			perk string
		)
		if err := rows.Scan(&t.UserID, &perk, &t.XP, &t.Level, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.PerkID = constants.PerkID(perk)
		t.UpdatedAt = t.UpdatedAt.UTC()
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return progression.CompleteTracks(userID, tracks), nil
}

// lockLedger takes the transaction-scoped advisory lock guarding a user's
// tracks. Every XP write path takes it first.
func lockLedger(tx *sql.Tx, userID string) error {
	if _, err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext($1))", userID); err != nil {
		return fmt.Errorf("locking user ledger: %w", err)
	}
	return nil
}

// seedSkillTracks inserts any missing catalogue rows so FOR UPDATE has
// something to lock.
func seedSkillTracks(tx *sql.Tx, userID string, at time.Time, perks ...constants.PerkID) error {
	if len(perks) == 0 {
		for _, p := range models.Perks {
			perks = append(perks, p.ID)
		}
	}
	for _, perk := range perks {
		_, err := tx.Exec(`
			INSERT INTO skill_tracks (user_id, perk_id, xp, level, updated_at)
			VALUES ($1, $2, 0, 1, $3)
			ON CONFLICT (user_id, perk_id) DO NOTHING`,
			userID, string(perk), at.UTC())
		if err != nil {
			return fmt.Errorf("seeding skill track %s: %w", perk, err)
		}
	}
	return nil
}

func putSkillTrack(tx *sql.Tx, t models.SkillTrack) error {
	_, err := tx.Exec(`
		INSERT INTO skill_tracks (user_id, perk_id, xp, level, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, perk_id) DO UPDATE SET
			xp = EXCLUDED.xp,
			level = EXCLUDED.level,
			updated_at = EXCLUDED.updated_at`,
		t.UserID, string(t.PerkID), t.XP, t.Level, t.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving skill track %s: %w", t.PerkID, err)
	}
	return nil
}

func (s *Store) GetSkillTracks(userID string) ([]models.SkillTrack, error) {
	return getSkillTracks(s.db, userID, false)
}

// UpdateSkillTrack takes the same ledger lock as RecordCheckIn, makes sure
// the row exists, then locks it with FOR UPDATE before applying fn.
func (s *Store) UpdateSkillTrack(userID string, perk constants.PerkID, fn storage.TrackFunc) (models.SkillTrack, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.SkillTrack{}, err
	}
	defer tx.Rollback()

	if err := lockLedger(tx, userID); err != nil {
		return models.SkillTrack{}, err
	}
	if err := seedSkillTracks(tx, userID, time.Now(), perk); err != nil {
		return models.SkillTrack{}, err
	}

	current := models.SkillTrack{}
	var p string
	err = tx.QueryRow(`
		SELECT user_id, perk_id, xp, level, updated_at FROM skill_tracks
		WHERE user_id = $1 AND perk_id = $2 FOR UPDATE`, userID, string(perk),
	).Scan(&current.UserID, &p, &current.XP, &current.Level, &current.UpdatedAt)
	if err != nil {
		return models.SkillTrack{}, err
	}
	current.PerkID = constants.PerkID(p)
	current.UpdatedAt = current.UpdatedAt.UTC()

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

func (s *Store) ResetSkillTracks(userID string, at time.Time) error {
	_, err := s.db.Exec("UPDATE skill_tracks SET xp = 0, level = 1, updated_at = $1 WHERE user_id = $2", at.UTC(), userID)
	return err
}
