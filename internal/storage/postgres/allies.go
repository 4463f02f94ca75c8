package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/storage"
)

const allyColumns = `id, user_id, name, role, frequency_days, last_contact, contact_method, created_at`

func scanAlly(row rowScanner) (models.Ally, error) {
	var a models.Ally
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Role, &a.FrequencyDays, &a.LastContact, &a.ContactMethod, &a.CreatedAt); err != nil {
		return models.Ally{}, err
	}
	a.LastContact, a.CreatedAt = a.LastContact.UTC(), a.CreatedAt.UTC()
	return a, nil
}

func (s *Store) AddAlly(a models.Ally) error {
	_, err := s.db.Exec("INSERT INTO allies ("+allyColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		a.ID, a.UserID, a.Name, a.Role, a.FrequencyDays, a.LastContact.UTC(), a.ContactMethod, a.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return fmt.Errorf("ally %s already exists", a.ID)
	}
	return err
}

func (s *Store) GetAlly(userID, id string) (models.Ally, error) {
	row := s.db.QueryRow("SELECT "+allyColumns+" FROM allies WHERE user_id = $1 AND id = $2", userID, id)
	a, err := scanAlly(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ally{}, fmt.Errorf("ally %s: %w", id, storage.ErrNotFound)
	}
	return a, err
}

func (s *Store) GetAllies(userID string) ([]models.Ally, error) {
	rows, err := s.db.Query("SELECT "+allyColumns+" FROM allies WHERE user_id = $1 ORDER BY seq", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allies []models.Ally
	for rows.Next() {
		a, err := scanAlly(rows)
		if err != nil {
			return nil, err
		}
		allies = append(allies, a)
	}
	return allies, rows.Err()
}

func (s *Store) TouchAlly(userID, id string, at time.Time) error {
	res, err := s.db.Exec("UPDATE allies SET last_contact = $1 WHERE user_id = $2 AND id = $3", at.UTC(), userID, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (s *Store) DeleteAlly(userID, id string) error {
	res, err := s.db.Exec("DELETE FROM allies WHERE user_id = $1 AND id = $2", userID, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("ally %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
