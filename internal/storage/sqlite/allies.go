package sqlite

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
	var (
		a                      models.Ally
		lastContact, createdAt string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Role, &a.FrequencyDays, &lastContact, &a.ContactMethod, &createdAt); err != nil {
		return models.Ally{}, err
	}
	var err error
	if a.LastContact, err = parseTime(lastContact); err != nil {
		return models.Ally{}, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Ally{}, err
	}
	return a, nil
}

func (s *Store) AddAlly(a models.Ally) error {
	_, err := s.db.Exec("INSERT INTO allies ("+allyColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		a.ID, a.UserID, a.Name, a.Role, a.FrequencyDays, formatTime(a.LastContact), a.ContactMethod, formatTime(a.CreatedAt))
	return err
}

func (s *Store) GetAlly(userID, id string) (models.Ally, error) {
	row := s.db.QueryRow("SELECT "+allyColumns+" FROM allies WHERE user_id = ? AND id = ?", userID, id)
	a, err := scanAlly(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ally{}, fmt.Errorf("ally %s: %w", id, storage.ErrNotFound)
	}
	return a, err
}

func (s *Store) GetAllies(userID string) ([]models.Ally, error) {
	rows, err := s.db.Query("SELECT "+allyColumns+" FROM allies WHERE user_id = ? ORDER BY rowid", userID)
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

// TouchAlly records a contact with the ally at the given time.
func (s *Store) TouchAlly(userID, id string, at time.Time) error {
	res, err := s.db.Exec("UPDATE allies SET last_contact = ? WHERE user_id = ? AND id = ?", formatTime(at), userID, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (s *Store) DeleteAlly(userID, id string) error {
	res, err := s.db.Exec("DELETE FROM allies WHERE user_id = ? AND id = ?", userID, id)
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
