package sqlite

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
)

// GetArtifact returns the cached artifact for the key, or nil if none exists.
func (s *Store) GetArtifact(userID string, kind constants.ArtifactKind, periodKey string, variant int) (*models.Artifact, error) {
	var (
		a                             models.Artifact
		k                             string
		sourceAt, createdAt, updateAt string
	)
	err := s.db.QueryRow(`
		SELECT user_id, kind, period_key, variant, content, source_updated_at, created_at, updated_at
		FROM artifacts WHERE user_id = ? AND kind = ? AND period_key = ? AND variant = ?`,
		userID, string(kind), periodKey, variant,
	).Scan(&a.UserID, &k, &a.PeriodKey, &a.Variant, &a.Content, &sourceAt, &createdAt, &updateAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.Kind = constants.ArtifactKind(k)
	if a.SourceUpdatedAt, err = parseTime(sourceAt); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updateAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertArtifact writes the artifact; the last writer for a key wins.
func (s *Store) UpsertArtifact(a models.Artifact) error {
	_, err := s.db.Exec(`
		INSERT INTO artifacts (user_id, kind, period_key, variant, content, source_updated_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, kind, period_key, variant) DO UPDATE SET
			content = excluded.content,
			source_updated_at = excluded.source_updated_at,
			updated_at = excluded.updated_at`,
		a.UserID, string(a.Kind), a.PeriodKey, a.Variant, a.Content,
		formatTime(a.SourceUpdatedAt), formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	return err
}
