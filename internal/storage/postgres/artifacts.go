package postgres

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
)

func (s *Store) GetArtifact(userID string, kind constants.ArtifactKind, periodKey string, variant int) (*models.Artifact, error) {
	var (
		a models.Artifact
		k string
	)
	err := s.db.QueryRow(`
		SELECT user_id, kind, period_key, variant, content, source_updated_at, created_at, updated_at
		FROM artifacts WHERE user_id = $1 AND kind = $2 AND period_key = $3 AND variant = $4`,
		userID, string(kind), periodKey, variant,
	).Scan(&a.UserID, &k, &a.PeriodKey, &a.Variant, &a.Content, &a.SourceUpdatedAt, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.Kind = constants.ArtifactKind(k)
	a.SourceUpdatedAt, a.CreatedAt, a.UpdatedAt = a.SourceUpdatedAt.UTC(), a.CreatedAt.UTC(), a.UpdatedAt.UTC()
	return &a, nil
}

func (s *Store) UpsertArtifact(a models.Artifact) error {
	_, err := s.db.Exec(`
		INSERT INTO artifacts (user_id, kind, period_key, variant, content, source_updated_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, kind, period_key, variant) DO UPDATE SET
			content = EXCLUDED.content,
			source_updated_at = EXCLUDED.source_updated_at,
			updated_at = EXCLUDED.updated_at`,
		a.UserID, string(a.Kind), a.PeriodKey, a.Variant, a.Content,
		a.SourceUpdatedAt.UTC(), a.CreatedAt.UTC(), a.UpdatedAt.UTC())
	return err
}
