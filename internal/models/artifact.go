package models

import (
	"time"

	"github.com/julianstephens/vanguard/internal/constants"
)

// Artifact is cached generated content for one (user, kind, period, variant).
type Artifact struct {
	UserID    string                 `json:"user_id"`
	Kind      constants.ArtifactKind `json:"kind"`
	PeriodKey string                 `json:"period_key"`
	Variant   int                    `json:"variant"`
	Content   string                 `json:"content"`
	// SourceUpdatedAt is the newest source-record update seen at generation time.
	SourceUpdatedAt time.Time `json:"source_updated_at"`
	CreatedAt       time.Time `json:"created_at"`
	// UpdatedAt is the freshness marker; it moves on every regeneration.
	UpdatedAt time.Time `json:"updated_at"`
}

// IntelCard is one entry of a generated intel batch.
type IntelCard struct {
	Category     string `json:"category"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	ReferenceURL string `json:"referenceUrl,omitempty"`
}

// Briefing is the three-card daily briefing.
type Briefing struct {
	Stoic     string `json:"stoic"`
	Tactical  string `json:"tactical"`
	Gratitude string `json:"gratitude"`
}
