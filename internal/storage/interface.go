package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// CheckInFunc computes the skill tracks to write for a check-in. prev is the
// stored row for the same day (nil if none) and tracks are the user's current
// tracks, complete for every perk. It runs inside the write transaction.
type CheckInFunc func(prev *models.HabitDay, tracks []models.SkillTrack) ([]models.SkillTrack, error)

// TrackFunc returns the new state of a single track. It runs inside the
// write transaction.
type TrackFunc func(current models.SkillTrack) (models.SkillTrack, error)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habit days
	GetHabitDay(userID, day string) (*models.HabitDay, error)
	GetHabitDays(userID, startDay, endDay string) ([]models.HabitDay, error)
	// RecordCheckIn upserts day and writes the tracks fn returns in one
	// transaction. Concurrent check-ins for the same user are serialized.
	RecordCheckIn(day models.HabitDay, fn CheckInFunc) (*models.HabitDay, error)

	// Skill tracks
	GetSkillTracks(userID string) ([]models.SkillTrack, error)
	UpdateSkillTrack(userID string, perk constants.PerkID, fn TrackFunc) (models.SkillTrack, error)
	ResetSkillTracks(userID string, at time.Time) error

	// Allies, listed in insertion order
	AddAlly(models.Ally) error
	GetAlly(userID, id string) (models.Ally, error)
	GetAllies(userID string) ([]models.Ally, error)
	TouchAlly(userID, id string, at time.Time) error
	DeleteAlly(userID, id string) error

	// Generated artifacts
	GetArtifact(userID string, kind constants.ArtifactKind, periodKey string, variant int) (*models.Artifact, error)
	UpsertArtifact(models.Artifact) error

	// Seasons, newest first
	AddSeason(models.Season) error
	GetSeasons(userID string) ([]models.Season, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by stores with a versioned schema.
type Migrator interface {
	SchemaVersion() (current, latest int, err error)
	Migrate(logFn func(string)) (int, error)
}
