// Package actions holds the request handlers each user-facing command calls.
// Every handler checks the user identifier first, reads the rows it needs,
// runs the pure engines and writes back the results.
package actions

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/gencache"
	"github.com/julianstephens/vanguard/internal/llm"
	"github.com/julianstephens/vanguard/internal/logger"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/storage"
	"github.com/julianstephens/vanguard/internal/utils"
)

// Config wires a Service to its collaborators.
type Config struct {
	Store  storage.Provider
	Client llm.Client
	// Now defaults to time.Now.
	Now func() time.Time
	// Backup, if set, snapshots the database before a season reset.
	Backup func() (string, error)
	// Pick returns a random index in [0, n). Defaults to math/rand.
	Pick func(n int) int
}

type Service struct {
	store    storage.Provider
	gate     *gencache.Gate
	now      func() time.Time
	backup   func() (string, error)
	pick     func(n int) int
	settings models.Settings
	loc      *time.Location
}

// New reads the persisted settings from the loaded store and builds a Service.
func New(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("actions: store is required")
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("actions: text generation client is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Pick == nil {
		cfg.Pick = rand.Intn
	}

	settings, err := cfg.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	loc, err := utils.LocationFromSettings(settings)
	if err != nil {
		return nil, err
	}

	return &Service{
		store:    cfg.Store,
		gate:     gencache.NewGate(cfg.Store, cfg.Client, cfg.Now),
		now:      cfg.Now,
		backup:   cfg.Backup,
		pick:     cfg.Pick,
		settings: settings,
		loc:      loc,
	}, nil
}

// Settings returns the settings the Service was built with.
func (s *Service) Settings() models.Settings {
	return s.settings
}

// Location returns the timezone used for day boundaries.
func (s *Service) Location() *time.Location {
	return s.loc
}

func requireUser(userID string) error {
	if userID == "" {
		return apperr.ErrUnauthorized
	}
	return nil
}

func (s *Service) today() string {
	return utils.DayKey(s.now(), s.loc)
}

// resolve runs the gate and absorbs cache-write failures: the content is
// still returned and the failure only logged.
func (s *Service) resolve(ctx context.Context, req gencache.Request) (gencache.Result, error) {
	res, err := s.gate.Resolve(ctx, req)
	log := logger.ForUser(req.UserID).With("kind", req.Kind)
	switch {
	case err == nil:
		return res, nil
	case apperr.Is(err, gencache.ErrCacheWrite):
		log.Warn("generated content was not cached", "error", err)
		return res, nil
	case apperr.IsTransient(err):
		log.Warn("generation failed", "stale", res.Stale, "error", err)
		return res, err
	default:
		log.Error("resolving artifact", "error", err)
		return res, err
	}
}
