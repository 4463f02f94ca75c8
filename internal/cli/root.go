package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/vanguard/internal/actions"
	"github.com/julianstephens/vanguard/internal/backup"
	"github.com/julianstephens/vanguard/internal/decay"
	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/llm"
	"github.com/julianstephens/vanguard/internal/logger"
	"github.com/julianstephens/vanguard/internal/storage"
	"github.com/julianstephens/vanguard/internal/storage/sqlite"
)

type Context struct {
	Store storage.Provider
	// UserFlag overrides the user_id setting for this invocation.
	UserFlag string
	// Override is the session-only comms gate bypass.
	Override decay.SessionOverride
	// APIKey is handed to hosted LLM providers. It is never persisted in settings.
	APIKey string
	// Client replaces the provider built from settings. Tests set it.
	Client llm.Client
	Now    func() time.Time

	svc *actions.Service
}

// Actions builds the action service on first use. The store must already be loaded.
func (c *Context) Actions() (*actions.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}

	client := c.Client
	if client == nil {
		settings, err := c.Store.GetSettings()
		if err != nil {
			return nil, fmt.Errorf("failed to get settings: %w", err)
		}
		client, err = llm.NewClient(llm.ConfigFromSettings(settings, c.APIKey))
		if err != nil {
			return nil, err
		}
	}

	cfg := actions.Config{
		Store:  c.Store,
		Client: client,
		Now:    c.Now,
	}
	if _, ok := c.Store.(*sqlite.Store); ok {
		cfg.Backup = backup.NewManager(c.Store.GetConfigPath()).Create
	}

	svc, err := actions.New(cfg)
	if err != nil {
		return nil, err
	}
	c.svc = svc
	return svc, nil
}

// UserID resolves the acting user: the --user flag, then the user_id setting.
func (c *Context) UserID() (string, error) {
	if c.UserFlag != "" {
		return c.UserFlag, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.UserID == "" {
		return "", fmt.Errorf("%w: run 'vanguard init' or pass --user", apperr.ErrUnauthorized)
	}
	return settings.UserID, nil
}

// Session returns the action service and the acting user.
func (c *Context) Session() (*actions.Service, string, error) {
	userID, err := c.UserID()
	if err != nil {
		return nil, "", err
	}
	svc, err := c.Actions()
	if err != nil {
		return nil, "", err
	}
	return svc, userID, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
