package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/julianstephens/vanguard/internal/cli"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/storage"
	"github.com/julianstephens/vanguard/internal/storage/postgres"
	"github.com/julianstephens/vanguard/internal/storage/sqlite"
)

// Bounds wide enough to select every stored day.
const (
	firstDay = "0001-01-01"
	lastDay  = "9999-12-31"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return fmt.Errorf("--force is only supported for SQLite storage")
		}
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized vanguard storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return assignUser(ctx)
}

// assignUser makes sure the local identity is set. --user wins over an
// existing value; a fresh database gets a generated one.
func assignUser(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	switch {
	case ctx.UserFlag != "" && ctx.UserFlag != settings.UserID:
		settings.UserID = ctx.UserFlag
	case settings.UserID == "":
		settings.UserID = uuid.New().String()
	default:
		fmt.Printf("Operator: %s\n", settings.UserID)
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Printf("✓ Operator assigned: %s\n", settings.UserID)
	return nil
}

func openSource(source string) (storage.Provider, error) {
	if postgres.IsConnString(source) {
		if valid, err := postgres.ValidateConnString(source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(source), nil
	}
	return sqlite.NewStore(source), nil
}

// migrateData copies the source user's ledger into the destination.
// Generated artifacts are a cache and are not copied.
func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore, err := openSource(sourcePath)
	if err != nil {
		return err
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}
	userID := settings.UserID
	if userID == "" {
		fmt.Println("  Source has no operator; nothing else to migrate")
		return nil
	}

	fmt.Println("  Migrating check-ins...")
	days, err := sourceStore.GetHabitDays(userID, firstDay, lastDay)
	if err != nil {
		return fmt.Errorf("failed to get check-ins from source: %w", err)
	}
	keep := func(*models.HabitDay, []models.SkillTrack) ([]models.SkillTrack, error) {
		return nil, nil
	}
	for _, d := range days {
		if _, err := ctx.Store.RecordCheckIn(d, keep); err != nil {
			return fmt.Errorf("failed to add check-in %s: %w", d.Day, err)
		}
	}
	fmt.Printf("    Migrated %d check-ins\n", len(days))

	fmt.Println("  Migrating skill tracks...")
	tracks, err := sourceStore.GetSkillTracks(userID)
	if err != nil {
		return fmt.Errorf("failed to get skill tracks from source: %w", err)
	}
	for _, t := range tracks {
		src := t
		if _, err := ctx.Store.UpdateSkillTrack(userID, t.PerkID, func(models.SkillTrack) (models.SkillTrack, error) {
			return src, nil
		}); err != nil {
			return fmt.Errorf("failed to save track %s: %w", t.PerkID, err)
		}
	}
	fmt.Printf("    Migrated %d skill tracks\n", len(tracks))

	fmt.Println("  Migrating allies...")
	allies, err := sourceStore.GetAllies(userID)
	if err != nil {
		return fmt.Errorf("failed to get allies from source: %w", err)
	}
	for _, a := range allies {
		if err := ctx.Store.AddAlly(a); err != nil {
			return fmt.Errorf("failed to add ally %s: %w", a.ID, err)
		}
	}
	fmt.Printf("    Migrated %d allies\n", len(allies))

	fmt.Println("  Migrating seasons...")
	seasons, err := sourceStore.GetSeasons(userID)
	if err != nil {
		return fmt.Errorf("failed to get seasons from source: %w", err)
	}
	// Oldest first so the destination keeps the same order.
	for i := len(seasons) - 1; i >= 0; i-- {
		if err := ctx.Store.AddSeason(seasons[i]); err != nil {
			return fmt.Errorf("failed to add season %s: %w", seasons[i].ID, err)
		}
	}
	fmt.Printf("    Migrated %d seasons\n", len(seasons))

	return nil
}
