package seasons

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/vanguard/internal/backup"
	"github.com/julianstephens/vanguard/internal/cli"
	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/llm"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	settings.UserID = "u1"
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	// Each read of the clock moves it forward an hour so seasons never share an end time.
	now := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		now = now.Add(time.Hour)
		return now
	}
	return &cli.Context{Store: store, Client: llm.NewDryRun(), Now: tick}, dbPath
}

func TestSeasonEndCmd(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	if _, err := ctx.Store.UpdateSkillTrack("u1", constants.PerkBioEngine, func(models.SkillTrack) (models.SkillTrack, error) {
		return models.SkillTrack{UserID: "u1", PerkID: constants.PerkBioEngine, XP: 250, Level: 3, UpdatedAt: now}, nil
	}); err != nil {
		t.Fatalf("failed to seed track: %v", err)
	}

	if err := (&SeasonEndCmd{Name: "Spring Campaign", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("season end failed: %v", err)
	}

	seasons, err := ctx.Store.GetSeasons("u1")
	if err != nil {
		t.Fatalf("failed to get seasons: %v", err)
	}
	if len(seasons) != 1 || seasons[0].Name != "Spring Campaign" || seasons[0].TotalXP != 250 {
		t.Fatalf("unexpected seasons: %+v", seasons)
	}

	tracks, err := ctx.Store.GetSkillTracks("u1")
	if err != nil {
		t.Fatalf("failed to get tracks: %v", err)
	}
	for _, tr := range tracks {
		if tr.XP != 0 || tr.Level != 1 {
			t.Errorf("track %s not reset: %+v", tr.PerkID, tr)
		}
	}

	backups, err := backup.NewManager(dbPath).List()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected a pre-season backup, got %d", len(backups))
	}

	if err := (&SeasonListCmd{}).Run(ctx); err != nil {
		t.Errorf("season list failed: %v", err)
	}
}

func TestSeasonEndCmd_DefaultName(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	if err := (&SeasonEndCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("season end failed: %v", err)
	}
	if err := (&SeasonEndCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("second season end failed: %v", err)
	}

	seasons, err := ctx.Store.GetSeasons("u1")
	if err != nil {
		t.Fatalf("failed to get seasons: %v", err)
	}
	if len(seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(seasons))
	}
	// Newest first.
	if seasons[0].Name != "Season 2" || seasons[1].Name != "Season 1" {
		t.Errorf("unexpected default names: %q, %q", seasons[0].Name, seasons[1].Name)
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(dbPath), constants.BackupDirName)); err != nil {
		t.Errorf("expected backup directory: %v", err)
	}
}

func TestSeasonListCmd_Empty(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if err := (&SeasonListCmd{}).Run(ctx); err != nil {
		t.Errorf("season list failed: %v", err)
	}
}
