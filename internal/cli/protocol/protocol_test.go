package protocol

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/vanguard/internal/adherence"
	"github.com/julianstephens/vanguard/internal/cli"
	"github.com/julianstephens/vanguard/internal/constants"
	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/llm"
	"github.com/julianstephens/vanguard/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
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

	clock := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	return &cli.Context{
		Store:  store,
		Client: llm.NewDryRun(),
		Now:    func() time.Time { return clock },
	}
}

func boolPtr(b bool) *bool { return &b }

func trackXP(t *testing.T, ctx *cli.Context, perk constants.PerkID) int {
	t.Helper()
	tracks, err := ctx.Store.GetSkillTracks("u1")
	if err != nil {
		t.Fatalf("failed to get tracks: %v", err)
	}
	for _, tr := range tracks {
		if tr.PerkID == perk {
			return tr.XP
		}
	}
	return 0
}

func TestCheckinCmd_KeepsUnsetFlags(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&CheckinCmd{Hydration: boolPtr(true)}).Run(ctx); err != nil {
		t.Fatalf("first check-in failed: %v", err)
	}
	if err := (&CheckinCmd{Mobility: boolPtr(true)}).Run(ctx); err != nil {
		t.Fatalf("second check-in failed: %v", err)
	}

	day, err := ctx.Store.GetHabitDay("u1", "2026-05-04")
	if err != nil || day == nil {
		t.Fatalf("expected a stored day, got %v (err %v)", day, err)
	}
	if !day.Hydration || !day.Mobility {
		t.Errorf("expected both flags kept, got %+v", day)
	}
	if got := trackXP(t, ctx, constants.PerkBioEngine); got != 2*constants.HabitXP {
		t.Errorf("expected %d bio engine XP, got %d", 2*constants.HabitXP, got)
	}
}

func TestCheckinCmd_ExplicitDateAndUncheck(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&CheckinCmd{Date: "2026-05-01", Breathing: boolPtr(true)}).Run(ctx); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if err := (&CheckinCmd{Date: "2026-05-01", Breathing: boolPtr(false)}).Run(ctx); err != nil {
		t.Fatalf("uncheck failed: %v", err)
	}
	if err := (&CheckinCmd{Date: "2026-05-01", Breathing: boolPtr(true)}).Run(ctx); err != nil {
		t.Fatalf("re-check failed: %v", err)
	}

	// Unchecking and re-checking grants again; XP is never revoked.
	if got := trackXP(t, ctx, constants.PerkStateControl); got != 2*constants.HabitXP {
		t.Errorf("expected %d state control XP, got %d", 2*constants.HabitXP, got)
	}
}

func TestCheckinCmd_RejectsInvalidMood(t *testing.T) {
	ctx := setupTestDB(t)
	mood := 9

	err := (&CheckinCmd{Mood: &mood}).Run(ctx)
	if !apperr.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCheckinCmd_RequiresOperator(t *testing.T) {
	ctx := setupTestDB(t)
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	settings.UserID = ""
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	err = (&CheckinCmd{Hydration: boolPtr(true)}).Run(ctx)
	if !apperr.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestReportCommands(t *testing.T) {
	ctx := setupTestDB(t)
	mood := 4
	summary := "Held the line."
	if err := (&CheckinCmd{Hydration: boolPtr(true), Breathing: boolPtr(true), Mood: &mood, Summary: &summary}).Run(ctx); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	cmds := []struct {
		name string
		run  func(*cli.Context) error
	}{
		{"report", (&ReportCmd{}).Run},
		{"trinity", (&TrinityCmd{}).Run},
		{"calendar", (&CalendarCmd{}).Run},
		{"trend", (&TrendCmd{Days: 7}).Run},
		{"profile", (&ProfileCmd{}).Run},
		{"oracle draw", (&OracleDrawCmd{}).Run},
	}
	for _, c := range cmds {
		t.Run(c.name, func(t *testing.T) {
			if err := c.run(ctx); err != nil {
				t.Errorf("%s failed: %v", c.name, err)
			}
		})
	}
}

func TestCalendarCmd_InvalidMonth(t *testing.T) {
	ctx := setupTestDB(t)

	err := (&CalendarCmd{Year: 2026, Month: 13}).Run(ctx)
	if !apperr.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestTrendCmd_InvalidLength(t *testing.T) {
	ctx := setupTestDB(t)

	err := (&TrendCmd{Days: 0}).Run(ctx)
	if !apperr.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestOracleAckCmd(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&OracleAckCmd{}).Run(ctx); err != nil {
		t.Fatalf("oracle ack failed: %v", err)
	}
	if got := trackXP(t, ctx, constants.PerkStateControl); got != constants.OracleXP {
		t.Errorf("expected %d state control XP, got %d", constants.OracleXP, got)
	}
}

func TestRenderMonth(t *testing.T) {
	days := []adherence.CalendarDay{
		{Day: "2026-05-01", Class: constants.DayElite},
		{Day: "2026-05-02", Class: constants.DayMissed},
	}
	out := renderMonth(2026, time.May, days)

	if !strings.Contains(out, "MAY 2026") {
		t.Errorf("missing month header:\n%s", out)
	}
	if !strings.Contains(out, "elite 1") || !strings.Contains(out, "missed 1") {
		t.Errorf("unexpected legend counts:\n%s", out)
	}

	// May 2026 starts on a Friday: four blank cells, then three days to close the week.
	lines := strings.Split(out, "\n")
	if len(lines) < 3 || !strings.HasPrefix(lines[2], strings.Repeat("   ", 4)) {
		t.Errorf("expected first week offset by four cells:\n%s", out)
	}
}
