package network

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/vanguard/internal/cli"
	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/llm"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/storage/sqlite"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setupTestDB(t *testing.T) (*cli.Context, *clock) {
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

	c := &clock{t: time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)}
	return &cli.Context{Store: store, Client: llm.NewDryRun(), Now: c.now}, c
}

func allies(t *testing.T, ctx *cli.Context) []models.Ally {
	t.Helper()
	got, err := ctx.Store.GetAllies("u1")
	if err != nil {
		t.Fatalf("failed to get allies: %v", err)
	}
	return got
}

func TestAllyLifecycle(t *testing.T) {
	ctx, clk := setupTestDB(t)

	add := &AllyAddCmd{Name: "Marcus", Role: "mentor", Frequency: 7, Contact: "mailto:marcus@example.com"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("ally add failed: %v", err)
	}
	if err := (&AllyListCmd{}).Run(ctx); err != nil {
		t.Fatalf("ally list failed: %v", err)
	}

	clk.t = clk.t.AddDate(0, 0, 10)
	if err := (&AllyContactCmd{Ally: "marcus"}).Run(ctx); err != nil {
		t.Fatalf("ally contact failed: %v", err)
	}
	got := allies(t, ctx)
	if len(got) != 1 || !got[0].LastContact.Equal(clk.t) {
		t.Fatalf("expected last contact %v, got %+v", clk.t, got)
	}

	if err := (&AllyDeleteCmd{Ally: got[0].ID[:6], Yes: true}).Run(ctx); err != nil {
		t.Fatalf("ally delete failed: %v", err)
	}
	if got := allies(t, ctx); len(got) != 0 {
		t.Errorf("expected no allies after delete, got %d", len(got))
	}
}

func TestAllyAddCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestDB(t)

	tests := []struct {
		name string
		cmd  AllyAddCmd
	}{
		{"zero frequency", AllyAddCmd{Name: "Ghost", Frequency: 0}},
		{"blank name", AllyAddCmd{Name: "  ", Frequency: 7}},
		{"bad contact", AllyAddCmd{Name: "Lena", Frequency: 7, Contact: "javascript:alert(1)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); !apperr.Is(err, apperr.ErrInvalidInput) {
				t.Errorf("expected invalid input, got %v", err)
			}
		})
	}
	if got := allies(t, ctx); len(got) != 0 {
		t.Errorf("expected nothing stored, got %d allies", len(got))
	}
}

func TestResolveAlly(t *testing.T) {
	ctx, _ := setupTestDB(t)
	now := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	for _, a := range []models.Ally{
		{ID: "aa11", UserID: "u1", Name: "Marcus", FrequencyDays: 7, LastContact: now, CreatedAt: now},
		{ID: "aa22", UserID: "u1", Name: "Lena", FrequencyDays: 7, LastContact: now, CreatedAt: now},
	} {
		if err := ctx.Store.AddAlly(a); err != nil {
			t.Fatalf("failed to add ally: %v", err)
		}
	}

	tests := []struct {
		ref     string
		wantID  string
		wantErr bool
	}{
		{ref: "aa22", wantID: "aa22"},
		{ref: "LENA", wantID: "aa22"},
		{ref: "aa1", wantID: "aa11"},
		{ref: "aa", wantErr: true},
		{ref: "nobody", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			a, err := resolveAlly(ctx, "u1", tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveAlly(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if !tt.wantErr && a.ID != tt.wantID {
				t.Errorf("resolveAlly(%q) = %s, want %s", tt.ref, a.ID, tt.wantID)
			}
		})
	}
}

func TestGateCmd(t *testing.T) {
	ctx, clk := setupTestDB(t)

	if err := (&AllyAddCmd{Name: "Marcus", Frequency: 3}).Run(ctx); err != nil {
		t.Fatalf("ally add failed: %v", err)
	}
	if err := (&GateCmd{}).Run(ctx); err != nil {
		t.Fatalf("gate on open comms failed: %v", err)
	}

	clk.t = clk.t.AddDate(0, 0, 5)
	if err := (&GateCmd{}).Run(ctx); err != nil {
		t.Fatalf("gate on locked comms failed: %v", err)
	}

	svc, err := ctx.Actions()
	if err != nil {
		t.Fatalf("failed to build actions: %v", err)
	}
	gate, err := svc.CommsStatus("u1", ctx.Override)
	if err != nil {
		t.Fatalf("comms status failed: %v", err)
	}
	if !gate.Blocks() {
		t.Fatal("expected the gate to block after the ally went overdue")
	}

	ctx.Override.Bypassed = true
	gate, err = svc.CommsStatus("u1", ctx.Override)
	if err != nil {
		t.Fatalf("comms status failed: %v", err)
	}
	if gate.Blocks() || !gate.Locked {
		t.Errorf("expected bypass to suppress but not clear the lock, got %+v", gate)
	}
}
