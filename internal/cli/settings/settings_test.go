package settings

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/vanguard/internal/cli"
	"github.com/julianstephens/vanguard/internal/constants"
	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return &cli.Context{Store: store}
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestSettingsShowCmd(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&SettingsShowCmd{}).Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsSetCmd_Update(t *testing.T) {
	ctx := setupTestDB(t)

	cmd := &SettingsSetCmd{
		Timezone:    strPtr("America/Chicago"),
		WindowDays:  intPtr(14),
		LLMProvider: strPtr(constants.LLMProviderMock),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if got.Timezone != "America/Chicago" || got.WindowDays != 14 || got.LLMProvider != constants.LLMProviderMock {
		t.Errorf("settings not updated: %+v", got)
	}
	if got.IntelBatchCeiling != constants.DefaultIntelBatchCeiling {
		t.Errorf("untouched setting changed: %d", got.IntelBatchCeiling)
	}
}

func TestSettingsSetCmd_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  SettingsSetCmd
	}{
		{"unknown timezone", SettingsSetCmd{Timezone: strPtr("Mars/Olympus")}},
		{"zero window", SettingsSetCmd{WindowDays: intPtr(0)}},
		{"negative ceiling", SettingsSetCmd{IntelBatchCeiling: intPtr(-1)}},
		{"unknown provider", SettingsSetCmd{LLMProvider: strPtr("carrier-pigeon")}},
		{"bad url", SettingsSetCmd{LLMURL: strPtr("ftp://models")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestDB(t)
			before, err := ctx.Store.GetSettings()
			if err != nil {
				t.Fatalf("failed to get settings: %v", err)
			}

			err = tt.cmd.Run(ctx)
			if !apperr.Is(err, apperr.ErrInvalidInput) {
				t.Fatalf("expected invalid input error, got %v", err)
			}

			after, err := ctx.Store.GetSettings()
			if err != nil {
				t.Fatalf("failed to get settings: %v", err)
			}
			if after != before {
				t.Errorf("settings changed after rejected update: %+v", after)
			}
		})
	}
}

func TestSettingsSetCmd_NoChanges(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&SettingsSetCmd{}).Run(ctx); err != nil {
		t.Errorf("expected no error without flags, got %v", err)
	}
}
