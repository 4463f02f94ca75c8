package postgres

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/storage"
)

// TestStore_Integration runs against a real database.
// Example: VANGUARD_TEST_POSTGRES="postgres://vanguard@localhost:5432/vanguard_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("VANGUARD_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("VANGUARD_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	userID := "it-" + uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		if settings.LLMProvider == "" {
			t.Error("expected default provider to be set")
		}
	})

	t.Run("CheckIn", func(t *testing.T) {
		day := models.HabitDay{ID: uuid.NewString(), UserID: userID, Day: "2026-01-05", Hydration: true, Mood: 4, CreatedAt: now, UpdatedAt: now}
		prev, err := store.RecordCheckIn(day, func(prev *models.HabitDay, tracks []models.SkillTrack) ([]models.SkillTrack, error) {
			if prev != nil {
				t.Errorf("expected no previous row, got %+v", prev)
			}
			for i := range tracks {
				if tracks[i].PerkID == constants.PerkBioEngine {
					tracks[i].XP += 10
					tracks[i].UpdatedAt = now
				}
			}
			return tracks, nil
		})
		if err != nil || prev != nil {
			t.Fatalf("RecordCheckIn() = %v, %v", prev, err)
		}

		got, err := store.GetHabitDay(userID, "2026-01-05")
		if err != nil || got == nil {
			t.Fatalf("GetHabitDay() = %v, %v", got, err)
		}
		if !got.Hydration || got.Mood != 4 {
			t.Errorf("stored day = %+v", got)
		}
	})

	t.Run("ConcurrentTrackUpdates", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.UpdateSkillTrack(userID, constants.PerkStateControl, func(cur models.SkillTrack) (models.SkillTrack, error) {
					cur.XP += 5
					return cur, nil
				})
				if err != nil {
					t.Errorf("UpdateSkillTrack() error: %v", err)
				}
			}()
		}
		wg.Wait()

		tracks, err := store.GetSkillTracks(userID)
		if err != nil {
			t.Fatalf("GetSkillTracks() error: %v", err)
		}
		for _, tr := range tracks {
			if tr.PerkID == constants.PerkStateControl && tr.XP != 50 {
				t.Errorf("state_control XP = %d, want 50", tr.XP)
			}
		}
	})

	t.Run("ConcurrentCheckInsAndAcks", func(t *testing.T) {
		user := "it-" + uuid.NewString()
		const checkins, acks = 6, 6
		grant := func(_ *models.HabitDay, tracks []models.SkillTrack) ([]models.SkillTrack, error) {
			for i := range tracks {
				if tracks[i].PerkID == constants.PerkStateControl {
					tracks[i].XP += constants.HabitXP
					return []models.SkillTrack{tracks[i]}, nil
				}
			}
			return nil, errors.New("state_control track missing")
		}

		var wg sync.WaitGroup
		for i := 0; i < checkins; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				day := models.HabitDay{ID: uuid.NewString(), UserID: user, Day: now.AddDate(0, 0, -i).Format("2006-01-02"),
					Breathing: true, CreatedAt: now, UpdatedAt: now}
				if _, err := store.RecordCheckIn(day, grant); err != nil {
					t.Errorf("RecordCheckIn() error: %v", err)
				}
			}(i)
		}
		for i := 0; i < acks; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.UpdateSkillTrack(user, constants.PerkStateControl, func(cur models.SkillTrack) (models.SkillTrack, error) {
					cur.XP += constants.OracleXP
					return cur, nil
				})
				if err != nil {
					t.Errorf("UpdateSkillTrack() error: %v", err)
				}
			}()
		}
		wg.Wait()

		tracks, err := store.GetSkillTracks(user)
		if err != nil {
			t.Fatalf("GetSkillTracks() error: %v", err)
		}
		want := checkins*constants.HabitXP + acks*constants.OracleXP
		for _, tr := range tracks {
			if tr.PerkID == constants.PerkStateControl && tr.XP != want {
				t.Errorf("state_control XP = %d, want %d", tr.XP, want)
			}
		}
	})

	t.Run("Allies", func(t *testing.T) {
		a := models.Ally{ID: uuid.NewString(), UserID: userID, Name: "Marcus", FrequencyDays: 7, LastContact: now, CreatedAt: now}
		b := models.Ally{ID: uuid.NewString(), UserID: userID, Name: "Seneca", FrequencyDays: 14, LastContact: now, CreatedAt: now}
		for _, ally := range []models.Ally{a, b} {
			if err := store.AddAlly(ally); err != nil {
				t.Fatalf("AddAlly() error: %v", err)
			}
		}
		allies, err := store.GetAllies(userID)
		if err != nil || len(allies) != 2 || allies[0].ID != a.ID {
			t.Fatalf("GetAllies() = %+v, %v", allies, err)
		}
		if err := store.DeleteAlly(userID, a.ID); err != nil {
			t.Fatalf("DeleteAlly() error: %v", err)
		}
		if err := store.TouchAlly(userID, a.ID, now); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("TouchAlly() on deleted ally error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Seasons", func(t *testing.T) {
		season := models.Season{ID: uuid.NewString(), UserID: userID, Name: "S1", StartDate: now.AddDate(0, -1, 0), EndDate: now,
			TotalXP: 60, TotalLevel: 3, Rank: constants.RankRecruit, Tracks: []models.SkillTrack{{UserID: userID, PerkID: constants.PerkBioEngine, XP: 60, Level: 1}}}
		if err := store.AddSeason(season); err != nil {
			t.Fatalf("AddSeason() error: %v", err)
		}
		seasons, err := store.GetSeasons(userID)
		if err != nil || len(seasons) != 1 || len(seasons[0].Tracks) != 1 {
			t.Fatalf("GetSeasons() = %+v, %v", seasons, err)
		}
	})
}
