package progression

import (
	"time"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
)

// Standing summarizes a user's tracks for display.
type Standing struct {
	Tracks     []models.SkillTrack
	TotalXP    int
	TotalLevel int
	Rank       constants.Rank
}

// RankFor maps a total level onto the rank ladder. A total exactly on a
// threshold earns the higher rank.
func RankFor(totalLevel int) constants.Rank {
	for _, step := range constants.RankLadder {
		if totalLevel >= step.MinTotalLevel {
			return step.Rank
		}
	}
	return constants.RankRecruit
}

// CompleteTracks returns one track per catalogue perk, in catalogue order.
// Perks the user has not earned on yet appear at XP 0, level 1.
func CompleteTracks(userID string, tracks []models.SkillTrack) []models.SkillTrack {
	byPerk := make(map[constants.PerkID]models.SkillTrack, len(tracks))
	for _, t := range tracks {
		byPerk[t.PerkID] = t
	}

	out := make([]models.SkillTrack, 0, len(models.Perks))
	for _, p := range models.Perks {
		t, ok := byPerk[p.ID]
		if !ok {
			t = models.SkillTrack{UserID: userID, PerkID: p.ID}
		}
		t.Level = LevelFor(t.XP)
		out = append(out, t)
	}
	return out
}

// StandingOf completes the track list and derives total level and rank.
func StandingOf(userID string, tracks []models.SkillTrack) Standing {
	complete := CompleteTracks(userID, tracks)
	s := Standing{Tracks: complete}
	for _, t := range complete {
		s.TotalXP += t.XP
		s.TotalLevel += t.Level
	}
	s.Rank = RankFor(s.TotalLevel)
	return s
}

// Archive snapshots the current standing as a season. It does not reset
// anything; the caller resets the live tracks only after the archive is
// durably written.
func Archive(userID, name string, tracks []models.SkillTrack, start, end time.Time) models.Season {
	s := StandingOf(userID, tracks)
	return models.Season{
		UserID:     userID,
		Name:       name,
		StartDate:  start,
		EndDate:    end,
		TotalXP:    s.TotalXP,
		TotalLevel: s.TotalLevel,
		Rank:       s.Rank,
		Tracks:     s.Tracks,
	}
}
