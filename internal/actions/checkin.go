package actions

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/progression"
	"github.com/julianstephens/vanguard/internal/validation"
)

// CheckIn is the input of a daily check-in. Day defaults to today.
type CheckIn struct {
	Day       string
	Hydration bool
	Mobility  bool
	Breathing bool
	Reset     bool
	Diplomat  bool
	Mood      int
	Summary   string
}

// CheckInResult reports what a check-in stored and earned.
type CheckInResult struct {
	Day      models.HabitDay
	XPGained int
	LevelUps []progression.LevelUp
}

// LogCheckIn upserts the day's row and grants XP for every habit that went
// from unchecked to checked since the stored row. Re-submitting the same
// check-in earns nothing.
func (s *Service) LogCheckIn(userID string, in CheckIn) (CheckInResult, error) {
	if err := requireUser(userID); err != nil {
		return CheckInResult{}, err
	}

	now := s.now()
	day := models.HabitDay{
		ID:        uuid.NewString(),
		UserID:    userID,
		Day:       in.Day,
		Hydration: in.Hydration,
		Mobility:  in.Mobility,
		Breathing: in.Breathing,
		Reset:     in.Reset,
		Diplomat:  in.Diplomat,
		Mood:      in.Mood,
		Summary:   in.Summary,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if day.Day == "" {
		day.Day = s.today()
	}
	if err := validation.CheckIn(day).Err(); err != nil {
		return CheckInResult{}, err
	}

	var res CheckInResult
	prev, err := s.store.RecordCheckIn(day, func(prev *models.HabitDay, tracks []models.SkillTrack) ([]models.SkillTrack, error) {
		res = CheckInResult{}
		return grantAll(tracks, progression.CheckInGrants(prev, day), now, &res)
	})
	if err != nil {
		return CheckInResult{}, fmt.Errorf("recording check-in: %w", err)
	}

	if prev != nil {
		day.ID, day.CreatedAt = prev.ID, prev.CreatedAt
	}
	res.Day = day
	return res, nil
}

// grantAll applies grants to tracks in order and returns only the tracks
// that changed. Level-ups are reported once per track at its final level.
func grantAll(tracks []models.SkillTrack, grants []progression.Grant, now time.Time, res *CheckInResult) ([]models.SkillTrack, error) {
	byPerk := make(map[constants.PerkID]int, len(tracks))
	for i, t := range tracks {
		byPerk[t.PerkID] = i
	}

	touched := make(map[constants.PerkID]bool)
	leveled := make(map[constants.PerkID]progression.LevelUp)
	for _, g := range grants {
		i, ok := byPerk[g.PerkID]
		if !ok {
			return nil, fmt.Errorf("no track for perk %s", g.PerkID)
		}
		r, err := progression.ApplyXP(tracks[i], g.Amount)
		if err != nil {
			return nil, err
		}
		r.Track.UpdatedAt = now
		tracks[i] = r.Track
		touched[g.PerkID] = true
		res.XPGained += g.Amount
		if up, ok := progression.LevelUpFor(r); ok {
			leveled[g.PerkID] = up
		}
	}

	var out []models.SkillTrack
	for _, t := range tracks {
		if !touched[t.PerkID] {
			continue
		}
		out = append(out, t)
		if up, ok := leveled[t.PerkID]; ok {
			res.LevelUps = append(res.LevelUps, up)
		}
	}
	return out, nil
}
