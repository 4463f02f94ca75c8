package actions

import (
	"fmt"

	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/progression"
)

// OracleCard is one entry of the built-in reflection deck.
type OracleCard struct {
	Category string
	Content  string
	Author   string
}

var oracleDeck = []OracleCard{
	{Category: "DISCIPLINE", Content: "We suffer more often in imagination than in reality.", Author: "Seneca"},
	{Category: "CONTROL", Content: "You have power over your mind, not outside events. Realize this, and you will find strength.", Author: "Marcus Aurelius"},
	{Category: "CONTROL", Content: "It is not things that disturb us, but our judgments about things.", Author: "Epictetus"},
	{Category: "ACTION", Content: "Waste no more time arguing about what a good man should be. Be one.", Author: "Marcus Aurelius"},
	{Category: "ADVERSITY", Content: "The impediment to action advances action. What stands in the way becomes the way.", Author: "Marcus Aurelius"},
	{Category: "TIME", Content: "It is not that we have a short time to live, but that we waste a lot of it.", Author: "Seneca"},
	{Category: "DISCIPLINE", Content: "No man is free who is not master of himself.", Author: "Epictetus"},
	{Category: "ADVERSITY", Content: "Difficulties strengthen the mind, as labor does the body.", Author: "Seneca"},
	{Category: "TRIBE", Content: "What is not good for the swarm is not good for the bee.", Author: "Marcus Aurelius"},
	{Category: "ACTION", Content: "First say to yourself what you would be; and then do what you have to do.", Author: "Epictetus"},
}

// OracleResult reports the award for acknowledging a card.
type OracleResult struct {
	XPAdded int
	LevelUp *progression.LevelUp
	Track   models.SkillTrack
}

// DrawOracle picks a random card. It grants nothing.
func (s *Service) DrawOracle(userID string) (OracleCard, error) {
	if err := requireUser(userID); err != nil {
		return OracleCard{}, err
	}
	return oracleDeck[s.pick(len(oracleDeck))], nil
}

// AcknowledgeOracle grants the oracle award to the state-control track.
func (s *Service) AcknowledgeOracle(userID string) (OracleResult, error) {
	if err := requireUser(userID); err != nil {
		return OracleResult{}, err
	}

	grant := progression.OracleGrant()
	var res progression.Result
	_, err := s.store.UpdateSkillTrack(userID, grant.PerkID, func(cur models.SkillTrack) (models.SkillTrack, error) {
		r, err := progression.ApplyXP(cur, grant.Amount)
		if err != nil {
			return models.SkillTrack{}, err
		}
		r.Track.UserID, r.Track.PerkID = userID, grant.PerkID
		r.Track.UpdatedAt = s.now()
		res = r
		return r.Track, nil
	})
	if err != nil {
		return OracleResult{}, fmt.Errorf("granting oracle xp: %w", err)
	}

	out := OracleResult{XPAdded: grant.Amount, Track: res.Track}
	if up, ok := progression.LevelUpFor(res); ok {
		out.LevelUp = &up
	}
	return out, nil
}
