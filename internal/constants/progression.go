package constants

// PerkID identifies a progression track.
type PerkID string

// Rank is the presentation title derived from the sum of all track levels.
type Rank string

const (
	PerkBioEngine    PerkID = "bio_engine"
	PerkStateControl PerkID = "state_control"
	PerkTribalGlue   PerkID = "tribal_glue"

	// XPPerLevel is the width of one level band: level = xp/XPPerLevel + 1.
	XPPerLevel = 100

	// XP granted per event
	HabitXP  = 10
	OracleXP = 5

	RankRecruit    Rank = "RECRUIT"
	RankOperatorI  Rank = "OPERATOR I"
	RankOperatorII Rank = "OPERATOR II"
	RankVanguard   Rank = "VANGUARD"
	RankMaster     Rank = "MASTER"
)

// RankThreshold maps a minimum total level to a rank.
type RankThreshold struct {
	MinTotalLevel int
	Rank          Rank
}

// RankLadder is ordered from the highest threshold down. A total level equal
// to a threshold earns that rank.
var RankLadder = []RankThreshold{
	{MinTotalLevel: 30, Rank: RankMaster},
	{MinTotalLevel: 16, Rank: RankVanguard},
	{MinTotalLevel: 6, Rank: RankOperatorII},
	{MinTotalLevel: 1, Rank: RankOperatorI},
}
