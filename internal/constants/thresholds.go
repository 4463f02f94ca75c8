package constants

// HealthTier classifies an ally relationship by its health percentage.
type HealthTier string

// DayClass is the tri-state calendar classification of a single day.
type DayClass string

// ArtifactKind names a cacheable generated artifact.
type ArtifactKind string

const (
	TierStable   HealthTier = "STABLE"
	TierDecaying HealthTier = "DECAYING"
	TierCritical HealthTier = "CRITICAL"

	// Lower bounds (inclusive) of the DECAYING and STABLE bands.
	DecayingMinHealth = 25
	StableMinHealth   = 75

	DayElite    DayClass = "elite"
	DayStandard DayClass = "standard"
	DayMissed   DayClass = "missed"

	EliteMinPct    = 80
	StandardMinPct = 50

	// DefaultWindowDays is the trailing adherence window, inclusive of today.
	DefaultWindowDays = 7

	ArtifactMentorBriefing ArtifactKind = "mentor_briefing"
	ArtifactDailyBriefing  ArtifactKind = "daily_briefing"
	ArtifactIntelBatch     ArtifactKind = "intel_batch"

	// DefaultIntelBatchCeiling is the number of intel batches allowed per day.
	DefaultIntelBatchCeiling = 3

	MaxMood          = 5
	MaxSummaryLength = 2000
)
