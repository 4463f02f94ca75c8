package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/vanguard/internal/adherence"
	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/decay"
	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/gencache"
	"github.com/julianstephens/vanguard/internal/llm"
	"github.com/julianstephens/vanguard/internal/models"
)

// NoTelemetryMessage is the mentor briefing for a window with no logs.
const NoTelemetryMessage = "No telemetry data detected. Execute protocol to initiate analysis."

// IntelCardsPerBatch is how many cards one intel batch asks for.
const IntelCardsPerBatch = 5

// Mentor is the weekly mentor analysis.
type Mentor struct {
	Content   string
	Adherence int
	FromCache bool
	Stale     bool
}

// MentorBriefing returns the mentor analysis for the trailing window. It is
// regenerated when any day in the window changed after the cached copy. On a
// generation failure a stale copy, if any, is returned with the error.
func (s *Service) MentorBriefing(ctx context.Context, userID string) (Mentor, error) {
	if err := requireUser(userID); err != nil {
		return Mentor{}, err
	}
	start, end, days, err := s.window(userID)
	if err != nil {
		return Mentor{}, err
	}
	if len(days) == 0 {
		return Mentor{Content: NoTelemetryMessage}, nil
	}

	report, err := adherence.WeeklyReport(days, start, end, s.settings.WindowDays)
	if err != nil {
		return Mentor{}, err
	}
	journal := make([]string, 0, len(report.Journal))
	for _, j := range report.Journal {
		journal = append(journal, fmt.Sprintf("%s: %s", j.Day, j.Summary))
	}

	res, err := s.resolve(ctx, gencache.Request{
		UserID:          userID,
		Kind:            constants.ArtifactMentorBriefing,
		Period:          gencache.TrailingWindow(s.now(), s.loc, s.settings.WindowDays),
		SourceUpdatedAt: latestUpdate(days),
		Prompt:          llm.MentorPrompt(report.Adherence, journal),
	})
	return Mentor{Content: res.Content, Adherence: report.Adherence, FromCache: res.FromCache, Stale: res.Stale}, err
}

func latestUpdate(days []models.HabitDay) time.Time {
	var latest time.Time
	for _, d := range days {
		if d.UpdatedAt.After(latest) {
			latest = d.UpdatedAt
		}
	}
	return latest
}

// Briefing is the daily three-card briefing.
type Briefing struct {
	models.Briefing
	FromCache bool
	Stale     bool
}

// DailyBriefing returns today's briefing, generating it at most once per day.
func (s *Service) DailyBriefing(ctx context.Context, userID string) (Briefing, error) {
	if err := requireUser(userID); err != nil {
		return Briefing{}, err
	}
	res, err := s.resolve(ctx, gencache.Request{
		UserID: userID,
		Kind:   constants.ArtifactDailyBriefing,
		Period: gencache.Day(s.now(), s.loc),
		Prompt: llm.DailyBriefingPrompt(),
		Validate: func(content string) error {
			_, err := llm.ParseBriefing(content)
			return err
		},
	})
	if res.Content == "" {
		return Briefing{}, err
	}
	b, perr := llm.ParseBriefing(res.Content)
	if perr != nil {
		return Briefing{}, fmt.Errorf("decoding cached briefing: %w", perr)
	}
	return Briefing{Briefing: b, FromCache: res.FromCache, Stale: res.Stale}, err
}

// Intel is one batch of the intel feed.
type Intel struct {
	Index     int
	Cards     []models.IntelCard
	FromCache bool
	Stale     bool
}

// IntelBatch returns batch index of today's intel feed. The feed is refused
// with ErrLocked while the comms gate blocks, and with ErrBatchLimit once
// index reaches the daily ceiling.
func (s *Service) IntelBatch(ctx context.Context, userID string, index int, override decay.SessionOverride) (Intel, error) {
	if err := requireUser(userID); err != nil {
		return Intel{}, err
	}

	allies, err := s.store.GetAllies(userID)
	if err != nil {
		return Intel{}, err
	}
	if gate := decay.Evaluate(allies, s.now(), override); gate.Blocks() {
		return Intel{}, fmt.Errorf("%w (%s is overdue by %d days)", apperr.ErrLocked, gate.Ally.Name, gate.Health.OverdueDays)
	}

	res, err := s.resolve(ctx, gencache.Request{
		UserID:  userID,
		Kind:    constants.ArtifactIntelBatch,
		Period:  gencache.Day(s.now(), s.loc),
		Variant: index,
		Ceiling: s.settings.IntelBatchCeiling,
		Prompt:  llm.IntelPrompt(IntelCardsPerBatch),
		Validate: func(content string) error {
			_, err := llm.ParseIntelCards(content)
			return err
		},
	})
	if res.Content == "" {
		return Intel{}, err
	}
	cards, perr := llm.ParseIntelCards(res.Content)
	if perr != nil {
		return Intel{}, fmt.Errorf("decoding cached intel: %w", perr)
	}
	return Intel{Index: index, Cards: cards, FromCache: res.FromCache, Stale: res.Stale}, err
}
