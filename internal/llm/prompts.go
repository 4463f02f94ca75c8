package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/vanguard/internal/models"
)

const (
	mentorMarker = "ROLE: TACTICAL MENTOR"
	dailyMarker  = "ROLE: MORNING BRIEFING"
	intelMarker  = "ROLE: INTEL FEED"
)

// IntelCategories are the card categories the intel feed mixes.
var IntelCategories = []string{"TECH", "STRATEGY", "INTEL", "CURIOSITY"}

// MentorPrompt builds the weekly mentor analysis prompt from window adherence
// and the dated journal lines.
func MentorPrompt(adherence int, journal []string) string {
	logs := strings.Join(journal, "\n")
	if logs == "" {
		logs = "(no journal entries)"
	}
	return fmt.Sprintf(`%s
UserStats: Adherence %d%% over the last 7 days.
Logs:
%s

Task: Analyze performance. Speak DIRECTLY to the user ("You").
Below 50%% adherence: be stern and encourage. Above 80%%: commend, then warn against complacency.
Identify patterns. Maximum 3 sentences. Plain text only.`, mentorMarker, adherence, logs)
}

// DailyBriefingPrompt asks for the three morning cards as a JSON object.
func DailyBriefingPrompt() string {
	return dailyMarker + `
Generate 3 short, punchy cards for a tactical morning briefing:
1. stoic: a Stoic quote or maxim.
2. tactical: one actionable piece of advice for focus or discipline.
3. gratitude: a brief, thought-provoking gratitude question.

Return ONLY a JSON object, no other text:
{"stoic": "...", "tactical": "...", "gratitude": "..."}`
}

// IntelPrompt asks for one batch of intel cards as a JSON array.
func IntelPrompt(count int) string {
	return fmt.Sprintf(`%s
Generate %d unique, short, punchy intel cards. Mix these categories randomly:
- TECH: a recent AI/tech breakdown or tool recommendation.
- STRATEGY: a law of power, Stoic maxim or strategic mental model.
- INTEL: a significant global event or trend, otherwise timeless strategic context.
- CURIOSITY: a scientific fact or historical anomaly.

Constraints:
- content is at most 2 sentences.
- Tone: professional, high-bandwidth, operator aesthetic.
- referenceUrl: a URL to a reputable source if available, else omit it.

Return ONLY a JSON array, no other text:
[{"category": "%s", "title": "...", "content": "...", "referenceUrl": "..."}]`,
		intelMarker, count, strings.Join(IntelCategories, "|"))
}

// stripFences removes a surrounding markdown code fence.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 2 {
			content = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}
	return strings.TrimSpace(content)
}

// ParseBriefing extracts the daily briefing object from a response.
func ParseBriefing(content string) (models.Briefing, error) {
	content = stripFences(content)
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return models.Briefing{}, fmt.Errorf("no JSON object found in response")
	}

	var b models.Briefing
	if err := json.Unmarshal([]byte(content[start:end+1]), &b); err != nil {
		return models.Briefing{}, fmt.Errorf("unmarshal briefing: %w", err)
	}
	if b.Stoic == "" || b.Tactical == "" || b.Gratitude == "" {
		return models.Briefing{}, fmt.Errorf("briefing is missing a card")
	}
	return b, nil
}

// ParseIntelCards extracts a non-empty card array from a response. Cards
// without a title or content are dropped.
func ParseIntelCards(content string) ([]models.IntelCard, error) {
	content = stripFences(content)
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var raw []models.IntelCard
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal cards: %w", err)
	}

	cards := make([]models.IntelCard, 0, len(raw))
	for _, c := range raw {
		if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Content) == "" {
			continue
		}
		c.Category = strings.ToUpper(strings.TrimSpace(c.Category))
		cards = append(cards, c)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("response contained no usable cards")
	}
	return cards, nil
}
