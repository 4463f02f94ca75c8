package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/vanguard/internal/constants"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	DangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	OKStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(72)
)

// Tier renders a health tier in its band color.
func Tier(t constants.HealthTier) string {
	switch t {
	case constants.TierStable:
		return OKStyle.Render(string(t))
	case constants.TierDecaying:
		return WarningStyle.Render(string(t))
	default:
		return DangerStyle.Render(string(t))
	}
}

// Day renders a calendar classification.
func Day(c constants.DayClass) string {
	switch c {
	case constants.DayElite:
		return OKStyle.Render("■")
	case constants.DayStandard:
		return WarningStyle.Render("■")
	default:
		return MutedStyle.Render("□")
	}
}

// Bar draws a fixed-width percentage bar.
func Bar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return strings.Repeat("█", filled) + MutedStyle.Render(strings.Repeat("░", width-filled))
}

// Card frames a titled block of generated text.
func Card(title, body string) string {
	return CardStyle.Render(fmt.Sprintf("%s\n%s", HeaderStyle.Render(title), body))
}
