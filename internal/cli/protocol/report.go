package protocol

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/vanguard/internal/adherence"
	"github.com/julianstephens/vanguard/internal/cli"
	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/progression"
)

const barWidth = 20

type ReportCmd struct{}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	r, err := svc.WeeklyReport(userID)
	if err != nil {
		return err
	}

	fmt.Println(cli.HeaderStyle.Render(fmt.Sprintf("DEBRIEF %s → %s", r.Start, r.End)))
	fmt.Printf("Adherence:   %s %d%%\n", cli.Bar(r.Adherence, barWidth), r.Adherence)
	if r.AverageMood > 0 {
		fmt.Printf("Mood:        %.1f / %d\n", r.AverageMood, constants.MaxMood)
	} else {
		fmt.Println("Mood:        no data")
	}
	fmt.Printf("Logged days: %d\n\n", r.LoggedDays)

	for _, h := range models.CoreHabits {
		fmt.Printf("  %-10s %d\n", h, r.Breakdown[h])
	}

	if len(r.Journal) > 0 {
		fmt.Println()
		fmt.Println(cli.HeaderStyle.Render("JOURNAL"))
		for _, j := range r.Journal {
			fmt.Printf("  %s  %s\n", cli.MutedStyle.Render(j.Day), j.Summary)
		}
	}
	return nil
}

type TrinityCmd struct{}

func (c *TrinityCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	scores, err := svc.Trinity(userID)
	if err != nil {
		return err
	}

	fmt.Println(cli.HeaderStyle.Render("TRINITY"))
	for _, bucket := range models.Categories {
		pct := scores[bucket.Category]
		fmt.Printf("  %-6s %s %3d%%\n", strings.ToUpper(string(bucket.Category)), cli.Bar(pct, barWidth), pct)
	}
	return nil
}

type CalendarCmd struct {
	Year  int `help:"Year to show. Defaults to the current year."`
	Month int `help:"Month to show (1-12). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}

	today := now(ctx).In(svc.Location())
	year, month := c.Year, time.Month(c.Month)
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = today.Month()
	}

	days, err := svc.Calendar(userID, year, month)
	if err != nil {
		return err
	}
	fmt.Print(renderMonth(year, month, days))
	return nil
}

// renderMonth lays the month out Monday-first. Days without a check-in are dots.
func renderMonth(year int, month time.Month, days []adherence.CalendarDay) string {
	byDay := make(map[int]adherence.CalendarDay, len(days))
	for _, d := range days {
		t, err := time.Parse(constants.DateFormat, d.Day)
		if err != nil {
			continue
		}
		byDay[t.Day()] = d
	}

	var b strings.Builder
	b.WriteString(cli.HeaderStyle.Render(fmt.Sprintf("%s %d", strings.ToUpper(month.String()), year)))
	b.WriteString("\nMo Tu We Th Fr Sa Su\n")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", offset))

	last := first.AddDate(0, 1, -1).Day()
	for d := 1; d <= last; d++ {
		cell := cli.MutedStyle.Render("·")
		if cd, ok := byDay[d]; ok {
			cell = cli.Day(cd.Class)
		}
		b.WriteString(" " + cell + " ")
		if (offset+d)%7 == 0 {
			b.WriteString("\n")
		}
	}
	if (offset+last)%7 != 0 {
		b.WriteString("\n")
	}

	elite, standard := 0, 0
	for _, d := range days {
		switch d.Class {
		case constants.DayElite:
			elite++
		case constants.DayStandard:
			standard++
		}
	}
	fmt.Fprintf(&b, "\n%s elite %d  %s standard %d  %s missed %d\n",
		cli.Day(constants.DayElite), elite,
		cli.Day(constants.DayStandard), standard,
		cli.Day(constants.DayMissed), len(days)-elite-standard)
	return b.String()
}

type TrendCmd struct {
	Days int `help:"Number of days to show, today included." default:"14"`
}

func (c *TrendCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	points, err := svc.Trend(userID, c.Days)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Println("No check-ins in range.")
		return nil
	}

	fmt.Printf("%-10s  %-4s  %-4s  %-5s  %s\n", "DAY", "BODY", "MIND", "TRIBE", "MOOD")
	for _, p := range points {
		mood := "-"
		if p.Mood > 0 {
			mood = strings.Repeat("●", p.Mood)
		}
		fmt.Printf("%-10s  %-4d  %-4d  %-5d  %s\n", p.Day,
			p.Counts[models.CategoryBody], p.Counts[models.CategoryMind], p.Counts[models.CategoryTribe], mood)
	}
	return nil
}

type ProfileCmd struct{}

func (c *ProfileCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	standing, err := svc.Profile(userID)
	if err != nil {
		return err
	}

	fmt.Println(cli.HeaderStyle.Render(fmt.Sprintf("RANK: %s", standing.Rank)))
	fmt.Printf("Total level %d  ·  %d XP\n\n", standing.TotalLevel, standing.TotalXP)
	for _, t := range standing.Tracks {
		label, class := string(t.PerkID), ""
		if perk, ok := models.LookupPerk(t.PerkID); ok {
			label, class = perk.Label, perk.Class
		}
		into, span := progression.Progress(t.XP)
		fmt.Printf("  %-14s %-9s LV %-3d %s %d/%d\n", label, class, t.Level, cli.Bar(into*100/span, barWidth), into, span)
	}
	return nil
}
