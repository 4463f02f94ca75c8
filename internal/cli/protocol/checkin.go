package protocol

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/vanguard/internal/actions"
	"github.com/julianstephens/vanguard/internal/cli"
	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
	"github.com/julianstephens/vanguard/internal/utils"
)

// CheckinCmd records the day's protocol. Flags that are not given keep the
// value already logged for that day.
type CheckinCmd struct {
	Date        string  `help:"Day to log (YYYY-MM-DD). Defaults to today."`
	Hydration   *bool   `help:"Hydration protocol done."`
	Mobility    *bool   `help:"Mobility protocol done."`
	Breathing   *bool   `help:"Breathing protocol done."`
	Reset       *bool   `help:"Reset protocol done."`
	Diplomat    *bool   `help:"Reached out to an ally."`
	Mood        *int    `help:"Mood from 1 to 5 (0 clears it)."`
	Summary     *string `help:"Journal entry for the day."`
	Interactive bool    `short:"i" help:"Fill in the check-in with a form."`
}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = utils.DayKey(now(ctx), svc.Location())
	}

	prev, err := ctx.Store.GetHabitDay(userID, day)
	if err != nil {
		return fmt.Errorf("failed to read check-in: %w", err)
	}
	in := actions.CheckIn{Day: day}
	if prev != nil {
		in = fromDay(*prev)
	}

	if c.Interactive {
		if err := runForm(&in); err != nil {
			return err
		}
	} else {
		c.apply(&in)
	}

	res, err := svc.LogCheckIn(userID, in)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Check-in logged for %s\n", res.Day.Day)
	for _, h := range models.AllHabits {
		mark := cli.MutedStyle.Render("·")
		if res.Day.Flag(h) {
			mark = cli.OKStyle.Render("✓")
		}
		fmt.Printf("  %s %s\n", mark, h)
	}
	if res.XPGained > 0 {
		fmt.Printf("  +%d XP\n", res.XPGained)
	}
	for _, lu := range res.LevelUps {
		fmt.Println(cli.HeaderStyle.Render("▲ " + lu.String()))
	}
	return nil
}

func (c *CheckinCmd) apply(in *actions.CheckIn) {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&in.Hydration, c.Hydration)
	set(&in.Mobility, c.Mobility)
	set(&in.Breathing, c.Breathing)
	set(&in.Reset, c.Reset)
	set(&in.Diplomat, c.Diplomat)
	if c.Mood != nil {
		in.Mood = *c.Mood
	}
	if c.Summary != nil {
		in.Summary = *c.Summary
	}
}

func fromDay(d models.HabitDay) actions.CheckIn {
	return actions.CheckIn{
		Day:       d.Day,
		Hydration: d.Hydration,
		Mobility:  d.Mobility,
		Breathing: d.Breathing,
		Reset:     d.Reset,
		Diplomat:  d.Diplomat,
		Mood:      d.Mood,
		Summary:   d.Summary,
	}
}

func runForm(in *actions.CheckIn) error {
	var done []models.Habit
	for _, h := range models.AllHabits {
		if flag(in, h) {
			done = append(done, h)
		}
	}
	habitOptions := make([]huh.Option[models.Habit], len(models.AllHabits))
	for i, h := range models.AllHabits {
		habitOptions[i] = huh.NewOption(string(h), h).Selected(flag(in, h))
	}

	mood := strconv.Itoa(in.Mood)
	moodOptions := []huh.Option[string]{huh.NewOption("Unset", "0")}
	for i := 1; i <= constants.MaxMood; i++ {
		moodOptions = append(moodOptions, huh.NewOption(strconv.Itoa(i), strconv.Itoa(i)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[models.Habit]().
				Title("Protocol").
				Options(habitOptions...).
				Value(&done),
			huh.NewSelect[string]().
				Title("Mood").
				Options(moodOptions...).
				Value(&mood),
			huh.NewText().
				Title("Journal").
				CharLimit(constants.MaxSummaryLength).
				Value(&in.Summary),
		),
	).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return err
	}

	in.Hydration, in.Mobility, in.Breathing, in.Reset, in.Diplomat = false, false, false, false, false
	for _, h := range done {
		setFlag(in, h)
	}
	in.Mood, _ = strconv.Atoi(mood)
	return nil
}

func flag(in *actions.CheckIn, h models.Habit) bool {
	return models.HabitDay{
		Hydration: in.Hydration,
		Mobility:  in.Mobility,
		Breathing: in.Breathing,
		Reset:     in.Reset,
		Diplomat:  in.Diplomat,
	}.Flag(h)
}

func setFlag(in *actions.CheckIn, h models.Habit) {
	switch h {
	case models.HabitHydration:
		in.Hydration = true
	case models.HabitMobility:
		in.Mobility = true
	case models.HabitBreathing:
		in.Breathing = true
	case models.HabitReset:
		in.Reset = true
	case models.HabitDiplomat:
		in.Diplomat = true
	}
}

func now(ctx *cli.Context) time.Time {
	if ctx.Now != nil {
		return ctx.Now()
	}
	return time.Now()
}
