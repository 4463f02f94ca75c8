package seasons

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/vanguard/internal/cli"
	apperr "github.com/julianstephens/vanguard/internal/errors"
	"github.com/julianstephens/vanguard/internal/models"
)

type SeasonEndCmd struct {
	Name string `arg:"" optional:"" help:"Name for the archived season. Defaults to 'Season N'."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *SeasonEndCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	standing, err := svc.Profile(userID)
	if err != nil {
		return err
	}

	ok, err := cli.Confirm(
		"End the current season?",
		fmt.Sprintf("%s at total level %d is archived and every track resets to level 1.", standing.Rank, standing.TotalLevel),
		c.Yes,
	)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Season continues.")
		return nil
	}

	res, err := svc.EndSeason(userID, c.Name)
	if apperr.Is(err, apperr.ErrStaleLedger) {
		fmt.Println(cli.DangerStyle.Render("Season archived, but the tracks were not reset."))
		fmt.Println("Run 'vanguard season end' again once the database is healthy.")
		return err
	}
	if err != nil {
		return err
	}

	if res.BackupPath != "" {
		fmt.Printf("✓ Backup created: %s\n", filepath.Base(res.BackupPath))
	}
	fmt.Printf("✓ %s archived: %s, total level %d, %d XP\n", res.Season.Name, res.Season.Rank, res.Season.TotalLevel, res.Season.TotalXP)
	fmt.Println(cli.HeaderStyle.Render("A new season begins."))
	return nil
}

type SeasonListCmd struct{}

func (c *SeasonListCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	seasons, err := svc.Seasons(userID)
	if err != nil {
		return err
	}
	if len(seasons) == 0 {
		fmt.Println("No archived seasons.")
		return nil
	}

	for _, s := range seasons {
		printSeason(s)
	}
	return nil
}

func printSeason(s models.Season) {
	fmt.Printf("%s  %s → %s\n", cli.HeaderStyle.Render(s.Name),
		s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02"))
	fmt.Printf("  %s · total level %d · %d XP\n", s.Rank, s.TotalLevel, s.TotalXP)
	for _, t := range s.Tracks {
		label := string(t.PerkID)
		if perk, ok := models.LookupPerk(t.PerkID); ok {
			label = perk.Label
		}
		fmt.Printf("    %-14s LV %d (%d XP)\n", label, t.Level, t.XP)
	}
}
