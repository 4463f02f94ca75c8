package network

import (
	"fmt"
	"strings"

	"github.com/julianstephens/vanguard/internal/actions"
	"github.com/julianstephens/vanguard/internal/cli"
	"github.com/julianstephens/vanguard/internal/models"
)

// resolveAlly finds an ally by exact ID, ID prefix, or case-insensitive name.
func resolveAlly(ctx *cli.Context, userID, ref string) (models.Ally, error) {
	allies, err := ctx.Store.GetAllies(userID)
	if err != nil {
		return models.Ally{}, err
	}

	var matches []models.Ally
	for _, a := range allies {
		if a.ID == ref {
			return a, nil
		}
		if strings.HasPrefix(a.ID, ref) || strings.EqualFold(a.Name, ref) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return models.Ally{}, fmt.Errorf("no ally matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Ally{}, fmt.Errorf("%q matches %d allies; use the ID", ref, len(matches))
	}
}

type AllyAddCmd struct {
	Name      string `arg:"" help:"Ally name."`
	Role      string `help:"Relationship, e.g. mentor or family."`
	Frequency int    `short:"f" help:"Expected days between contacts." default:"7"`
	Contact   string `help:"Contact link (tel:, mailto:, or http(s) URL)."`
}

func (c *AllyAddCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	a, err := svc.AddAlly(userID, actions.NewAlly{
		Name:          c.Name,
		Role:          c.Role,
		FrequencyDays: c.Frequency,
		ContactMethod: c.Contact,
	})
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Ally added: %s (every %d days) [%s]\n", a.Name, a.FrequencyDays, shortID(a.ID))
	return nil
}

type AllyListCmd struct{}

func (c *AllyListCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	statuses, err := svc.Network(userID)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		fmt.Println("No allies yet. Add one with 'vanguard ally add'.")
		return nil
	}

	for _, s := range statuses {
		h := s.Health
		detail := fmt.Sprintf("%d days since contact", h.DaysSince)
		if h.Invalid {
			detail = "invalid contact frequency"
		} else if h.OverdueDays > 0 {
			detail += fmt.Sprintf(", %d overdue", h.OverdueDays)
		}
		fmt.Printf("  %s  %-20s %-9s %s %3d%%  %s\n",
			cli.MutedStyle.Render(shortID(s.Ally.ID)), s.Ally.Name, cli.Tier(h.Tier), cli.Bar(h.HealthPct, 10), h.HealthPct, detail)
		if s.Ally.ContactMethod != "" {
			fmt.Printf("            %s\n", cli.MutedStyle.Render(s.Ally.ContactMethod))
		}
	}
	return nil
}

type AllyContactCmd struct {
	Ally string `arg:"" help:"Ally ID, ID prefix, or name."`
}

func (c *AllyContactCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	a, err := resolveAlly(ctx, userID, c.Ally)
	if err != nil {
		return err
	}
	if _, err := svc.LogInteraction(userID, a.ID); err != nil {
		return err
	}

	fmt.Printf("✓ Contact restored with %s\n", a.Name)
	return nil
}

type AllyDeleteCmd struct {
	Ally string `arg:"" help:"Ally ID, ID prefix, or name."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *AllyDeleteCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	a, err := resolveAlly(ctx, userID, c.Ally)
	if err != nil {
		return err
	}

	ok, err := cli.Confirm(fmt.Sprintf("Remove %s from your network?", a.Name), "Contact history is deleted with the ally.", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := svc.DeleteAlly(userID, a.ID); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Ally removed: %s\n", a.Name)
	return nil
}

// GateCmd reports the comms gate.
type GateCmd struct{}

func (c *GateCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	gate, err := svc.CommsStatus(userID, ctx.Override)
	if err != nil {
		return err
	}

	switch {
	case !gate.Locked:
		fmt.Println(cli.OKStyle.Render("COMMS OPEN") + "  all allies within cadence")
	case gate.Bypassed:
		fmt.Println(cli.WarningStyle.Render("COMMS BYPASSED") + fmt.Sprintf("  %s is still overdue", gate.Ally.Name))
	default:
		fmt.Println(cli.DangerStyle.Render("COMMS LOCKED"))
		if gate.Health.Invalid {
			fmt.Printf("  %s has an invalid contact frequency. Fix or remove the ally.\n", gate.Ally.Name)
		} else {
			fmt.Printf("  %s is overdue by %d days. Run 'vanguard ally contact %q' once you reach out.\n",
				gate.Ally.Name, gate.Health.OverdueDays, gate.Ally.Name)
		}
		if gate.Ally.ContactMethod != "" {
			fmt.Printf("  Contact: %s\n", gate.Ally.ContactMethod)
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
