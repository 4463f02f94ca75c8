package feed

import (
	"context"
	"fmt"
	"os"

	"github.com/julianstephens/vanguard/internal/cli"
	apperr "github.com/julianstephens/vanguard/internal/errors"
)

// served reports the outcome of a generation call. A transient error with
// content means a stale copy is shown; it is printed as a warning instead of
// failing the command.
func served(hasContent bool, err error) error {
	if err == nil {
		return nil
	}
	if hasContent && apperr.IsTransient(err) {
		fmt.Fprintln(os.Stderr, cli.WarningStyle.Render("⚠ Showing the last saved copy: "+err.Error()))
		return nil
	}
	if apperr.IsTransient(err) {
		return fmt.Errorf("%w (try again shortly)", err)
	}
	return err
}

func origin(fromCache, stale bool) string {
	switch {
	case stale:
		return cli.WarningStyle.Render("stale")
	case fromCache:
		return cli.MutedStyle.Render("cached")
	default:
		return cli.MutedStyle.Render("fresh")
	}
}

type MentorCmd struct{}

func (c *MentorCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	m, err := svc.MentorBriefing(context.Background(), userID)
	if m.Content != "" {
		title := fmt.Sprintf("MENTOR · adherence %d%% · %s", m.Adherence, origin(m.FromCache, m.Stale))
		fmt.Println(cli.Card(title, m.Content))
	}
	return served(m.Content != "", err)
}

type DailyCmd struct{}

func (c *DailyCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	b, err := svc.DailyBriefing(context.Background(), userID)
	hasContent := b.Stoic != "" || b.Tactical != "" || b.Gratitude != ""
	if hasContent {
		fmt.Println(cli.MutedStyle.Render("Daily briefing · " + origin(b.FromCache, b.Stale)))
		fmt.Println(cli.Card("STOIC", b.Stoic))
		fmt.Println(cli.Card("TACTICAL", b.Tactical))
		fmt.Println(cli.Card("GRATITUDE", b.Gratitude))
	}
	return served(hasContent, err)
}

type IntelCmd struct {
	Batch int `short:"b" help:"Batch number for today, starting at 1." default:"1"`
}

func (c *IntelCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	if c.Batch < 1 {
		return apperr.Invalid("batch must be at least 1, got %d", c.Batch)
	}

	intel, err := svc.IntelBatch(context.Background(), userID, c.Batch-1, ctx.Override)
	switch {
	case apperr.Is(err, apperr.ErrLocked):
		fmt.Println(cli.DangerStyle.Render("COMMS LOCKED"))
		return err
	case apperr.Is(err, apperr.ErrBatchLimit):
		fmt.Println("Daily intel limit reached. New intel unlocks tomorrow.")
		return err
	}

	if len(intel.Cards) > 0 {
		fmt.Println(cli.MutedStyle.Render(fmt.Sprintf("Intel batch %d · %s", c.Batch, origin(intel.FromCache, intel.Stale))))
		for _, card := range intel.Cards {
			body := card.Content
			if card.ReferenceURL != "" {
				body += "\n" + cli.MutedStyle.Render(card.ReferenceURL)
			}
			fmt.Println(cli.Card(fmt.Sprintf("[%s] %s", card.Category, card.Title), body))
		}
	}
	return served(len(intel.Cards) > 0, err)
}
