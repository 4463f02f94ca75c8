package protocol

import (
	"fmt"

	"github.com/julianstephens/vanguard/internal/cli"
)

type OracleDrawCmd struct{}

func (c *OracleDrawCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	card, err := svc.DrawOracle(userID)
	if err != nil {
		return err
	}

	fmt.Println(cli.Card(card.Category, fmt.Sprintf("%q\n- %s", card.Content, card.Author)))
	fmt.Println(cli.MutedStyle.Render("Reflect, then run 'vanguard oracle ack' to log it."))
	return nil
}

type OracleAckCmd struct{}

func (c *OracleAckCmd) Run(ctx *cli.Context) error {
	svc, userID, err := ctx.Session()
	if err != nil {
		return err
	}
	res, err := svc.AcknowledgeOracle(userID)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Reflection logged: +%d XP\n", res.XPAdded)
	if res.LevelUp != nil {
		fmt.Println(cli.HeaderStyle.Render("▲ " + res.LevelUp.String()))
	}
	return nil
}
