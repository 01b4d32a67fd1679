package main

import (
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var historyCmd = cli.Command{
	Name:  "history",
	Usage: "list the receipts of the submitted transactions, newest first",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "page",
			Usage: "the page number",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "page_size",
			Usage: "the number of receipts per page",
			Value: 10,
		},
	},
	Action: historyAction,
}

func historyAction(ctx *cli.Context) error {
	svc, err := openLedger()
	if err != nil {
		return err
	}
	defer svc.close()

	receipts, err := svc.ledger.ListReceipts(
		ctx.Context, domain.NewPage(ctx.Int("page"), ctx.Int("page_size")),
	)
	if err != nil {
		return err
	}
	return printJSON(ctx, receipts)
}
