package main

import (
	"fmt"

	"github.com/tdex-network/xbooth/internal/config"
	"github.com/urfave/cli/v2"
)

var keygenCmd = cli.Command{
	Name:  "keygen",
	Usage: "generate a new key and store it in the local state",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Usage:    "the name to refer to the key",
			Required: true,
		},
	},
	Action: keygenAction,
}

var airdropCmd = cli.Command{
	Name:  "airdrop",
	Usage: "credit lamports to an address to pay for fees and rent",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "to",
			Usage:    "the name or address of the account to fund",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "lamports",
			Usage: "the amount of lamports to credit, defaults to AIRDROP_LAMPORTS",
		},
	},
	Action: airdropAction,
}

func keygenAction(ctx *cli.Context) error {
	name := ctx.String("name")
	key, err := newNamedKey(name)
	if err != nil {
		return err
	}
	if err := saveKey(name, key); err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, key.PublicKey().String())
	return nil
}

func airdropAction(ctx *cli.Context) error {
	to, err := getAddress(ctx.String("to"))
	if err != nil {
		return err
	}
	lamports := ctx.Uint64("lamports")
	if lamports == 0 {
		lamports = config.GetUint64(config.AirdropLamportsKey)
	}

	svc, err := openLedger()
	if err != nil {
		return err
	}
	defer svc.close()

	if err := svc.ledger.Airdrop(ctx.Context, to, lamports); err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "airdropped %d lamports to %s\n", lamports, to)
	return nil
}
