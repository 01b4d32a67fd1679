package main

import (
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
	"github.com/tdex-network/xbooth/internal/core/domain"
	"github.com/tdex-network/xbooth/pkg/mathutil"
	"github.com/urfave/cli/v2"
)

var mintCmd = cli.Command{
	Name:  "mint",
	Usage: "create assets and mint tokens",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "create a new asset, paid by its authority",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name to refer to the asset",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "authority",
					Usage:    "the name of the key allowed to mint the asset",
					Required: true,
				},
				&cli.UintFlag{
					Name:  "decimals",
					Usage: "the number of decimals of the asset",
					Value: 9,
				},
			},
			Action: mintCreateAction,
		},
		{
			Name:  "to",
			Usage: "mint an amount of the asset into a token account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "mint",
					Usage:    "the name or address of the asset",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "account",
					Usage:    "the name or address of the destination token account",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "authority",
					Usage:    "the name of the mint authority key",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "amount",
					Usage:    "the amount to mint in units of the asset",
					Required: true,
				},
			},
			Action: mintToAction,
		},
	},
}

var accountCmd = cli.Command{
	Name:  "account",
	Usage: "create and inspect ledger accounts",
	Subcommands: []*cli.Command{
		{
			Name:  "create",
			Usage: "create a new token account, paid by its owner",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "the name to refer to the token account",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "owner",
					Usage:    "the name of the key owning the token account",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "mint",
					Usage:    "the name or address of the asset",
					Required: true,
				},
			},
			Action: accountCreateAction,
		},
		{
			Name:  "info",
			Usage: "print the raw state of an account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "address",
					Usage:    "the name or address of the account",
					Required: true,
				},
			},
			Action: accountInfoAction,
		},
	},
}

var balanceCmd = cli.Command{
	Name:  "balance",
	Usage: "print the token balance of a token account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "account",
			Usage:    "the name or address of the token account",
			Required: true,
		},
	},
	Action: balanceAction,
}

func mintCreateAction(ctx *cli.Context) error {
	authority, err := getKey(ctx.String("authority"))
	if err != nil {
		return err
	}
	decimals := ctx.Uint("decimals")
	if decimals > 255 {
		return fmt.Errorf("decimals must be in range [0, 255]")
	}

	svc, err := openLedger()
	if err != nil {
		return err
	}
	defer svc.close()

	name := ctx.String("name")
	mint, err := newNamedKey(name)
	if err != nil {
		return err
	}
	receipt, err := svc.ledger.CreateMint(
		ctx.Context, authority, mint, authority.PublicKey(), uint8(decimals),
	)
	if err != nil {
		return txError(ctx, receipt, err)
	}
	if err := saveKey(name, mint); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, mint.PublicKey().String())
	return nil
}

func mintToAction(ctx *cli.Context) error {
	mint, err := getAddress(ctx.String("mint"))
	if err != nil {
		return err
	}
	account, err := getAddress(ctx.String("account"))
	if err != nil {
		return err
	}
	authority, err := getKey(ctx.String("authority"))
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(ctx.String("amount"))
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	svc, err := openLedger()
	if err != nil {
		return err
	}
	defer svc.close()

	descriptor, err := svc.ledger.GetAssetDescriptor(ctx.Context, mint)
	if err != nil {
		return err
	}
	units, err := mathutil.ToBaseUnits(amount, descriptor.Decimals)
	if err != nil {
		return err
	}

	receipt, err := svc.ledger.MintTo(ctx.Context, mint, account, authority, units)
	if err != nil {
		return txError(ctx, receipt, err)
	}
	return printJSON(ctx, receipt)
}

func accountCreateAction(ctx *cli.Context) error {
	owner, err := getKey(ctx.String("owner"))
	if err != nil {
		return err
	}
	mint, err := getAddress(ctx.String("mint"))
	if err != nil {
		return err
	}

	svc, err := openLedger()
	if err != nil {
		return err
	}
	defer svc.close()

	name := ctx.String("name")
	account, err := newNamedKey(name)
	if err != nil {
		return err
	}
	receipt, err := svc.ledger.CreateTokenAccount(
		ctx.Context, owner, account, mint, owner.PublicKey(),
	)
	if err != nil {
		return txError(ctx, receipt, err)
	}
	if err := saveKey(name, account); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, account.PublicKey().String())
	return nil
}

func accountInfoAction(ctx *cli.Context) error {
	address, err := getAddress(ctx.String("address"))
	if err != nil {
		return err
	}

	svc, err := openLedger()
	if err != nil {
		return err
	}
	defer svc.close()

	account, err := svc.ledger.GetAccount(ctx.Context, address)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]interface{}{
		"address":    account.Address.String(),
		"lamports":   account.Lamports,
		"owner":      account.Owner.String(),
		"executable": account.Executable,
		"data":       base58.Encode(account.Data),
	})
}

func balanceAction(ctx *cli.Context) error {
	address, err := getAddress(ctx.String("account"))
	if err != nil {
		return err
	}

	svc, err := openLedger()
	if err != nil {
		return err
	}
	defer svc.close()

	custody, err := svc.ledger.GetCustodyAccount(ctx.Context, address)
	if err != nil {
		return err
	}
	descriptor, err := svc.ledger.GetAssetDescriptor(ctx.Context, custody.Mint)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]interface{}{
		"mint":    custody.Mint.String(),
		"owner":   custody.Owner.String(),
		"balance": mathutil.FromBaseUnits(custody.Amount, descriptor.Decimals).String(),
		"units":   custody.Amount,
	})
}

// txError prints the receipt of a failed transaction, if any, and returns the
// error that made it fail.
func txError(ctx *cli.Context, receipt *domain.Receipt, err error) error {
	if receipt != nil {
		_ = printJSON(ctx, receipt)
	}
	return err
}
