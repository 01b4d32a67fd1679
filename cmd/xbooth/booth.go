package main

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/tdex-network/xbooth/internal/config"
	"github.com/tdex-network/xbooth/internal/core/ports"
	"github.com/tdex-network/xbooth/pkg/xbooth"
	"github.com/urfave/cli/v2"
)

var (
	adminFlag = &cli.StringFlag{
		Name:     "admin",
		Usage:    "the name of the booth admin key",
		Required: true,
	}
	assetAFlag = &cli.StringFlag{
		Name:     "asset_a",
		Usage:    "the name or address of the asset paid in exchanges",
		Required: true,
	}
	assetBFlag = &cli.StringFlag{
		Name:     "asset_b",
		Usage:    "the name or address of the asset paid out in exchanges",
		Required: true,
	}
	amountFlag = &cli.StringFlag{
		Name:     "amount",
		Usage:    "the amount in units of the asset",
		Required: true,
	}
)

var boothCmd = cli.Command{
	Name:  "booth",
	Usage: "manage the exchange booth of an admin for a pair of assets",
	Subcommands: []*cli.Command{
		{
			Name:   "init",
			Usage:  "create the booth and its vaults, paid by the admin",
			Flags:  []cli.Flag{adminFlag, assetAFlag, assetBFlag},
			Action: boothInitAction,
		},
		{
			Name:   "info",
			Usage:  "print the booth record and the balances of its vaults",
			Flags:  []cli.Flag{adminFlag, assetAFlag, assetBFlag},
			Action: boothInfoAction,
		},
		{
			Name:  "deposit",
			Usage: "move funds from a token account of the admin into the vault of the same asset",
			Flags: []cli.Flag{
				adminFlag, assetAFlag, assetBFlag, amountFlag,
				&cli.StringFlag{
					Name:     "account",
					Usage:    "the name or address of the source token account",
					Required: true,
				},
			},
			Action: boothDepositAction,
		},
		{
			Name:  "withdraw",
			Usage: "move funds from the vault into a token account of the same asset",
			Flags: []cli.Flag{
				adminFlag, assetAFlag, assetBFlag, amountFlag,
				&cli.StringFlag{
					Name:     "account",
					Usage:    "the name or address of the destination token account",
					Required: true,
				},
			},
			Action: boothWithdrawAction,
		},
		{
			Name:  "exchange",
			Usage: "pay an amount of asset A and receive its worth of asset B",
			Flags: []cli.Flag{
				adminFlag, assetAFlag, assetBFlag, amountFlag,
				&cli.StringFlag{
					Name:     "paying",
					Usage:    "the name or address of the token account of asset A",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "receiving",
					Usage:    "the name or address of the token account of asset B",
					Required: true,
				},
			},
			Action: boothExchangeAction,
		},
	},
}

func boothInitAction(ctx *cli.Context) error {
	admin, booth, err := getBooth(ctx)
	if err != nil {
		return err
	}

	svc, err := openLedger()
	if err != nil {
		return err
	}
	defer svc.close()

	return submit(ctx, svc, admin, booth.NewInitializeInstruction())
}

func boothInfoAction(ctx *cli.Context) error {
	_, booth, err := getBooth(ctx)
	if err != nil {
		return err
	}

	svc, err := openLedger()
	if err != nil {
		return err
	}
	defer svc.close()

	record, err := svc.ledger.GetBooth(ctx.Context, booth.ProgramID, booth.Address)
	if err != nil {
		return err
	}
	vaultA, err := svc.ledger.GetCustodyAccount(ctx.Context, record.VaultA)
	if err != nil {
		return err
	}
	vaultB, err := svc.ledger.GetCustodyAccount(ctx.Context, record.VaultB)
	if err != nil {
		return err
	}

	return printJSON(ctx, map[string]interface{}{
		"program_id":    svc.programID,
		"address":       booth.Address.String(),
		"admin":         record.Admin.String(),
		"vault_a":       record.VaultA.String(),
		"vault_b":       record.VaultB.String(),
		"units_a":       vaultA.Amount,
		"units_b":       vaultB.Amount,
		"exchange_rate": config.GetExchangeRate().String(),
	})
}

func boothDepositAction(ctx *cli.Context) error {
	return vaultAction(ctx, (*xbooth.Booth).NewDepositInstruction)
}

func boothWithdrawAction(ctx *cli.Context) error {
	return vaultAction(ctx, (*xbooth.Booth).NewWithdrawInstruction)
}

func vaultAction(
	ctx *cli.Context,
	newInstruction func(*xbooth.Booth, solana.PublicKey, solana.PublicKey, decimal.Decimal) ports.Instruction,
) error {
	admin, booth, err := getBooth(ctx)
	if err != nil {
		return err
	}
	account, err := getAddress(ctx.String("account"))
	if err != nil {
		return err
	}
	amount, err := getAmount(ctx)
	if err != nil {
		return err
	}

	svc, err := openLedger()
	if err != nil {
		return err
	}
	defer svc.close()

	custody, err := svc.ledger.GetCustodyAccount(ctx.Context, account)
	if err != nil {
		return err
	}
	vault, ok := booth.VaultFor(custody.Mint)
	if !ok {
		return fmt.Errorf("asset of account %s is not traded by the booth", account)
	}

	return submit(ctx, svc, admin, newInstruction(booth, account, vault, amount))
}

func boothExchangeAction(ctx *cli.Context) error {
	admin, booth, err := getBooth(ctx)
	if err != nil {
		return err
	}
	paying, err := getAddress(ctx.String("paying"))
	if err != nil {
		return err
	}
	receiving, err := getAddress(ctx.String("receiving"))
	if err != nil {
		return err
	}
	amount, err := getAmount(ctx)
	if err != nil {
		return err
	}

	svc, err := openLedger()
	if err != nil {
		return err
	}
	defer svc.close()

	return submit(
		ctx, svc, admin, booth.NewExchangeInstruction(receiving, paying, amount),
	)
}

func getBooth(ctx *cli.Context) (solana.PrivateKey, *xbooth.Booth, error) {
	admin, err := getKey(ctx.String("admin"))
	if err != nil {
		return nil, nil, err
	}
	assetA, err := getAddress(ctx.String("asset_a"))
	if err != nil {
		return nil, nil, err
	}
	assetB, err := getAddress(ctx.String("asset_b"))
	if err != nil {
		return nil, nil, err
	}

	booth, err := xbooth.NewBooth(
		config.GetProgramID(), admin.PublicKey(), assetA, assetB,
	)
	if err != nil {
		return nil, nil, err
	}
	return admin, booth, nil
}

func getAmount(ctx *cli.Context) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(ctx.String("amount"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %w", err)
	}
	return amount, nil
}

func submit(
	ctx *cli.Context, svc *service, signer solana.PrivateKey, ix ports.Instruction,
) error {
	receipt, err := svc.ledger.SubmitInstructions(
		ctx.Context, []solana.PrivateKey{signer}, ix,
	)
	if err != nil {
		return txError(ctx, receipt, err)
	}
	return printJSON(ctx, receipt)
}
