package main

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"sealchain/cmd/utils"
	"sealchain/log"
)

var verifyCommand = &cli.Command{
	Action: verify,
	Name:   "verify",
	Usage:  "Load a saved ledger and check its integrity",
	Flags:  utils.CommonFlags,
}

var balanceCommand = &cli.Command{
	Action: balance,
	Name:   "balance",
	Usage:  "Load a saved ledger and print the balance and extrema of an identity",
	Flags:  append(append([]cli.Flag{}, utils.CommonFlags...), utils.IdentityFlag),
}

func verify(ctx *cli.Context) error {
	_, chainStore, err := setup(ctx)
	if err != nil {
		return err
	}
	defer chainStore.Close()

	ledger, err := chainStore.Load()
	if err != nil {
		return err
	}
	if err := ledger.Verify(); err != nil {
		log.Warn("Ledger failed verification", "err", err)
		printValidity("Loaded ledger", false)
		return cli.Exit(err.Error(), 2)
	}
	printValidity("Loaded ledger", true)
	pterm.Info.Printfln("Blocks: %d", ledger.Height())
	return nil
}

func balance(ctx *cli.Context) error {
	_, chainStore, err := setup(ctx)
	if err != nil {
		return err
	}
	defer chainStore.Close()

	ledger, err := chainStore.Load()
	if err != nil {
		return err
	}
	identity := ctx.String(utils.IdentityFlag.Name)
	min, max := ledger.BalanceExtrema(identity)
	if err := printBalances([]balanceRow{{Identity: identity, Balance: ledger.BalanceOf(identity)}}); err != nil {
		return err
	}
	pterm.Info.Printfln("Balance extrema of %s: min %s, max %s", identity, min, max)
	return nil
}
