package main

import (
	"math/rand"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"sealchain/blockchain"
	"sealchain/cmd/utils"
	"sealchain/generator"
)

var (
	blocksFlag = &cli.IntFlag{
		Name:  "blocks",
		Usage: "number of blocks to mine after genesis",
		Value: 10,
	}
	transfersFlag = &cli.IntFlag{
		Name:  "transfers",
		Usage: "transfers per block",
		Value: 5,
	}
	identitiesFlag = &cli.IntFlag{
		Name:  "identities",
		Usage: "number of distinct identities",
		Value: 4,
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed (0 uses the clock)",
	}
)

var generateCommand = &cli.Command{
	Action: generate,
	Name:   "generate",
	Usage:  "Mine a ledger of random transfers and save it",
	Flags: append(append([]cli.Flag{}, utils.CommonFlags...),
		utils.DifficultyFlag, utils.WorkersFlag, blocksFlag, transfersFlag, identitiesFlag, seedFlag),
}

func generate(ctx *cli.Context) error {
	config, chainStore, err := setup(ctx)
	if err != nil {
		return err
	}
	defer chainStore.Close()

	seed := ctx.Int64(seedFlag.Name)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ledger, err := generator.Ledger(ctx.Context, rand.New(rand.NewSource(seed)), generator.Params{
		Blocks:            ctx.Int(blocksFlag.Name),
		TransfersPerBlock: ctx.Int(transfersFlag.Name),
		Identities:        ctx.Int(identitiesFlag.Name),
		Difficulty:        config.Mining.Difficulty,
		Mining: blockchain.MiningOptions{
			Workers:     config.Mining.Workers,
			MaxAttempts: config.Mining.MaxAttempts,
		},
	})
	if err != nil {
		return err
	}
	if err := chainStore.Save(ledger); err != nil {
		return err
	}

	printValidity("Generated ledger", ledger.IsValid())
	pterm.Info.Printfln("Blocks: %d, seed: %d", ledger.Height(), seed)
	return printBalances(balances(ledger, sortedParticipants(ledger)))
}
