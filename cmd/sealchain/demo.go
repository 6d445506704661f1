package main

import (
	"context"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"sealchain/blockchain"
	"sealchain/blockchain/store"
	"sealchain/cmd/utils"
	"sealchain/params"
)

var demoCommand = &cli.Command{
	Action: demo,
	Name:   "demo",
	Usage:  "Seal three transfers, save and reload the ledger, print the results",
	Flags:  append(append([]cli.Flag{}, utils.CommonFlags...), utils.DifficultyFlag, utils.WorkersFlag),
}

// demoIdentities are printed in this order.
var demoIdentities = []string{"Alice", "Bob", "Charlie"}

type balanceRow struct {
	Identity string
	Balance  decimal.Decimal
}

type blockRoot struct {
	Height int
	Root   string // empty for a block without transfers
}

type demoReport struct {
	Valid          bool
	Balances       []balanceRow
	LoadedValid    bool
	LoadedBalances []balanceRow
	Participants   []string
	ExtremaOf      string
	Min, Max       decimal.Decimal
	BlockRoots     []blockRoot
	ChainRoot      string
	TotalWork      string
}

func demo(ctx *cli.Context) error {
	config, chainStore, err := setup(ctx)
	if err != nil {
		return err
	}
	defer chainStore.Close()

	report, err := runDemo(ctx.Context, config, chainStore, true)
	if err != nil {
		return err
	}
	return printReport(report)
}

func balances(l *blockchain.Ledger, identities []string) []balanceRow {
	rows := make([]balanceRow, 0, len(identities))
	for _, id := range identities {
		rows = append(rows, balanceRow{Identity: id, Balance: l.BalanceOf(id)})
	}
	return rows
}

// runDemo seals the Alice/Bob/Charlie block, round-trips the ledger
// through chainStore and collects everything printReport shows.
func runDemo(ctx context.Context, config *params.Config, chainStore store.ChainStore, spinner bool) (*demoReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ledger := blockchain.NewLedger()

	transfers := []blockchain.Transfer{
		{Sender: "Alice", Receiver: "Bob", Amount: blockchain.AmountFromInt(50)},
		{Sender: "Bob", Receiver: "Charlie", Amount: blockchain.AmountFromInt(20)},
		{Sender: "Charlie", Receiver: "Alice", Amount: blockchain.AmountFromInt(30)},
	}
	block := blockchain.NewBlock(nil, ledger.Latest().Hash)
	for _, t := range transfers {
		if err := block.AddTransfer(t); err != nil {
			return nil, err
		}
	}

	opts := blockchain.MiningOptions{
		Workers:     config.Mining.Workers,
		MaxAttempts: config.Mining.MaxAttempts,
	}
	if spinner {
		bar := progressbar.NewOptions64(-1,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("mining"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		opts.Progress = func(n uint64) { _ = bar.Set64(int64(n)) }
	}
	if err := ledger.AddBlockContext(ctx, block, config.Mining.Difficulty, opts); err != nil {
		return nil, err
	}

	report := &demoReport{
		Valid:     ledger.IsValid(),
		Balances:  balances(ledger, demoIdentities),
		ExtremaOf: "Alice",
		TotalWork: ledger.TotalWork().String(),
	}

	if err := chainStore.Save(ledger); err != nil {
		return nil, err
	}
	loaded, err := chainStore.Load()
	if err != nil {
		return nil, err
	}
	report.LoadedValid = loaded.IsValid()
	report.LoadedBalances = balances(loaded, demoIdentities)

	report.Participants = sortedParticipants(ledger)
	report.Min, report.Max = ledger.BalanceExtrema(report.ExtremaOf)

	for i, b := range ledger.Blocks() {
		root, err := b.MerkleRoot()
		if err != nil {
			root = ""
		}
		report.BlockRoots = append(report.BlockRoots, blockRoot{Height: i, Root: root})
	}
	if report.ChainRoot, err = ledger.CommitmentRoot(); err != nil {
		return nil, err
	}
	return report, nil
}
