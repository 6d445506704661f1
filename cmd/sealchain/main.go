// Command sealchain builds, verifies and queries a proof-of-work ledger.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"sealchain/blockchain/store"
	"sealchain/cmd/utils"
	"sealchain/log"
	"sealchain/metrics"
	"sealchain/params"
)

var (
	clientIdentifier = "sealchain"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the sealchain command line interface")
)

func initApp() {
	app.Action = demo
	app.HideVersion = true
	app.Copyright = "Copyright 2026 The sealchain Authors"
	app.Commands = []*cli.Command{
		demoCommand,
		generateCommand,
		verifyCommand,
		balanceCommand,
		utils.VersionCommand,
	}
	app.Flags = append(append([]cli.Flag{}, utils.CommonFlags...), utils.DifficultyFlag, utils.WorkersFlag)
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// setup loads the configuration, starts the metrics endpoint if asked and
// opens the configured store.
func setup(ctx *cli.Context) (*params.Config, store.ChainStore, error) {
	if err := utils.SetLogger(ctx); err != nil {
		return nil, nil, err
	}
	if ctx.NArg() > 0 {
		return nil, nil, fmt.Errorf("invalid command: %q", ctx.Args().Get(0))
	}
	config, err := utils.LoadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	if addr := config.Metrics.Addr; addr != "" {
		go func() {
			log.Info("Serving metrics", "addr", addr)
			if err := metrics.Serve(addr); err != nil {
				log.Warn("Metrics server stopped", "addr", addr, "err", err)
			}
		}()
	}
	chainStore, err := store.Open(config.Store.Backend, config.Store.Path)
	if err != nil {
		return nil, nil, err
	}
	return config, chainStore, nil
}
