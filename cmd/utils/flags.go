package utils

import (
	"time"

	"github.com/urfave/cli/v2"

	"sealchain/log"
	"sealchain/params"
)

var (
	// ConfigFileFlag --config
	ConfigFileFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Specify config file",
	}
	// VerbosityFlag --verbosity
	VerbosityFlag = &cli.Uint64Flag{
		Name:    "verbosity",
		Aliases: []string{"v"},
		Usage:   "log verbosity (0:panic, 1:fatal, 2:error, 3:warn, 4:info, 5:debug, 6:trace)",
		Value:   3,
	}
	// JSONFormatFlag --json
	JSONFormatFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output log in json format",
	}
	// ColorFormatFlag --color
	ColorFormatFlag = &cli.BoolFlag{
		Name:  "color",
		Usage: "output log in color text format",
		Value: true,
	}
	// LogFileFlag --log
	LogFileFlag = &cli.StringFlag{
		Name:  "log",
		Usage: "Specify log file, support rotate",
	}
	// LogRotationFlag --log.rotation
	LogRotationFlag = &cli.DurationFlag{
		Name:  "log.rotation",
		Usage: "log rotation time",
		Value: 24 * time.Hour,
	}
	// LogMaxAgeFlag --log.maxage
	LogMaxAgeFlag = &cli.DurationFlag{
		Name:  "log.maxage",
		Usage: "log max age",
		Value: 7 * 24 * time.Hour,
	}
	// DifficultyFlag --difficulty
	DifficultyFlag = &cli.UintFlag{
		Name:  "difficulty",
		Usage: "leading zero hex characters required of a block hash (overrides config)",
	}
	// WorkersFlag --workers
	WorkersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "goroutines used for the nonce search (overrides config)",
	}
	// StoreFlag --store
	StoreFlag = &cli.StringFlag{
		Name:  "store",
		Usage: "ledger store backend: file, leveldb or memory (overrides config)",
	}
	// FileFlag --file
	FileFlag = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "ledger file or database path (overrides config)",
	}
	// MetricsAddrFlag --metrics.addr
	MetricsAddrFlag = &cli.StringFlag{
		Name:  "metrics.addr",
		Usage: "serve prometheus metrics on this address",
	}
	// IdentityFlag --identity
	IdentityFlag = &cli.StringFlag{
		Name:     "identity",
		Aliases:  []string{"i"},
		Usage:    "identity to query",
		Required: true,
	}

	// CommonFlags are accepted by every command.
	CommonFlags = []cli.Flag{
		ConfigFileFlag,
		VerbosityFlag,
		JSONFormatFlag,
		ColorFormatFlag,
		LogFileFlag,
		LogRotationFlag,
		LogMaxAgeFlag,
		StoreFlag,
		FileFlag,
		MetricsAddrFlag,
	}
)

// SetLogger configures logging from the log flags.
func SetLogger(ctx *cli.Context) error {
	logLevel := ctx.Uint64(VerbosityFlag.Name)
	jsonFormat := ctx.Bool(JSONFormatFlag.Name)
	colorFormat := ctx.Bool(ColorFormatFlag.Name)
	log.SetLogger(uint32(logLevel), jsonFormat, colorFormat)

	logFile := ctx.String(LogFileFlag.Name)
	if logFile == "" {
		return nil
	}
	return log.SetLogFile(logFile, ctx.Duration(LogRotationFlag.Name), ctx.Duration(LogMaxAgeFlag.Name))
}

// LoadConfig reads --config and applies the overriding flags.
func LoadConfig(ctx *cli.Context) (*params.Config, error) {
	config, err := params.LoadConfig(ctx.String(ConfigFileFlag.Name))
	if err != nil {
		return nil, err
	}
	if ctx.IsSet(DifficultyFlag.Name) {
		config.Mining.Difficulty = ctx.Uint(DifficultyFlag.Name)
	}
	if ctx.IsSet(WorkersFlag.Name) {
		config.Mining.Workers = ctx.Int(WorkersFlag.Name)
	}
	if ctx.IsSet(StoreFlag.Name) {
		config.Store.Backend = ctx.String(StoreFlag.Name)
	}
	if ctx.IsSet(FileFlag.Name) {
		config.Store.Path = ctx.String(FileFlag.Name)
	}
	if ctx.IsSet(MetricsAddrFlag.Name) {
		config.Metrics.Addr = ctx.String(MetricsAddrFlag.Name)
	}
	return config, config.CheckConfig()
}
