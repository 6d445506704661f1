package utils

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli/v2"

	"sealchain/params"
)

// VersionCommand version subcommand
var VersionCommand = &cli.Command{
	Action:    version,
	Name:      "version",
	Usage:     "Print version numbers",
	ArgsUsage: " ",
	Description: `
The output of this command is supposed to be machine-readable.
`,
}

func version(ctx *cli.Context) error {
	fmt.Fprintln(ctx.App.Writer, clientIdentifier)
	fmt.Fprintln(ctx.App.Writer, "Version:", params.VersionWithMeta)
	if gitCommit != "" {
		fmt.Fprintln(ctx.App.Writer, "Git Commit:", gitCommit)
	}
	if gitDate != "" {
		fmt.Fprintln(ctx.App.Writer, "Git Commit Date:", gitDate)
	}
	fmt.Fprintln(ctx.App.Writer, "Architecture:", runtime.GOARCH)
	fmt.Fprintln(ctx.App.Writer, "Go Version:", runtime.Version())
	fmt.Fprintln(ctx.App.Writer, "Operating System:", runtime.GOOS)
	return nil
}
