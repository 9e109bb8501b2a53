package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func newApp() *cli.App {
	// -h selects 16 bit units, so help moves to -?
	cli.HelpFlag = &cli.BoolFlag{
		Name:    "help",
		Aliases: []string{"?"},
		Usage:   "this message",
	}
	return &cli.App{
		Name:                   "hd",
		Usage:                  "hexadecimal dump of files",
		UsageText:              "hd [-bhwBW?] [--head=n] [--tail=n] [--skip=n] file [... file]",
		Description:            "A file named logs is taken for the logs command; name it with a path, as in ./logs.",
		Version:                fmt.Sprintf("%s (built %s)", Version, BuildTime),
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Flags:                  dumpFlags,
		Action:                 dumpCmd,
		Commands:               []*cli.Command{logsCommand},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
