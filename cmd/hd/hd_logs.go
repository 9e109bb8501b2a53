package main

import (
	"fmt"
	"strings"
	"time"

	"hd-go/pkg/config"
	"hd-go/pkg/log"

	"github.com/urfave/cli/v2"
)

var logsCommand = &cli.Command{
	Name:      "logs",
	Usage:     "print entries from the log database",
	UsageText: "hd --log-db=file logs [-n count] [--since duration]",
	Description: `Prints the JSON log events recorded by earlier runs started with --log-db,
oldest first. Diagnostics such as seek failures are stored at warn level.`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "number of most recent entries `NUMBER`",
			Value:   20,
		},
		&cli.DurationFlag{
			Name:  "since",
			Usage: "only entries newer than `DURATION` (e.g. 1h, 30m)",
		},
	},
	Action: logsCmd,
}

func logsCmd(c *cli.Context) error {
	dbFile := c.String("log-db")
	if dbFile == "" {
		cfg, err := config.Load(c.String("config"), nil)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		dbFile = cfg.LogDB
	}
	if dbFile == "" {
		return cli.Exit("Error: no log database configured, use --log-db", 1)
	}
	if err := log.Init(dbFile, false); err != nil {
		return cli.Exit(fmt.Sprintf("Error opening log database: %v", err), 1)
	}
	defer log.Close()

	var (
		entries []log.LogEntry
		err     error
	)
	if c.IsSet("since") {
		entries, err = log.GetLogsSince(time.Now().Add(-c.Duration("since")), c.Int("count"))
	} else {
		count := c.Int("count")
		if count <= 0 {
			return cli.Exit("Error: --count (-n) must be a positive number.", 1)
		}
		entries, err = log.GetLastNLogs(count)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error retrieving logs: %v", err), 1)
	}
	for _, e := range entries {
		fmt.Fprintln(c.App.Writer, strings.TrimRight(e.LogData, "\n"))
	}
	return nil
}
