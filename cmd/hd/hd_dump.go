package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"hd-go/pkg/config"
	"hd-go/pkg/hexdump"
	"hd-go/pkg/log"
	"hd-go/pkg/runner"
	"hd-go/pkg/sink"

	"github.com/urfave/cli/v2"
)

var dumpFlags = []cli.Flag{
	&cli.BoolFlag{Name: "bytes", Aliases: []string{"b"}, Usage: "print in bytes (default)"},
	&cli.BoolFlag{Name: "shorts", Aliases: []string{"h"}, Usage: "print in halfwords (16 bits)"},
	&cli.BoolFlag{Name: "longs", Aliases: []string{"w"}, Usage: "print in words (32 bits)"},
	&cli.BoolFlag{Name: "big", Aliases: []string{"B"}, Usage: "print assuming Big Endian"},
	&cli.StringFlag{Name: "head", Aliases: []string{"H"}, Usage: "print only `n` leading lines"},
	&cli.StringFlag{Name: "tail", Aliases: []string{"T"}, Usage: "print only `n` last lines"},
	&cli.StringFlag{Name: "skip", Aliases: []string{"S"}, Usage: "first skip `n` bytes on all inputs"},
	&cli.BoolFlag{Name: "wide", Aliases: []string{"W"}, Usage: "set number of columns to 32 (default is 16)"},
	&cli.StringFlag{Name: "out", Usage: "reassign stdout to `file` (.gz and .zst are compressed)"},
	&cli.StringFlag{Name: "err", Usage: "reassign stderr to `file`"},
	&cli.StringFlag{Name: "config", Usage: "read settings from `file`"},
	&cli.StringFlag{Name: "log-db", Usage: "keep a log history in the SQLite `file`"},
	&cli.BoolFlag{Name: "debug", Usage: "log progress to stderr"},
}

// overrides collects the settings given on the command line.
func overrides(c *cli.Context) (map[string]any, error) {
	o := map[string]any{}
	switch {
	case c.Bool("longs"):
		o["unit"] = hexdump.UnitWord.String()
	case c.Bool("shorts"):
		o["unit"] = hexdump.UnitShort.String()
	case c.Bool("bytes"):
		o["unit"] = hexdump.UnitByte.String()
	}
	if c.IsSet("big") {
		o["big_endian"] = c.Bool("big")
	}
	if c.IsSet("wide") {
		o["wide"] = c.Bool("wide")
	}
	if c.IsSet("debug") {
		o["debug"] = c.Bool("debug")
	}
	for _, name := range []string{"head", "tail", "skip"} {
		if !c.IsSet(name) {
			continue
		}
		n, err := config.ParseNumber(c.String(name))
		if err != nil || n < 0 || (n == 0 && name != "skip") {
			return nil, fmt.Errorf("Invalid --%s option: %s", name, c.String(name))
		}
		o[name] = n
	}
	for flag, key := range map[string]string{"out": "out", "err": "err", "log-db": "log_db"} {
		if c.IsSet(flag) {
			o[key] = c.String(flag)
		}
	}
	return o, nil
}

func usageError(c *cli.Context, msg string) error {
	if msg != "" {
		fmt.Fprintln(c.App.ErrWriter, msg)
	}
	fmt.Fprintf(c.App.ErrWriter, "Usage: %s\n\n", c.App.UsageText)
	for _, f := range c.App.VisibleFlags() {
		fmt.Fprintf(c.App.ErrWriter, "   %s\n", f)
	}
	return cli.Exit("", 1)
}

func dumpCmd(c *cli.Context) error {
	if c.App.ErrWriter == nil {
		c.App.ErrWriter = os.Stderr
	}
	o, err := overrides(c)
	if err != nil {
		return usageError(c, err.Error())
	}
	if c.NArg() == 0 {
		return usageError(c, "")
	}
	cfg, err := config.Load(c.String("config"), o)
	if err != nil {
		return usageError(c, err.Error())
	}

	if cfg.Debug {
		log.SetStd(os.Stderr, true)
	}
	if cfg.LogDB != "" {
		if err := log.Init(cfg.LogDB, cfg.Debug); err != nil {
			return cli.Exit(fmt.Sprintf("Error initializing log database: %v", err), 1)
		}
		defer log.Close()
	}

	var outW io.Writer = c.App.Writer
	if outW == nil {
		outW = os.Stdout
	}
	if cfg.Out != "" {
		f, err := sink.Create(cfg.Out)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer f.Close()
		outW = f
	}
	errW := c.App.ErrWriter
	if cfg.Err != "" {
		f, err := sink.Create(cfg.Err)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer f.Close()
		errW = f
	}

	lines := sink.NewLines(outW)
	diag := sink.NewDiagnostics(errW)
	r := &runner.Runner{
		Options: cfg.Options(),
		Skip:    cfg.Skip,
		Out:     lines,
		Diag:    diag,
	}
	log.Debug().Str("config", cfg.ConfigFile).Strs("files", c.Args().Slice()).Msg("starting dump")

	res, runErr := r.Run(c.Args().Slice())
	if err := lines.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("%w: %w", hexdump.ErrWrite, err)
	}
	log.Info().Int("files", res.Files).Int("failed", res.Failed).Int("diagnostics", diag.Count()).Msg("dump finished")

	switch {
	case runErr == nil:
		return nil
	case errors.Is(runErr, runner.ErrOpen):
		return cli.Exit("", 3)
	case errors.Is(runErr, hexdump.ErrWrite):
		return cli.Exit(fmt.Sprintf("Error writing output: %v", runErr), 1)
	}
	return cli.Exit("", 1)
}
