// Package main provides the memsketch CLI entrypoint: a replay harness
// that drives a configured MemoryManager with a newline-delimited JSON
// event stream (or a generated synthetic one) and prints the resulting
// summary.
//
// Usage:
//
//	memsketch replay --config memsketch.yaml [--input events.ndjson] [--format json|msgpack]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/memsketch/cli/config"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	app := &cli.App{
		Name:           "memsketch",
		Usage:          "streaming memory manager replay CLI",
		Version:        fmt.Sprintf("dev (commit: %s)", commit),
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			replayCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}
	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "replay an event stream through a configured MemoryManager",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Required: true, Usage: "path to a memsketch.yaml config"},
			&cli.StringFlag{Name: "input", Usage: "NDJSON event file; omit to use --synthetic"},
			&cli.IntFlag{Name: "synthetic", Usage: "generate N synthetic events instead of reading --input"},
			&cli.StringFlag{Name: "format", Value: "json", Usage: "output format: json or msgpack"},
			&cli.StringFlag{Name: "session-id", Usage: "session id for log context; a UUID is generated if omitted"},
		},
		Action: runReplay,
	}
}

func runReplay(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	sessionID := c.String("session-id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	mgr, err := buildManager(cfg, sessionID)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	events, err := loadEvents(c.String("input"), c.Int("synthetic"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	for _, e := range events {
		mgr.AddEvent(e)
	}

	if err := writeSnapshot(c.App.Writer, mgr.GetData(), c.String("format")); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
