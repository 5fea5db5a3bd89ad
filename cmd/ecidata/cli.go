package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/ecidata"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Results ecidata.ResultService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL string        `name:"base-url" env:"ECIDATA_BASE_URL" default:"http://eciresults.nic.in" help:"Results site to fetch pages from"`
	Timeout time.Duration `short:"t" env:"ECIDATA_TIMEOUT" default:"10s" help:"Fetch timeout per page"`
	RPS     float64       `name:"rps" env:"ECIDATA_RPS" default:"1" help:"Requests per second per host (0 disables limiting)"`
	Retries int           `default:"3" help:"Retries for failed fetches, with doubling delays from 1s"`
	Verbose bool          `short:"v" help:"Log every fetch and parse"`
	Archive string        `type:"path" help:"Save every fetched page under this directory"`
	Offline string        `type:"existingdir" help:"Read pages from a saved archive instead of the site"`

	Get     GetCmd     `cmd:"" help:"Show the result of one constituency"`
	Collect CollectCmd `cmd:"" help:"Show results for a range of constituencies in a state"`
	Watch   WatchCmd   `cmd:"" help:"Poll one constituency until its result is declared"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	State        int  `arg:"" help:"State id"`
	Constituency int  `arg:"" help:"Constituency id"`
	JSON         bool `name:"json" help:"Print JSON instead of a table"`
}

// CollectCmd is the "collect" subcommand.
type CollectCmd struct {
	State       int  `arg:"" help:"State id"`
	From        int  `arg:"" help:"First constituency id"`
	To          int  `arg:"" help:"Last constituency id"`
	Concurrency int  `short:"c" default:"3" help:"Concurrent lookups"`
	StopOnError bool `name:"stop-on-error" help:"Abort on the first failed constituency"`
	JSON        bool `name:"json" help:"Print JSON lines instead of text"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	State        int           `arg:"" help:"State id"`
	Constituency int           `arg:"" help:"Constituency id"`
	Interval     time.Duration `short:"i" default:"30s" help:"Polling interval"`
}
