package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ecidata"
	"github.com/fwojciec/ecidata/collect"
	"github.com/fwojciec/ecidata/etree"
	"github.com/fwojciec/ecidata/fs"
	ecihttp "github.com/fwojciec/ecidata/http"
	ecislog "github.com/fwojciec/ecidata/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher retrieves result pages. When nil, Run uses an HTTP fetcher
	// configured from the command line, or a saved archive with --offline.
	Fetcher ecidata.PageFetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ecidata"),
		kong.Description("Fetch constituency-wise election results"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ecidata --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	fetcher := m.Fetcher
	switch {
	case fetcher != nil:
	case cli.Offline != "":
		fetcher = fs.NewFetcher(cli.Offline)
	default:
		fetcher = ecihttp.NewFetcher(
			ecihttp.WithBaseURL(cli.BaseURL),
			ecihttp.WithTimeout(cli.Timeout),
			ecihttp.WithLimiter(collect.NewDomainLimiter(cli.RPS)),
		)
	}

	var store ecidata.PageStore
	if cli.Archive != "" {
		dir := filepath.Clean(cli.Archive)
		store = fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir))
		fetcher = fs.NewArchivingFetcher(fetcher, store)
	}
	defer fetcher.Close()

	retryLog := func(format string, args ...any) {
		logger.Warn(fmt.Sprintf(format, args...))
	}
	var pages ecidata.PageFetcher = ecislog.NewLoggingFetcher(fetcher, logger)
	pages = collect.NewRetryFetcher(pages, collect.RetryDelays(cli.Retries), retryLog)

	extractor := ecislog.NewLoggingExtractor(etree.NewExtractor(), logger)
	deps.Results = ecislog.NewLoggingResultService(collect.NewService(pages, extractor), logger)

	if err := kongCtx.Run(deps); err != nil {
		if store != nil {
			_ = store.Abort()
		}
		return err
	}
	if store != nil {
		if err := store.Commit(); err != nil {
			return fmt.Errorf("saving archive: %w", err)
		}
	}
	return nil
}
