// Command expenses-cli records and reports expenses from the terminal,
// sharing the record store and preferences model of the web UI.
//
// Usage:
//
//	expenses-cli [-db path] [-format id] [-currency sym] <command> [args]
//
// Commands:
//
//	add [-date d] <description> <amount>
//	list
//	delete <id>
//	total
//	import <file>
//	export <file>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"expenses/internal/cli"
	"expenses/internal/config"
	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/services"
	"expenses/internal/transfer"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	cli.LoadEnvFile()

	ctx, stop := cli.SignalContext(context.Background())
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app bundles what every command needs.
type app struct {
	svc    *services.ExpenseService
	engine *transfer.Engine
	out    io.Writer
	logger *log.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "warn"
	}

	fs := flag.NewFlagSet("expenses-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.SQLiteDBPath, "db", cfg.SQLiteDBPath, "path of the SQLite record store")
	format := fs.String("format", cfg.DateFormat, "date format: YYYY-MM-DD, MM/DD/YYYY or DD.MM.YYYY")
	currency := fs.String("currency", cfg.CurrencySymbol, "currency symbol used for display and export")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: expenses-cli [flags] add|list|delete|total|import|export [args]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	prefs, err := core.NewPreferences(core.DefaultSettings())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	// Flags go through the same update path as the web UI.
	settings, err := prefs.Update(*format, *currency)
	if err != nil {
		fmt.Fprintf(stderr, "invalid -format %q: must be one of %v\n", *format, core.DateFormats())
		return exitUsage
	}
	cfg.DateFormat, cfg.CurrencySymbol = settings.DateFormat.String(), settings.CurrencySymbol

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	logger := cli.SetupLogger(cfg, stderr).WithComponent(log.ComponentCLI)

	repo, err := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	defer repo.Close()

	a := &app{
		svc:    services.NewExpenseService(repo, prefs, nil).WithLogger(logger),
		engine: transfer.NewEngine(repo, nil),
		out:    stdout,
		logger: logger,
	}

	ctx = log.NewContext(ctx, logger)
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	if err := a.dispatch(ctx, cmd, rest, stderr); err != nil {
		var usage usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stderr, usage.Error())
			return exitUsage
		}
		fmt.Fprintln(stderr, describe(err, prefs.Settings()))
		return exitError
	}
	return exitOK
}

type usageError string

func (e usageError) Error() string { return string(e) }

func (a *app) dispatch(ctx context.Context, cmd string, args []string, stderr io.Writer) error {
	switch cmd {
	case "add":
		return a.add(ctx, args, stderr)
	case "list":
		return a.list(ctx)
	case "delete":
		return a.remove(ctx, args)
	case "total":
		return a.total(ctx)
	case "import":
		return a.importFile(ctx, args)
	case "export":
		return a.exportFile(ctx, args)
	default:
		return usageError(fmt.Sprintf("unknown command %q", cmd))
	}
}

// describe renders err for the terminal, naming the offending field for
// validation failures.
func describe(err error, s core.Settings) string {
	switch {
	case errors.Is(err, core.ErrInvalidDate):
		return fmt.Sprintf("invalid date: use %s", s.DateFormat)
	case errors.Is(err, core.ErrInvalidAmount):
		return "invalid amount: enter a number such as 12.50"
	case errors.Is(err, core.ErrEmptyDescription):
		return "description is required"
	case errors.Is(err, core.ErrFileAccess):
		return "file error: " + err.Error()
	}
	return "error: " + err.Error()
}
