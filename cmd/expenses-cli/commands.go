package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"expenses/internal/core"
	"expenses/internal/services"
)

func (a *app) add(ctx context.Context, args []string, stderr io.Writer) error {
	settings := a.svc.Settings()

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	date := fs.String("date", core.Today(settings.DateFormat), "expense date in the active format ("+settings.DateFormat.String()+")")
	if err := fs.Parse(args); err != nil {
		return usageError("usage: add [-date d] <description> <amount>")
	}
	if fs.NArg() != 2 {
		return usageError("usage: add [-date d] <description> <amount>")
	}

	exp, err := a.svc.AddExpense(ctx, services.AddExpenseInput{
		Date:        *date,
		Description: fs.Arg(0),
		Amount:      fs.Arg(1),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added #%d %s %s %s\n",
		exp.ID,
		core.RenderDate(exp.Date, settings.DateFormat),
		exp.Description,
		core.RenderAmount(exp.Amount, settings.CurrencySymbol))
	return nil
}

func (a *app) list(ctx context.Context) error {
	ledger, err := a.svc.Ledger(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDate\tDescription\tAmount\t")
	for _, row := range ledger.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", row.ID, row.Date, row.Description, row.Amount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Total: %s\n", ledger.Total)
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("usage: delete <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return usageError(fmt.Sprintf("invalid id %q", args[0]))
	}
	if err := a.svc.DeleteExpense(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted #%d\n", id)
	return nil
}

func (a *app) total(ctx context.Context) error {
	ledger, err := a.svc.Ledger(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Total: %s\n", ledger.Total)
	return nil
}

func (a *app) importFile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("usage: import <file>")
	}
	report, err := a.engine.ImportFile(ctx, args[0])
	if err != nil {
		return err
	}
	for _, row := range report.Failures() {
		fmt.Fprintf(a.out, "line %d skipped: %v\n", row.Line, row.Err)
	}
	fmt.Fprintln(a.out, report.Summary())
	return nil
}

func (a *app) exportFile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("usage: export <file>")
	}
	n, err := a.engine.ExportFile(ctx, args[0], a.svc.Settings().CurrencySymbol)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d entries to %s\n", n, args[0])
	return nil
}
