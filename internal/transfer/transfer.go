// Package transfer moves expenses between the record store and delimited
// text files.
//
// Import is best effort: every data row is validated and inserted on its
// own, failures are recorded in a Report and never abort the batch or undo
// rows already stored. Export writes a display snapshot (currency-prefixed
// amounts) which is therefore not re-importable; that asymmetry is kept on
// purpose until the file format is settled.
package transfer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/metrics"
)

// Column names of the import header and of the export header line.
const (
	ColumnDate        = "Date"
	ColumnDescription = "Description"
	ColumnAmount      = "Amount"

	currencyLabel = "Currency"
)

var (
	requiredColumns = []string{ColumnDate, ColumnDescription, ColumnAmount}
	utf8BOM         = []byte{0xEF, 0xBB, 0xBF}
)

// Store is the part of the record store the engine needs.
type Store interface {
	Insert(ctx context.Context, date, description string, amount float64) (int64, error)
	ListAll(ctx context.Context) ([]core.Expense, error)
}

// Engine imports and exports expenses. It bypasses the add path and does
// its own per-row validation.
type Engine struct {
	store   Store
	metrics *metrics.Recorder
}

func NewEngine(store Store, rec *metrics.Recorder) *Engine {
	return &Engine{store: store, metrics: rec}
}

// ImportFile imports the file at path. An unreadable path is reported as
// core.ErrFileAccess; a readable file with no valid rows is not an error.
func (e *Engine) ImportFile(ctx context.Context, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrFileAccess, err)
	}
	defer f.Close()

	report, err := e.Import(ctx, f)
	if report != nil {
		report.Source = path
	}
	return report, err
}

// Import reads a header row naming Date, Description and Amount, then one
// expense per row. Extra columns are ignored. The Date value is stored
// verbatim; Amount must parse as a number. A leading "Currency,<symbol>"
// line is skipped, so an exported file is read with its real header and
// each row is then rejected for its currency-prefixed amount.
func (e *Engine) Import(ctx context.Context, r io.Reader) (*Report, error) {
	logger := log.FromContext(ctx).WithComponent(log.ComponentTransfer)
	report := &Report{}

	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == nil && isCurrencyLine(header) {
		// Files produced by Export start with a currency line.
		header, err = cr.Read()
	}
	if errors.Is(err, io.EOF) {
		e.finishImport(ctx, logger, report)
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("read import header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			logger.WarnContext(ctx, "Import header lacks a required column", "column", name, "header", header)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			e.finishImport(ctx, logger, report)
			return report, err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				report.add(pe.StartLine, 0, fmt.Errorf("%w: malformed row: %w", core.ErrValidation, pe.Err))
				continue
			}
			e.finishImport(ctx, logger, report)
			return report, fmt.Errorf("read import row: %w", err)
		}

		line, _ := cr.FieldPos(0)
		id, err := e.importRow(ctx, record, columns)
		if err != nil {
			logger.DebugContext(ctx, "Import row skipped", "line", line, log.FieldError, err)
		}
		report.add(line, id, err)
	}

	e.finishImport(ctx, logger, report)
	return report, nil
}

func isCurrencyLine(record []string) bool {
	return len(record) == 2 && record[0] == currencyLabel
}

func (e *Engine) importRow(ctx context.Context, record []string, columns map[string]int) (int64, error) {
	values := make(map[string]string, len(requiredColumns))
	for _, name := range requiredColumns {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return 0, fmt.Errorf("%w: missing column %s", core.ErrValidation, name)
		}
		values[name] = record[i]
	}

	amount, err := core.ParseUserAmount(values[ColumnAmount])
	if err != nil {
		return 0, &core.FieldError{Field: core.FieldAmount, Err: err}
	}
	if err := core.ValidateDescription(values[ColumnDescription]); err != nil {
		return 0, &core.FieldError{Field: core.FieldDescription, Err: err}
	}

	id, err := e.store.Insert(ctx, values[ColumnDate], values[ColumnDescription], amount)
	if err != nil {
		return 0, fmt.Errorf("store row: %w", err)
	}
	return id, nil
}

func (e *Engine) finishImport(ctx context.Context, logger *log.Logger, report *Report) {
	e.metrics.ImportFinished(report.Imported(), report.Skipped())
	logger.InfoContext(ctx, "Import finished",
		log.FieldOperation, log.OpImport,
		log.FieldImported, report.Imported(),
		log.FieldSkipped, report.Skipped())
}

// ExportFile writes the export to path, replacing any existing file, and
// returns the number of expense rows written.
func (e *Engine) ExportFile(ctx context.Context, path, currencySymbol string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", core.ErrFileAccess, err)
	}

	n, err := e.Export(ctx, f, currencySymbol)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %w", core.ErrFileAccess, cerr)
	}
	return n, err
}

// Export writes a "Currency,<symbol>" line, the Date,Description,Amount
// header and one line per expense ordered by date, amounts rendered with
// the currency symbol.
func (e *Engine) Export(ctx context.Context, w io.Writer, currencySymbol string) (int, error) {
	expenses, err := e.store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load expenses for export: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write([]string{currencyLabel, currencySymbol}); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	if err := cw.Write(requiredColumns); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	for _, exp := range expenses {
		row := []string{exp.Date, exp.Description, core.RenderAmount(exp.Amount, currencySymbol)}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("write export: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("%w: %w", core.ErrFileAccess, err)
	}

	e.metrics.ExportFinished()
	log.FromContext(ctx).WithComponent(log.ComponentTransfer).InfoContext(ctx, "Export finished",
		log.FieldOperation, log.OpExport,
		"rows", len(expenses),
		log.FieldCurrency, currencySymbol)

	return len(expenses), nil
}
