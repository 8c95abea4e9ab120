package transfer

import "fmt"

// RowResult is the outcome of one data row of an import. Line is the
// 1-based physical line in the source file.
type RowResult struct {
	Line int
	ID   int64
	Err  error
}

func (r RowResult) OK() bool {
	return r.Err == nil
}

// Report collects the per-row outcomes of one import.
type Report struct {
	Source string
	Rows   []RowResult
}

// Imported returns the number of rows stored.
func (r *Report) Imported() int {
	n := 0
	for _, row := range r.Rows {
		if row.OK() {
			n++
		}
	}
	return n
}

// Skipped returns the number of rows rejected.
func (r *Report) Skipped() int {
	return len(r.Rows) - r.Imported()
}

// Empty reports whether nothing was imported ("no valid entries").
func (r *Report) Empty() bool {
	return r.Imported() == 0
}

// Failures returns the rejected rows in file order.
func (r *Report) Failures() []RowResult {
	var out []RowResult
	for _, row := range r.Rows {
		if !row.OK() {
			out = append(out, row)
		}
	}
	return out
}

// Summary is the one-line message shown to the user.
func (r *Report) Summary() string {
	if r.Empty() {
		return "No valid entries found."
	}
	if s := r.Skipped(); s > 0 {
		return fmt.Sprintf("Imported %d entries (%d skipped).", r.Imported(), s)
	}
	return fmt.Sprintf("Imported %d entries.", r.Imported())
}

func (r *Report) add(line int, id int64, err error) {
	r.Rows = append(r.Rows, RowResult{Line: line, ID: id, Err: err})
}
