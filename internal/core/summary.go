package core

// LedgerRow is one expense rendered for display.
type LedgerRow struct {
	ID          int64
	Date        string
	Description string
	Amount      string
}

// Ledger is the rendered list of all expenses with the running total.
type Ledger struct {
	Settings Settings
	Rows     []LedgerRow
	Total    string
}

// Count returns the number of rows.
func (l Ledger) Count() int {
	return len(l.Rows)
}

// RenderLedger renders expenses and their sum with the given settings.
func RenderLedger(expenses []Expense, total float64, s Settings) Ledger {
	l := Ledger{
		Settings: s,
		Rows:     make([]LedgerRow, 0, len(expenses)),
		Total:    RenderAmount(total, s.CurrencySymbol),
	}
	for _, e := range expenses {
		l.Rows = append(l.Rows, LedgerRow{
			ID:          e.ID,
			Date:        RenderDate(e.Date, s.DateFormat),
			Description: e.Description,
			Amount:      RenderAmount(e.Amount, s.CurrencySymbol),
		})
	}
	return l
}
