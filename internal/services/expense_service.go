package services

import (
	"context"
	"fmt"
	"strings"

	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/metrics"
)

// ExpenseStore is the part of the record store the service drives.
type ExpenseStore interface {
	Insert(ctx context.Context, date, description string, amount float64) (int64, error)
	ListAll(ctx context.Context) ([]core.Expense, error)
	DeleteByID(ctx context.Context, id int64) error
	SumAmounts(ctx context.Context) (float64, error)
}

// AddExpenseInput is the raw text of the add form.
type AddExpenseInput struct {
	Date        string
	Description string
	Amount      string
}

// ExpenseService is the validated add path plus the rendered ledger for the
// current preferences.
type ExpenseService struct {
	store   ExpenseStore
	prefs   *core.Preferences
	metrics *metrics.Recorder
	logger  *log.Logger
}

func NewExpenseService(store ExpenseStore, prefs *core.Preferences, rec *metrics.Recorder) *ExpenseService {
	s := &ExpenseService{
		store:   store,
		prefs:   prefs,
		metrics: rec,
		logger:  log.FromContext(context.Background()).WithComponent(log.ComponentExpense),
	}
	prefs.Subscribe(func(next core.Settings) {
		s.logger.Info("Preferences changed",
			log.FieldOperation, log.OpUpdate,
			log.FieldDateFormat, next.DateFormat.String(),
			log.FieldCurrency, next.CurrencySymbol)
	})
	return s
}

// WithLogger replaces the service logger.
func (s *ExpenseService) WithLogger(l *log.Logger) *ExpenseService {
	s.logger = l.WithComponent(log.ComponentExpense)
	return s
}

// AddExpense validates the input against the active date format and stores
// it. Fields are checked date first, then amount, then description; the
// first failure is returned as a *core.FieldError and nothing is stored.
func (s *ExpenseService) AddExpense(ctx context.Context, in AddExpenseInput) (core.Expense, error) {
	settings := s.prefs.Settings()

	date, err := core.ParseUserDate(strings.TrimSpace(in.Date), settings.DateFormat)
	if err != nil {
		return core.Expense{}, s.reject(ctx, core.FieldDate, err)
	}
	amount, err := core.ParseUserAmount(in.Amount)
	if err != nil {
		return core.Expense{}, s.reject(ctx, core.FieldAmount, err)
	}
	description := strings.TrimSpace(in.Description)
	if err := core.ValidateDescription(description); err != nil {
		return core.Expense{}, s.reject(ctx, core.FieldDescription, err)
	}

	id, err := s.store.Insert(ctx, date, description, amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}

	s.metrics.ExpenseAdded()
	s.logger.InfoContext(ctx, "Expense added",
		log.NewFields().
			WithOperation(log.OpCreate).
			WithExpense(id, date, description, amount).
			ToSlice()...)

	return core.Expense{ID: id, Date: date, Description: description, Amount: amount}, nil
}

func (s *ExpenseService) reject(ctx context.Context, field string, err error) error {
	s.metrics.AddRejected(field)
	s.logger.DebugContext(ctx, "Expense rejected",
		log.FieldOperation, log.OpValidate,
		log.FieldField, field,
		log.FieldError, err)
	return &core.FieldError{Field: field, Err: err}
}

// DeleteExpense removes the expense with id. Deleting an unknown id is not
// an error.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	s.metrics.ExpenseDeleted()
	s.logger.InfoContext(ctx, "Expense deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldExpenseID, id)
	return nil
}

// Ledger returns every expense rendered with the current preferences,
// ordered by date, together with the rendered total.
func (s *ExpenseService) Ledger(ctx context.Context) (core.Ledger, error) {
	settings := s.prefs.Settings()

	expenses, err := s.store.ListAll(ctx)
	if err != nil {
		return core.Ledger{}, fmt.Errorf("list expenses: %w", err)
	}
	total, err := s.store.SumAmounts(ctx)
	if err != nil {
		return core.Ledger{}, fmt.Errorf("sum expenses: %w", err)
	}
	return core.RenderLedger(expenses, total, settings), nil
}

func (s *ExpenseService) Settings() core.Settings {
	return s.prefs.Settings()
}

// UpdateSettings replaces both preferences. An unknown format id is
// rejected and the previous settings stay active.
func (s *ExpenseService) UpdateSettings(formatID, currencySymbol string) (core.Settings, error) {
	next, err := s.prefs.Update(formatID, currencySymbol)
	if err != nil {
		return next, err
	}
	s.metrics.SettingsUpdated()
	return next, nil
}
