package http

import (
	"net/http"

	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/services"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	p, errResp := ParseBodyOrFail(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	in := services.AddExpenseInput{
		Date:        p.Get("date"),
		Description: p.Get("description"),
		Amount:      p.Get("amount"),
	}

	exp, err := s.expenses.AddExpense(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err, "Error saving expense")
		return
	}

	NewHTMXResponse().
		TriggerLedgerRefresh().
		TriggerFormReset().
		TriggerSuccessNotification("Added: " + exp.Description).
		Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := ParseExpenseID(r)
	if err != nil {
		BadRequestError("Invalid expense id").Write(w)
		return
	}

	if err := s.expenses.DeleteExpense(r.Context(), id); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to delete expense",
			log.FieldOperation, log.OpDelete,
			log.FieldExpenseID, id,
			log.FieldError, err)
		InternalServerError("Error deleting expense").
			TriggerErrorNotification("Error deleting expense").
			Write(w)
		return
	}

	NewHTMXResponse().
		TriggerLedgerRefresh().
		TriggerSuccessNotification("Expense deleted").
		Write(w)
}

// writeServiceError maps validation failures to 422 with a message naming
// the field, and everything else to 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if core.IsUserError(err) {
		msg := userMessage(err, s.expenses.Settings())
		UnprocessableEntityError(msg).
			Header("X-Invalid-Field", core.FieldOf(err)).
			TriggerErrorNotification(msg).
			Write(w)
		return
	}

	log.FromContext(r.Context()).ErrorContext(r.Context(), fallback, log.FieldError, err)
	InternalServerError(fallback).
		TriggerErrorNotification(fallback).
		Write(w)
}
