package http

import (
	"net/http"

	"expenses/internal/log"
)

// handleUpdateSettings replaces both preferences. The ledger is re-rendered
// by the client on the ledger:refresh event.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	p, errResp := ParseBodyOrFail(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	next, err := s.expenses.UpdateSettings(p.Get("date_format"), p.Get("currency_symbol"))
	if err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Settings update rejected",
			log.FieldOperation, log.OpUpdate,
			log.FieldError, err)
		s.writeServiceError(w, r, err, "Error saving settings")
		return
	}

	NewHTMXResponse().
		TriggerSettingsChanged(next.DateFormat.String(), next.CurrencySymbol).
		TriggerLedgerRefresh().
		TriggerSuccessNotification("Settings saved").
		Write(w)
}
