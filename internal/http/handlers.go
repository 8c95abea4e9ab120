package http

import (
	"net/http"

	"expenses/internal/core"
	"expenses/internal/log"
)

type pageData struct {
	Ledger   core.Ledger
	Settings core.Settings
	Today    string
	Formats  []core.DateFormat
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.expenses.Ledger(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to load ledger",
			log.FieldOperation, log.OpList,
			log.FieldError, err)
		InternalServerError("Could not load expenses").Write(w)
		return
	}

	settings := ledger.Settings
	s.render(w, r, "index.html", pageData{
		Ledger:   ledger,
		Settings: settings,
		Today:    core.Today(settings.DateFormat),
		Formats:  core.DateFormats(),
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundError("Page not found").Write(w)
}

// handleLedger renders the ledger partial.
func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.expenses.Ledger(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to load ledger",
			log.FieldOperation, log.OpList,
			log.FieldError, err)
		InternalServerError("Could not load expenses").Write(w)
		return
	}
	s.render(w, r, "ledger.html", ledger)
}
