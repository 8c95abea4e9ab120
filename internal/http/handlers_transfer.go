package http

import (
	"bytes"
	"errors"
	"net/http"

	"expenses/internal/log"
)

const exportFilename = "expenses.csv"

// handleImport reads the uploaded "file" part and imports it row by row.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.maxImportBytes)
	if err := r.ParseMultipartForm(s.maxImportBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ErrorResponse(http.StatusRequestEntityTooLarge, "Import file is too large").
				TriggerErrorNotification("Import file is too large").
				Write(w)
			return
		}
		BadRequestError("Upload a file to import").Write(w)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequestError("Upload a file to import").
			TriggerErrorNotification("Choose a file to import").
			Write(w)
		return
	}
	defer file.Close()

	report, err := s.transfer.Import(r.Context(), file)
	if err != nil {
		logger.ErrorContext(r.Context(), "Import failed",
			log.FieldOperation, log.OpImport,
			log.FieldFile, header.Filename,
			log.FieldError, err)
		msg := "Could not read the import file"
		if report != nil && report.Imported() > 0 {
			msg += " (some rows were imported)"
		}
		ErrorResponse(http.StatusUnprocessableEntity, msg).
			TriggerLedgerRefresh().
			TriggerErrorNotification(msg).
			Write(w)
		return
	}
	report.Source = header.Filename

	resp := NewHTMXResponse()
	if report.Empty() {
		resp.TriggerNotification(NotificationWarning, report.Summary(), 5000)
	} else {
		resp.TriggerLedgerRefresh().TriggerSuccessNotification(report.Summary())
	}
	resp.Write(w)
}

// handleExport streams the display snapshot as a download. The body is
// built in memory first so a store error still yields a clean 500.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	settings := s.expenses.Settings()

	var buf bytes.Buffer
	if _, err := s.transfer.Export(r.Context(), &buf, settings.CurrencySymbol); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Export failed",
			log.FieldOperation, log.OpExport,
			log.FieldError, err)
		InternalServerError("Export failed").Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
