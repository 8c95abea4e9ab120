package http

import (
	"errors"
	"fmt"
	"strings"

	"expenses/internal/core"
)

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

var fieldLabels = map[string]string{
	core.FieldDate:        "Date",
	core.FieldDescription: "Description",
	core.FieldAmount:      "Amount",
	core.FieldDateFormat:  "Date format",
}

// userMessage turns a validation error into the text shown in the error
// notification, naming the offending field.
func userMessage(err error, settings core.Settings) string {
	field := core.FieldOf(err)
	switch {
	case errors.Is(err, core.ErrInvalidDate):
		return fmt.Sprintf("Invalid date: use %s.", settings.DateFormat)
	case errors.Is(err, core.ErrInvalidAmount):
		return "Invalid amount: enter a number such as 12.50."
	case errors.Is(err, core.ErrEmptyDescription):
		return "Description is required."
	case errors.Is(err, core.ErrUnknownDateFormat):
		return "Unknown date format."
	}
	if label, ok := fieldLabels[field]; ok {
		return label + " is invalid."
	}
	return "Invalid input."
}
