package core

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// Expense is a stored expense record. Date holds the value exactly as
	// persisted, which is canonical ISO for every record written by this
	// program but may be anything for rows imported verbatim.
	Expense struct {
		ID          int64
		Date        string
		Description string
		Amount      float64
	}

	// FieldError reports which user-facing input was rejected.
	FieldError struct {
		Field string
		Err   error
	}
)

const (
	FieldDate        = "date"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldDateFormat  = "date_format"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrFileAccess    = errors.New("file access error")

	ErrEmptyDescription  = fmt.Errorf("%w: description required", ErrValidation)
	ErrUnknownDateFormat = fmt.Errorf("%w: unknown date format", ErrValidation)
)

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidateDescription rejects blank descriptions.
func ValidateDescription(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// FieldOf returns the offending field name carried by err, or "" if err
// does not identify one.
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

// IsUserError reports whether err stems from user input rather than from
// storage or the file system.
func IsUserError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidAmount)
}
