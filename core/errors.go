/*
errors.go - Centralized error types for the overtime engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Calculation packages return these; the API maps them to status codes.

ERROR CATEGORIES:
  1. Input errors - Malformed "HH:MM", dates, month keys, settings
  2. Soft errors - A holiday table was approximated from another year
  3. Store errors - Missing records, date uniqueness violations

USAGE:
  Callers test with errors.Is / errors.As:

    if errors.Is(err, core.ErrInvalidTimeFormat) {
        // reject the form field
    }

    var approx *core.UnsupportedYearError
    if errors.As(err, &approx) {
        // holidays are an approximation, result is still usable
    }

SEE ALSO:
  - worktime/timecalc.go: Produces TimeFormatError
  - holiday/calendar.go: Produces UnsupportedYearError
  - worktime/book.go: Produces DuplicateDateError
*/
package core

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTimeFormat is returned for anything that is not a strict
	// "HH:MM" with hour 0-23 and minute 0-59.
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidDate is returned for a malformed calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidMonthKey is returned for a malformed "YYYY-MM" key.
	ErrInvalidMonthKey = errors.New("invalid month key")

	// ErrUnsupportedYear is a soft failure: no fixed holiday table exists
	// for the year and another year's table was used instead.
	ErrUnsupportedYear = errors.New("no holiday table for year")

	// ErrRecordNotFound is returned when a referenced record doesn't exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateDate is returned when a new record targets a date that
	// already has one and overwriting was not requested.
	ErrDuplicateDate = errors.New("record already exists for date")

	// ErrInvalidSettings is returned when settings fail validation.
	ErrInvalidSettings = errors.New("invalid settings")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// TimeFormatError provides details about a rejected time-of-day string.
type TimeFormatError struct {
	Input  string
	Reason string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("invalid time format %q: %s", e.Input, e.Reason)
}

func (e *TimeFormatError) Unwrap() error {
	return ErrInvalidTimeFormat
}

// DateError provides details about a rejected date string.
type DateError struct {
	Input string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q (use YYYY-MM-DD)", e.Input)
}

func (e *DateError) Unwrap() error {
	return ErrInvalidDate
}

// UnsupportedYearError reports which table stood in for a missing year.
type UnsupportedYearError struct {
	Year         int
	FallbackYear int
}

func (e *UnsupportedYearError) Error() string {
	return fmt.Sprintf("no holiday table for %d, approximated from %d", e.Year, e.FallbackYear)
}

func (e *UnsupportedYearError) Unwrap() error {
	return ErrUnsupportedYear
}

// DuplicateDateError provides details about a date uniqueness violation.
type DuplicateDateError struct {
	Date       Date
	ExistingID string
}

func (e *DuplicateDateError) Error() string {
	return fmt.Sprintf("record already exists for %s (id: %s)", e.Date, e.ExistingID)
}

func (e *DuplicateDateError) Unwrap() error {
	return ErrDuplicateDate
}

// SettingsError names the offending settings field.
type SettingsError struct {
	Field   string
	Message string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("invalid settings: %s - %s", e.Field, e.Message)
}

func (e *SettingsError) Unwrap() error {
	return ErrInvalidSettings
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTimeFormat) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidMonthKey) ||
		errors.Is(err, ErrInvalidSettings)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

// IsConflict returns true if the error is a uniqueness violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateDate)
}

// IsApproximation returns true for soft failures whose result is still usable.
func IsApproximation(err error) bool {
	return errors.Is(err, ErrUnsupportedYear)
}
