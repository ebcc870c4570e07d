package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColumn  = errors.New("missing column")
	ErrMalformedDate  = errors.New("malformed date")
	ErrInvalidNumeric = errors.New("invalid numeric value")
)

// ErrorPolicy tells the normalizer what to do with a row that fails to parse.
type ErrorPolicy string

const (
	// ErrorPolicyAbort stops at the first bad row and returns its error.
	ErrorPolicyAbort ErrorPolicy = "abort"
	// ErrorPolicySkip drops bad rows and reports them alongside the result.
	ErrorPolicySkip ErrorPolicy = "skip"
)

// ParseErrorPolicy maps a user supplied value to an ErrorPolicy.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ErrorPolicyAbort, ErrorPolicySkip:
		return p, nil
	case "":
		return ErrorPolicyAbort, nil
	default:
		return "", fmt.Errorf("unknown error policy %q: must be %q or %q", s, ErrorPolicyAbort, ErrorPolicySkip)
	}
}

// MissingColumnError is returned when a required column is absent from the
// source header, or a required field of a row is blank.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// MalformedDateError is returned when sale_date cannot be parsed.
type MalformedDateError struct {
	Value string
	Err   error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("could not parse sale date %q", e.Value)
}

func (e *MalformedDateError) Unwrap() []error { return []error{ErrMalformedDate, e.Err} }

// InvalidNumericError is returned when a numeric field is not a number or
// is outside its allowed range.
type InvalidNumericError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidNumericError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidNumericError) Unwrap() error { return ErrInvalidNumeric }

// RowError attaches source row context to a normalization failure.
type RowError struct {
	Row           int
	TransactionID string
	Err           error
}

func (e *RowError) Error() string {
	if e.TransactionID == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d (transaction %s): %v", e.Row, e.TransactionID, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Rejected converts the error into its report representation.
func (e *RowError) Rejected() RejectedRow {
	return RejectedRow{
		Row:           e.Row,
		TransactionID: e.TransactionID,
		Reason:        e.Err.Error(),
	}
}
