package till

import (
	"fmt"
)

// Kind classifies planner and input failures
type Kind string

const (
	KindInvalidAmount       Kind = "InvalidAmount"
	KindInsufficientReserve Kind = "InsufficientReserve"
	KindExceedsAvailable    Kind = "ExceedsAvailable"
	KindInfeasibleChange    Kind = "InfeasibleChange"
	KindInvalidInput        Kind = "InvalidInput"
)

// Error is returned by every failing core operation. Only the payload fields
// relevant to Kind are set; all amounts are in cents.
type Error struct {
	Kind         Kind
	Field        string // InvalidInput
	Requested    int64  // ExceedsAvailable
	MaxAvailable int64  // ExceedsAvailable
	DrawerTotal  int64  // InsufficientReserve
	Reserve      int64  // InsufficientReserve
	Unmet        int64  // InfeasibleChange
	Err          error  // underlying parse error, if any
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrInvalidAmount       = &Error{Kind: KindInvalidAmount}
	ErrInsufficientReserve = &Error{Kind: KindInsufficientReserve}
	ErrExceedsAvailable    = &Error{Kind: KindExceedsAvailable}
	ErrInfeasibleChange    = &Error{Kind: KindInfeasibleChange}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidAmount:
		return "Please enter a valid sales amount."
	case KindInsufficientReserve:
		return fmt.Sprintf("Error: Drawer total is less than required minimum of %s.", FormatMinor(e.Reserve))
	case KindExceedsAvailable:
		return fmt.Sprintf("Error: Cannot withdraw %s. Maximum available: %s", FormatMinor(e.Requested), FormatMinor(e.MaxAvailable))
	case KindInfeasibleChange:
		return fmt.Sprintf("Cannot make exact change. Missing %s in appropriate denominations.", FormatMinor(e.Unmet))
	case KindInvalidInput:
		if e.Field == "drawerNumber" {
			return "Please enter a drawer number."
		}
		if e.Err != nil {
			return fmt.Sprintf("invalid value for %s: %v", e.Field, e.Err)
		}
		return fmt.Sprintf("invalid value for %s", e.Field)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidInput(field string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Err: err}
}

// MissingDrawerNumber is returned when a record is saved without a drawer identifier
func MissingDrawerNumber() error {
	return invalidInput("drawerNumber", nil)
}
