package service

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned when a mutation arrives while a previous submission
	// or refresh still owns the portfolio. Callers retry once the controller
	// is back in idle, editing or error.
	ErrBusy = errors.New("a submission or refresh is already in flight")

	// ErrDivisionUndefined is returned by Deviate when the baseline is zero.
	ErrDivisionUndefined = errors.New("deviation baseline is zero")
)

// FetchError marks a transport-level failure talking to a collaborator.
type FetchError struct {
	Target string
	Err    error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.Target, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// MalformedResponseError marks a response whose shape could not be decoded.
type MalformedResponseError struct {
	Target string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Target, e.Err)
}
func (e *MalformedResponseError) Unwrap() error { return e.Err }

// MutationRejectedError marks a create, update or delete the store refused.
// The pending submission is aborted and the edit session left intact.
type MutationRejectedError struct {
	Op     string
	Symbol string
	Err    error
}

func (e *MutationRejectedError) Error() string {
	return fmt.Sprintf("%s %s rejected: %v", e.Op, e.Symbol, e.Err)
}
func (e *MutationRejectedError) Unwrap() error { return e.Err }
