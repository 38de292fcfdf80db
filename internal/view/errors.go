package view

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTable is returned for table names missing from the configuration.
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnsupportedAction is returned when an action type cannot be rendered.
	ErrUnsupportedAction = errors.New("unsupported action type")
	// ErrSuperseded is returned by a LoadTable call whose result was dropped
	// because a load started after it has already rendered.
	ErrSuperseded = errors.New("load superseded by a newer request")
)

// FetchError wraps a data source failure with the table being loaded.
type FetchError struct {
	Table string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load table %q: %v", e.Table, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
