package model

import "adminviews/internal/tableconfig"

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// TableLoadedMsg carries the result of a background table fetch back to
// Update, which hands it to Deliver for rendering.
type TableLoadedMsg struct {
	Rows    []tableconfig.Row
	Err     error
	Deliver func([]tableconfig.Row, error)
}

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeFilter
)
