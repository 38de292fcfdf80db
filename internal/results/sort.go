package results

import (
	"strings"

	"adminviews/internal/binder"
	"adminviews/internal/dom"
	"adminviews/internal/tableconfig"
	"adminviews/internal/validate"
)

// Sort directions.
const (
	Ascending  = "asc"
	Descending = "desc"
)

// SortState is the sort selection of one table.
type SortState struct {
	Key       string
	Direction string
}

// SortFunc is called when the sort selection changes.
type SortFunc func(key, direction string)

// SortManager drives a sort select and a direction toggle for one table.
type SortManager struct {
	table     string
	sel       *dom.Element
	direction *dom.Element
	state     SortState
	onChange  SortFunc
	events    binder.EventBinder
	destroyed bool
}

// NewSortManager fills opts.Select with a placeholder option followed by
// keys and binds the select and the direction toggle. The controls start at
// initial, the sort the table is rendered with; a key that is not one of
// keys selects the placeholder.
func NewSortManager(table string, keys []tableconfig.SortKey, opts SortOptions, initial SortState, onChange SortFunc) (*SortManager, error) {
	err := validate.All(
		validate.Spec{Name: "sortSelect", Value: opts.Select, Kind: validate.Element, Tag: "select"},
		validate.Spec{Name: "sortDirection", Value: opts.Direction, Kind: validate.Element},
		validate.Spec{Name: "onSortChange", Value: onChange, Kind: validate.Func},
	)
	if err != nil {
		return nil, err
	}

	s := &SortManager{
		table:     table,
		sel:       opts.Select,
		direction: opts.Direction,
		state:     normalizeSort(initial, keys),
		onChange:  onChange,
	}

	placeholder := opts.DefaultOption
	if placeholder == "" {
		placeholder = "Sort by"
	}
	options := []dom.Option{{Value: "", Label: placeholder}}
	for _, k := range keys {
		options = append(options, dom.Option{Value: k.Key, Label: k.Label})
	}
	s.sel.SetOptions(options)
	s.sel.Value = s.state.Key
	s.direction.Text = s.state.Direction

	s.events.Bind(s.sel, dom.EventChange, dom.NewListener(s.handleSelect))
	s.events.Bind(s.direction, dom.EventClick, dom.NewListener(s.handleToggle))
	return s, nil
}

func normalizeSort(state SortState, keys []tableconfig.SortKey) SortState {
	out := SortState{Direction: Ascending}
	if strings.EqualFold(state.Direction, Descending) {
		out.Direction = Descending
	}
	for _, k := range keys {
		if k.Key == state.Key {
			out.Key = state.Key
			break
		}
	}
	return out
}

// Table returns the table the manager was built for.
func (s *SortManager) Table() string {
	return s.table
}

// State returns the current sort selection.
func (s *SortManager) State() SortState {
	return s.state
}

// Destroyed reports whether Destroy was called.
func (s *SortManager) Destroyed() bool {
	return s.destroyed
}

func (s *SortManager) handleSelect(*dom.Event) {
	if s.sel.Value == s.state.Key {
		return
	}
	s.state.Key = s.sel.Value
	s.onChange(s.state.Key, s.state.Direction)
}

func (s *SortManager) handleToggle(*dom.Event) {
	if s.state.Direction == Ascending {
		s.state.Direction = Descending
	} else {
		s.state.Direction = Ascending
	}
	s.direction.Text = s.state.Direction
	if s.state.Key != "" {
		s.onChange(s.state.Key, s.state.Direction)
	}
}

// Destroy unbinds the controls and clears the select.
func (s *SortManager) Destroy() {
	if s.destroyed {
		return
	}
	s.events.UnbindAll()
	s.sel.SetOptions(nil)
	s.sel.Value = ""
	s.destroyed = true
}
