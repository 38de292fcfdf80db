package results

import (
	"adminviews/internal/binder"
	"adminviews/internal/dom"
	"adminviews/internal/validate"
)

// FilterFunc is called with the filter query whenever it changes.
type FilterFunc func(query string)

// FilterManager drives a filter input and its clear button.
type FilterManager struct {
	input     *dom.Element
	clear     *dom.Element
	onFilter  FilterFunc
	events    binder.EventBinder
	destroyed bool
}

// NewFilterManager binds the input's input event and the clear button.
func NewFilterManager(opts FilterOptions, onFilter FilterFunc) (*FilterManager, error) {
	err := validate.All(
		validate.Spec{Name: "filterInput", Value: opts.Input, Kind: validate.Element},
		validate.Spec{Name: "filterClear", Value: opts.Clear, Kind: validate.Element},
		validate.Spec{Name: "onFilter", Value: onFilter, Kind: validate.Func},
	)
	if err != nil {
		return nil, err
	}

	f := &FilterManager{input: opts.Input, clear: opts.Clear, onFilter: onFilter}
	f.input.Value = ""
	f.events.Bind(f.input, dom.EventInput, dom.NewListener(func(*dom.Event) {
		f.onFilter(f.input.Value)
	}))
	f.events.Bind(f.clear, dom.EventClick, dom.NewListener(func(*dom.Event) {
		f.input.Value = ""
		f.onFilter("")
	}))
	return f, nil
}

// Query returns the current input value.
func (f *FilterManager) Query() string {
	return f.input.Value
}

// Destroyed reports whether Destroy was called.
func (f *FilterManager) Destroyed() bool {
	return f.destroyed
}

// Destroy unbinds the controls and empties the input.
func (f *FilterManager) Destroy() {
	if f.destroyed {
		return
	}
	f.events.UnbindAll()
	f.input.Value = ""
	f.destroyed = true
}
