// Package results orchestrates a results view: which table is loaded,
// the live sort and filter controls, and their teardown.
package results

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"adminviews/internal/binder"
	"adminviews/internal/dom"
	"adminviews/internal/tableconfig"
	"adminviews/internal/view"
)

// ErrAbstract is returned by Base methods that an implementation must
// override.
var ErrAbstract = errors.New("abstract class")

// ResultsManager is the lifecycle every results view implements.
type ResultsManager interface {
	Init(ctx context.Context) error
	LoadTable(ctx context.Context, tableName, sortKey, sortDirection string) error
	Destroy()
}

// SortOptions are the elements of the sort control.
type SortOptions struct {
	Select        *dom.Element
	Direction     *dom.Element
	DefaultOption string
}

// FilterOptions are the elements of the filter control.
type FilterOptions struct {
	Input *dom.Element
	Clear *dom.Element
}

// destroyer is a live sort or filter control.
type destroyer interface {
	Destroy()
}

// Base holds the state shared by results managers. It is meant to be
// embedded; Init and LoadTable fail until the embedding type overrides them.
type Base struct {
	tableConfig   tableconfig.Tables
	viewManager   *view.Manager
	sortEnabled   bool
	sortOpts      SortOptions
	filterEnabled bool
	filterOpts    FilterOptions
	liveSort      destroyer
	liveFilter    destroyer
	events        *binder.EventBinder
	log           *slog.Logger
}

func newBase(tables tableconfig.Tables, vm *view.Manager, sorting bool, sortOpts SortOptions, filtering bool, filterOpts FilterOptions, logger *slog.Logger) Base {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Base{
		tableConfig:   tables,
		viewManager:   vm,
		sortEnabled:   sorting,
		sortOpts:      sortOpts,
		filterEnabled: filtering,
		filterOpts:    filterOpts,
		events:        binder.New(),
		log:           logger,
	}
}

// Init must be overridden.
func (b *Base) Init(context.Context) error {
	return fmt.Errorf("%w: Init must be overridden", ErrAbstract)
}

// LoadTable must be overridden.
func (b *Base) LoadTable(context.Context, string, string, string) error {
	return fmt.Errorf("%w: LoadTable must be overridden", ErrAbstract)
}

// Destroy tears down the live sort control, then the live filter control,
// then every event binding. Controls go first so their teardown can still
// use the binder.
func (b *Base) Destroy() {
	b.destroySort()
	b.destroyFilter()
	if b.events != nil {
		b.events.UnbindAll()
	}
}

func (b *Base) tables() tableconfig.Tables       { return b.tableConfig }
func (b *Base) viewer() *view.Manager            { return b.viewManager }
func (b *Base) sortingEnabled() bool             { return b.sortEnabled }
func (b *Base) sortOptions() SortOptions         { return b.sortOpts }
func (b *Base) filteringEnabled() bool           { return b.filterEnabled }
func (b *Base) filterOptions() FilterOptions     { return b.filterOpts }
func (b *Base) eventBinder() *binder.EventBinder { return b.events }
func (b *Base) logger() *slog.Logger             { return b.log }

func (b *Base) destroySort() {
	if b.liveSort != nil {
		b.liveSort.Destroy()
		b.liveSort = nil
	}
}

func (b *Base) destroyFilter() {
	if b.liveFilter != nil {
		b.liveFilter.Destroy()
		b.liveFilter = nil
	}
}
