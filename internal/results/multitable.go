package results

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"adminviews/internal/dom"
	"adminviews/internal/pagestate"
	"adminviews/internal/tableconfig"
	"adminviews/internal/validate"
	"adminviews/internal/view"
)

// MultiTableOptions configures a MultiTable.
type MultiTableOptions struct {
	View        *view.Manager
	PageState   *pagestate.Manager
	Window      *dom.Window
	TableSelect *dom.Element
	Tables      tableconfig.Tables
	// Order is the option order of TableSelect; defaults to Tables.Names().
	Order []string

	SaveTableInSession bool
	UpdateURL          bool

	SortingEnabled bool
	Sort           SortOptions

	FilteringEnabled bool
	Filter           FilterOptions

	// OnError receives failures of loads triggered by DOM events.
	OnError func(error)
	Logger  *slog.Logger
}

// MultiTable is a results view that switches between several named tables
// through a select element.
type MultiTable struct {
	Base

	pageState   *pagestate.Manager
	window      *dom.Window
	tableSelect *dom.Element
	order       []string
	saveSession bool
	updateURL   bool
	onError     func(error)

	// ctx is kept for loads started by DOM events, whose listeners take no context.
	ctx context.Context
}

var _ ResultsManager = (*MultiTable)(nil)

// NewMultiTable validates opts and creates a MultiTable. Call Init to
// render the initial table and start listening.
func NewMultiTable(opts MultiTableOptions) (*MultiTable, error) {
	specs := []validate.Spec{
		{Name: "viewManager", Value: opts.View, Kind: validate.Instance, Instance: validate.TypeOf[*view.Manager]()},
		{Name: "pageStateManager", Value: opts.PageState, Kind: validate.Instance, Instance: validate.TypeOf[*pagestate.Manager]()},
		{Name: "window", Value: opts.Window, Kind: validate.Instance, Instance: validate.TypeOf[*dom.Window]()},
		{Name: "tableSelect", Value: opts.TableSelect, Kind: validate.Element, Tag: "select"},
		{Name: "tableConfig", Value: opts.Tables, Kind: validate.Map},
	}
	if opts.SortingEnabled {
		specs = append(specs,
			validate.Spec{Name: "sortSelect", Value: opts.Sort.Select, Kind: validate.Element, Tag: "select"},
			validate.Spec{Name: "sortDirection", Value: opts.Sort.Direction, Kind: validate.Element},
		)
	}
	if opts.FilteringEnabled {
		specs = append(specs,
			validate.Spec{Name: "filterInput", Value: opts.Filter.Input, Kind: validate.Element},
			validate.Spec{Name: "filterClear", Value: opts.Filter.Clear, Kind: validate.Element},
		)
	}
	if err := validate.All(specs...); err != nil {
		return nil, err
	}

	order := opts.Order
	if len(order) == 0 {
		order = opts.Tables.Names()
	}
	for _, name := range order {
		if !opts.Tables.Has(name) {
			return nil, fmt.Errorf("%w: %q", view.ErrUnknownTable, name)
		}
	}

	m := &MultiTable{
		Base:        newBase(opts.Tables, opts.View, opts.SortingEnabled, opts.Sort, opts.FilteringEnabled, opts.Filter, opts.Logger),
		pageState:   opts.PageState,
		window:      opts.Window,
		tableSelect: opts.TableSelect,
		order:       order,
		saveSession: opts.SaveTableInSession,
		updateURL:   opts.UpdateURL,
		onError:     opts.OnError,
		ctx:         context.Background(),
	}
	if m.onError == nil {
		m.onError = func(err error) {
			m.logger().Error("table load failed", "error", err)
		}
	}
	return m, nil
}

// Init loads the initial table and binds the table select and popstate.
// ctx is also used for loads triggered by later events. The initial load
// runs inline; event-driven loads go through the view manager's runner.
func (m *MultiTable) Init(ctx context.Context) error {
	m.ctx = ctx

	if len(m.tableSelect.Options()) == 0 {
		options := make([]dom.Option, 0, len(m.order))
		for _, name := range m.order {
			options = append(options, dom.Option{Value: name, Label: name})
		}
		m.tableSelect.SetOptions(options)
	}

	initial, err := m.pageState.GetInitialTable()
	if err != nil {
		return err
	}
	m.tableSelect.Value = initial
	if err := m.LoadTable(ctx, initial, "", ""); err != nil {
		return err
	}

	events := m.eventBinder()
	events.Bind(m.tableSelect, dom.EventChange, dom.NewListener(m.handleSelectChange))
	events.Bind(m.window, dom.EventPopState, dom.NewListener(m.handlePopState))
	m.logger().Info("results view ready", "table", initial)
	return nil
}

// LoadTable persists tableName as requested by the options, renders it and
// rebuilds the sort and filter controls for it. It returns once the table
// is rendered.
func (m *MultiTable) LoadTable(ctx context.Context, tableName, sortKey, sortDirection string) error {
	return m.loadTable(ctx, tableName, sortKey, sortDirection, m.updateURL)
}

func (m *MultiTable) loadTable(ctx context.Context, tableName, sortKey, sortDirection string, pushURL bool) error {
	if err := m.prepareLoad(tableName, pushURL); err != nil {
		return err
	}
	err := m.viewer().LoadTable(ctx, tableName, sortKey, sortDirection)
	return m.applyLoad(tableName, sortKey, sortDirection, err)
}

// loadTableAsync is loadTable for event handlers: the fetch goes through
// the view manager's runner and failures go to onError.
func (m *MultiTable) loadTableAsync(tableName string, pushURL bool) {
	if err := m.prepareLoad(tableName, pushURL); err != nil {
		m.onError(err)
		return
	}
	m.viewer().LoadTableAsync(m.ctx, tableName, "", "", func(err error) {
		if err := m.applyLoad(tableName, "", "", err); err != nil {
			m.onError(err)
		}
	})
}

func (m *MultiTable) prepareLoad(tableName string, pushURL bool) error {
	if !m.tables().Has(tableName) {
		return fmt.Errorf("%w: %q", view.ErrUnknownTable, tableName)
	}
	if m.saveSession {
		if err := m.pageState.SaveTableInSessionStorage(tableName); err != nil {
			return err
		}
	}
	if pushURL {
		m.pageState.UpdateURL(tableName)
	}
	return nil
}

// applyLoad rebuilds the controls after the view rendered tableName.
func (m *MultiTable) applyLoad(tableName, sortKey, sortDirection string, loadErr error) error {
	if errors.Is(loadErr, view.ErrSuperseded) {
		// a later load already rendered and built its controls
		return nil
	}
	if loadErr != nil {
		return loadErr
	}

	vm := m.viewer()
	if m.sortingEnabled() {
		m.destroySort()
		initial := SortState{Key: sortKey, Direction: sortDirection}
		sm, err := NewSortManager(tableName, m.tables()[tableName].SortKeys, m.sortOptions(), initial, func(key, direction string) {
			// sort changes only re-render; session and URL stay as they are
			vm.LoadTableAsync(m.ctx, tableName, key, direction, func(err error) {
				if err != nil && !errors.Is(err, view.ErrSuperseded) {
					m.onError(err)
				}
			})
		})
		if err != nil {
			return err
		}
		m.liveSort = sm
	}

	if m.filteringEnabled() {
		m.destroyFilter()
		fm, err := NewFilterManager(m.filterOptions(), func(query string) {
			if err := vm.SetFilter(query); err != nil {
				m.onError(err)
			}
		})
		if err != nil {
			return err
		}
		m.liveFilter = fm
		// the new control starts empty; keep the rendering in step with it
		if vm.Filter() != "" {
			if err := vm.SetFilter(""); err != nil {
				return err
			}
		}
	}

	m.logger().Debug("table loaded", "table", tableName, "sort", sortKey, "direction", sortDirection)
	return nil
}

// SortManager returns the live sort control, or nil.
func (m *MultiTable) SortManager() *SortManager {
	sm, _ := m.liveSort.(*SortManager)
	return sm
}

// FilterManager returns the live filter control, or nil.
func (m *MultiTable) FilterManager() *FilterManager {
	fm, _ := m.liveFilter.(*FilterManager)
	return fm
}

// CurrentTable returns the rendered table.
func (m *MultiTable) CurrentTable() string {
	return m.viewer().CurrentTable()
}

// Order returns the table select order.
func (m *MultiTable) Order() []string {
	return append([]string(nil), m.order...)
}

func (m *MultiTable) handleSelectChange(*dom.Event) {
	m.loadTableAsync(m.tableSelect.Value, m.updateURL)
}

func (m *MultiTable) handlePopState(*dom.Event) {
	table := m.pageState.GetCurrentTableFromURL()
	m.tableSelect.Value = table
	m.loadTableAsync(table, false)
}
