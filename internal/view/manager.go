// Package view renders a configured table's header and rows into a Surface.
package view

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"adminviews/internal/dom"
	"adminviews/internal/tableconfig"
	"adminviews/internal/validate"
)

// FetchFunc returns the rows of tableName ordered by sortKey in
// sortDirection ("asc", "desc" or "" for the source's default order).
type FetchFunc func(ctx context.Context, tableName, sortKey, sortDirection string) ([]tableconfig.Row, error)

// Runner runs fetch and hands its result to deliver. deliver renders, so it
// must be called on the goroutine that owns the surface.
type Runner func(fetch func() ([]tableconfig.Row, error), deliver func([]tableconfig.Row, error))

func runInline(fetch func() ([]tableconfig.Row, error), deliver func([]tableconfig.Row, error)) {
	deliver(fetch())
}

// Option configures a Manager.
type Option func(*Manager)

// WithNumberedHeader renders a leading header cell with text (default "#").
func WithNumberedHeader(text string) Option {
	return func(m *Manager) {
		m.numberedHeader = true
		if text != "" {
			m.numberedHeaderText = text
		}
	}
}

// WithRowNumbers renders a 1-based row number cell at the start of each row.
func WithRowNumbers() Option {
	return func(m *Manager) { m.rowNumbers = true }
}

// WithRunner sets how LoadTableAsync runs fetches. The default runs them
// inline.
func WithRunner(run Runner) Option {
	return func(m *Manager) {
		if run != nil {
			m.run = run
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager renders one table at a time. The rendered subtree is rebuilt
// from scratch on every load.
type Manager struct {
	surface Surface
	tables  tableconfig.Tables
	fetch   FetchFunc
	run     Runner
	logger  *slog.Logger

	numberedHeader     bool
	numberedHeaderText string
	rowNumbers         bool

	mu            sync.Mutex
	generation    uint64 // last load started
	renderedGen   uint64 // load the surface currently shows
	inFlight      int
	currentTable  string
	sortKey       string
	sortDirection string
	filter        string
	fetched       []tableconfig.Row
	rendered      []tableconfig.Row
}

// New creates a Manager rendering into surface.
func New(surface Surface, tables tableconfig.Tables, fetch FetchFunc, opts ...Option) (*Manager, error) {
	err := validate.All(
		validate.Spec{Name: "surface", Value: surface, Kind: validate.Instance, Instance: validate.TypeOf[Surface]()},
		validate.Spec{Name: "tables", Value: tables, Kind: validate.Map},
		validate.Spec{Name: "fetchTableData", Value: fetch, Kind: validate.Func},
	)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		surface:            surface,
		tables:             tables,
		fetch:              fetch,
		run:                runInline,
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		numberedHeaderText: "#",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// CurrentTable returns the name of the rendered table, or "" before the
// first successful load.
func (m *Manager) CurrentTable() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTable
}

// Sort returns the sort key and direction of the rendered data.
func (m *Manager) Sort() (key, direction string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortKey, m.sortDirection
}

// Filter returns the active filter query.
func (m *Manager) Filter() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter
}

// Rows returns the rows currently rendered, in render order.
func (m *Manager) Rows() []tableconfig.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]tableconfig.Row(nil), m.rendered...)
}

// Surface returns the surface the manager renders into.
func (m *Manager) Surface() Surface {
	return m.surface
}

// Loading reports whether a started load has not finished yet.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight > 0
}

// LoadTable fetches tableName and renders it. When it returns nil the
// surface holds exactly the returned rows. Switching to a different table
// clears the filter; reloading the current table keeps it.
//
// A load whose result arrives after a later-started load has rendered is
// dropped with ErrSuperseded. A failed load does not block older loads
// still in flight.
func (m *Manager) LoadTable(ctx context.Context, tableName, sortKey, sortDirection string) error {
	cfg, gen, err := m.begin(tableName)
	if err != nil {
		return err
	}
	rows, err := m.fetch(ctx, tableName, sortKey, sortDirection)
	return m.finish(cfg, gen, tableName, sortKey, sortDirection, rows, err)
}

// LoadTableAsync is LoadTable with the fetch handed to the manager's
// Runner. done receives what LoadTable would have returned, once the
// result has been delivered.
func (m *Manager) LoadTableAsync(ctx context.Context, tableName, sortKey, sortDirection string, done func(error)) {
	if done == nil {
		done = func(error) {}
	}
	cfg, gen, err := m.begin(tableName)
	if err != nil {
		done(err)
		return
	}
	m.run(func() ([]tableconfig.Row, error) {
		return m.fetch(ctx, tableName, sortKey, sortDirection)
	}, func(rows []tableconfig.Row, fetchErr error) {
		done(m.finish(cfg, gen, tableName, sortKey, sortDirection, rows, fetchErr))
	})
}

func (m *Manager) begin(tableName string) (*tableconfig.TableConfig, uint64, error) {
	cfg, ok := m.tables[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownTable, tableName)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	m.inFlight++
	return cfg, m.generation, nil
}

func (m *Manager) finish(cfg *tableconfig.TableConfig, gen uint64, tableName, sortKey, sortDirection string, rows []tableconfig.Row, fetchErr error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--

	if gen < m.renderedGen {
		m.logger.Debug("dropping superseded table load", "table", tableName, "generation", gen, "rendered", m.renderedGen)
		return fmt.Errorf("table %q: %w", tableName, ErrSuperseded)
	}
	if fetchErr != nil {
		return &FetchError{Table: tableName, Err: fetchErr}
	}

	filter := m.filter
	if tableName != m.currentTable {
		filter = ""
	}
	if err := m.render(cfg, tableName, rows, filter); err != nil {
		return err
	}

	m.renderedGen = gen
	m.currentTable = tableName
	m.sortKey = sortKey
	m.sortDirection = sortDirection
	m.filter = filter
	m.fetched = rows
	m.logger.Debug("rendered table", "table", tableName, "sort", sortKey, "direction", sortDirection, "rows", len(m.rendered))
	return nil
}

// SetFilter re-renders the fetched rows of the current table, keeping only
// rows where a column's text contains query, ignoring case. It does not
// fetch again.
func (m *Manager) SetFilter(query string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentTable == "" {
		m.filter = query
		return nil
	}
	cfg, ok := m.tables[m.currentTable]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, m.currentTable)
	}
	if err := m.render(cfg, m.currentTable, m.fetched, query); err != nil {
		return err
	}
	m.filter = query
	return nil
}

// render builds the whole subtree before touching the surface so a
// configuration error leaves the previous rendering in place.
func (m *Manager) render(cfg *tableconfig.TableConfig, tableName string, rows []tableconfig.Row, filter string) error {
	visible := filterRows(cfg, rows, filter)

	header := m.buildHeader(cfg)
	elements := make([]*dom.Element, 0, len(visible))
	for i, row := range visible {
		el, err := m.buildRow(cfg, tableName, i+1, row)
		if err != nil {
			return err
		}
		elements = append(elements, el)
	}

	m.surface.Clear()
	m.surface.AppendHeader(header)
	for _, el := range elements {
		m.surface.AppendRow(el)
	}
	m.rendered = visible
	return nil
}

func (m *Manager) buildHeader(cfg *tableconfig.TableConfig) *dom.Element {
	header := dom.NewElement("tr")
	header.ClassName = cfg.HeaderClassName
	if m.numberedHeader {
		cell := dom.NewElement("th")
		cell.Text = m.numberedHeaderText
		cell.ClassName = cfg.RowNumberClassName
		header.AppendChild(cell)
	}
	for _, col := range cfg.Columns {
		cell := dom.NewElement("th")
		cell.Text = col.Label
		cell.ClassName = col.ClassName
		header.AppendChild(cell)
	}
	return header
}

func (m *Manager) buildRow(cfg *tableconfig.TableConfig, tableName string, number int, row tableconfig.Row) (*dom.Element, error) {
	el := dom.NewElement("tr")
	el.ClassName = cfg.EntryClassName

	if m.rowNumbers {
		cell := dom.NewElement("td")
		cell.Text = strconv.Itoa(number)
		cell.ClassName = cfg.RowNumberClassName
		el.AppendChild(cell)
	}
	for _, col := range cfg.Columns {
		cell := dom.NewElement("td")
		cell.Text = row.Text(col.Key)
		cell.ClassName = col.ClassName
		el.AppendChild(cell)
	}
	for _, action := range cfg.Actions {
		node, err := buildAction(action, tableName, row)
		if err != nil {
			return nil, err
		}
		el.AppendChild(node)
	}
	return el, nil
}

func buildAction(action tableconfig.Action, tableName string, row tableconfig.Row) (*dom.Element, error) {
	callback := action.Callback
	switch action.Type {
	case tableconfig.ActionButton:
		btn := dom.NewElement("button")
		btn.Text = action.Label
		btn.ClassName = action.ClassName
		btn.AddEventListener(dom.EventClick, dom.NewListener(func(*dom.Event) {
			if callback != nil {
				callback(row, tableName)
			}
		}))
		return btn, nil

	case tableconfig.ActionLink:
		a := dom.NewElement("a")
		a.Text = action.Label
		a.ClassName = action.ClassName
		if action.Href != nil {
			a.Href = action.Href(row[action.HrefKey])
		}
		a.AddEventListener(dom.EventClick, dom.NewListener(func(ev *dom.Event) {
			ev.PreventDefault()
			if callback != nil {
				callback(row, tableName)
			}
		}))
		return a, nil

	default:
		return nil, fmt.Errorf("%w %q in table %q", ErrUnsupportedAction, action.Type, tableName)
	}
}

func filterRows(cfg *tableconfig.TableConfig, rows []tableconfig.Row, query string) []tableconfig.Row {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]tableconfig.Row(nil), rows...)
	}
	var out []tableconfig.Row
	for _, row := range rows {
		for _, col := range cfg.Columns {
			if strings.Contains(strings.ToLower(row.Text(col.Key)), query) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
