package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"adminviews/internal/dom"
	"adminviews/internal/model"
	"adminviews/internal/pagestate"
	"adminviews/internal/results"
	"adminviews/internal/tableconfig"
	"adminviews/internal/view"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configures the dashboard model.
type Options struct {
	Config  *tableconfig.Config
	Fetch   view.FetchFunc
	Window  *dom.Window
	Actions *ActionLog

	BaseURL            string
	PathSegment        int
	SaveTableInSession bool
	SessionKey         string
	UpdateURL          bool
	Sorting            bool
	Filtering          bool
	RowNumbers         bool

	Logger *slog.Logger
}

// Model is the root Bubble Tea model. Key presses are turned into events
// on the page elements; the results manager reacts to those events and
// re-renders the page, which View then paints.
type Model struct {
	page      *Page
	results   *results.MultiTable
	views     *view.Manager
	pageState *pagestate.Manager
	actions   *ActionLog
	loads     *loadQueue
	logger    *slog.Logger

	mode        model.Mode
	width       int
	height      int
	cursor      int
	offset      int
	error       string
	info        string
	showingHelp bool
	rowNumbers  bool

	keys        KeyMap
	filterKeys  FilterKeyMap
	help        help.Model
	filterField textinput.Model
}

// New builds the page, wires the view, page state and results managers
// and renders the initial table.
func New(ctx context.Context, opts Options) (Model, error) {
	if opts.Config == nil {
		return Model{}, fmt.Errorf("failed to create dashboard: no table config")
	}
	if opts.Actions == nil {
		opts.Actions = NewActionLog()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	page := NewPage(opts.Window)
	loads := &loadQueue{}

	viewOpts := []view.Option{view.WithRunner(loads.run)}
	if opts.RowNumbers {
		viewOpts = append(viewOpts, view.WithNumberedHeader("#"), view.WithRowNumbers())
	}
	viewOpts = append(viewOpts, view.WithLogger(opts.Logger))
	views, err := view.New(page.Surface(), opts.Config.Tables, opts.Fetch, viewOpts...)
	if err != nil {
		return Model{}, fmt.Errorf("failed to create view manager: %w", err)
	}

	pageState, err := pagestate.New(pagestate.Options{
		DefaultTable:       opts.Config.DefaultTable,
		PathSegment:        opts.PathSegment,
		BaseURL:            opts.BaseURL,
		SaveTableInSession: opts.SaveTableInSession,
		SessionKey:         opts.SessionKey,
		Window:             opts.Window,
		Logger:             opts.Logger,
	})
	if err != nil {
		return Model{}, fmt.Errorf("failed to create page state: %w", err)
	}

	mt, err := results.NewMultiTable(results.MultiTableOptions{
		View:               views,
		PageState:          pageState,
		Window:             opts.Window,
		TableSelect:        page.TableSelect,
		Tables:             opts.Config.Tables,
		Order:              opts.Config.Order,
		SaveTableInSession: opts.SaveTableInSession,
		UpdateURL:          opts.UpdateURL,
		SortingEnabled:     opts.Sorting,
		Sort:               results.SortOptions{Select: page.SortSelect, Direction: page.Direction},
		FilteringEnabled:   opts.Filtering,
		Filter:             results.FilterOptions{Input: page.FilterInput, Clear: page.FilterClear},
		OnError:            loads.report,
		Logger:             opts.Logger,
	})
	if err != nil {
		return Model{}, fmt.Errorf("failed to create results manager: %w", err)
	}
	if err := mt.Init(ctx); err != nil {
		mt.Destroy()
		return Model{}, fmt.Errorf("failed to load initial table: %w", err)
	}

	field := textinput.New()
	field.Prompt = "filter: "
	field.Placeholder = "type to filter rows"
	field.CharLimit = 64
	field.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		page:        page,
		results:     mt,
		views:       views,
		pageState:   pageState,
		actions:     opts.Actions,
		loads:       loads,
		logger:      opts.Logger,
		mode:        model.ModeNav,
		rowNumbers:  opts.RowNumbers,
		keys:        DefaultKeyMap(),
		filterKeys:  DefaultFilterKeyMap(),
		help:        help.New(),
		filterField: field,
	}, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Page returns the document the model drives.
func (m Model) Page() *Page {
	return m.page
}

// Results returns the results manager.
func (m Model) Results() *results.MultiTable {
	return m.results
}

// Cursor returns the selected row index.
func (m Model) Cursor() int {
	return m.cursor
}

// Mode returns the interaction mode.
func (m Model) Mode() model.Mode {
	return m.mode
}

// Banners returns the current error and info banner texts.
func (m Model) Banners() (errText, info string) {
	return m.error, m.info
}

// Close releases the listeners held by the results manager.
func (m Model) Close() {
	m.results.Destroy()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showingHelp {
			if msg.String() == "esc" || key.Matches(msg, m.keys.Help) {
				m.showingHelp = false
			}
			return m, nil
		}

		var cmd tea.Cmd
		if m.mode == model.ModeFilter {
			m, cmd = m.handleFilterMode(msg)
		} else {
			m, cmd = m.handleNavMode(msg)
		}
		m.collect()
		return m, tea.Batch(cmd, m.loads.flush())

	case model.TableLoadedMsg:
		msg.Deliver(msg.Rows, msg.Err)
		m.collect()
		return m, m.loads.flush()

	case model.ErrorMsg:
		m.logger.Error("dashboard event failed", "error", msg.Err)
		m.error = msg.Err.Error()
		return m, nil
	}

	if m.mode == model.ModeFilter {
		var cmd tea.Cmd
		m.filterField, cmd = m.filterField.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showingHelp = true

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PrevTable):
		m.switchTable(-1)

	case key.Matches(msg, m.keys.NextTable):
		m.switchTable(1)

	case key.Matches(msg, m.keys.Sort):
		m.cycleSortKey()

	case key.Matches(msg, m.keys.Direction):
		if m.results.SortManager() == nil {
			m.info = "Sorting is disabled"
			break
		}
		m.clearBanners()
		m.page.Direction.Click()

	case key.Matches(msg, m.keys.Filter):
		if m.results.FilterManager() == nil {
			m.info = "Filtering is disabled"
			break
		}
		m.mode = model.ModeFilter
		m.filterField.SetValue(m.page.FilterInput.Value)
		m.filterField.CursorEnd()
		return m, m.filterField.Focus()

	case key.Matches(msg, m.keys.ClearFilter):
		if m.results.FilterManager() != nil && m.page.FilterInput.Value != "" {
			m.clearBanners()
			m.page.FilterClear.Click()
			m.filterField.SetValue("")
			m.cursor, m.offset = 0, 0
		}

	case key.Matches(msg, m.keys.Select):
		m.triggerAction(0)

	case key.Matches(msg, m.keys.Action):
		m.triggerAction(int(msg.String()[0] - '1'))

	case key.Matches(msg, m.keys.HistoryBack):
		m.clearBanners()
		if !m.page.Window.History().Back() {
			m.info = "No earlier page"
		}
		m.cursor, m.offset = 0, 0

	case key.Matches(msg, m.keys.HistoryFwd):
		m.clearBanners()
		if !m.page.Window.History().Forward() {
			m.info = "No later page"
		}
		m.cursor, m.offset = 0, 0
	}
	return m, nil
}

// handleFilterMode routes keys to the filter field and mirrors its value
// into the page's filter input.
func (m Model) handleFilterMode(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.filterKeys.Cancel):
		m.page.FilterClear.Click()
		m.filterField.SetValue("")
		m.filterField.Blur()
		m.mode = model.ModeNav
		m.cursor, m.offset = 0, 0
		return m, nil

	case key.Matches(msg, m.filterKeys.Apply):
		m.filterField.Blur()
		m.mode = model.ModeNav
		return m, nil
	}

	var cmd tea.Cmd
	m.filterField, cmd = m.filterField.Update(msg)
	if v := m.filterField.Value(); v != m.page.FilterInput.Value {
		m.page.FilterInput.Value = v
		m.page.FilterInput.DispatchEvent(dom.NewEvent(dom.EventInput))
		m.cursor, m.offset = 0, 0
	}
	return m, cmd
}

func (m *Model) switchTable(delta int) {
	order := m.results.Order()
	if len(order) == 0 {
		return
	}
	idx := 0
	for i, name := range order {
		if name == m.page.TableSelect.Value {
			idx = i
			break
		}
	}
	next := order[(idx+delta+len(order))%len(order)]

	m.clearBanners()
	m.page.TableSelect.Value = next
	m.page.TableSelect.DispatchEvent(dom.NewEvent(dom.EventChange))
	m.cursor, m.offset = 0, 0
	m.filterField.SetValue("")
}

func (m *Model) cycleSortKey() {
	if m.results.SortManager() == nil {
		m.info = "Sorting is disabled"
		return
	}
	options := m.page.SortSelect.Options()
	if len(options) <= 1 {
		m.info = "No sort keys for this table"
		return
	}
	next := (m.page.SortSelect.SelectedIndex() + 1) % len(options)

	m.clearBanners()
	m.page.SortSelect.Value = options[next].Value
	m.page.SortSelect.DispatchEvent(dom.NewEvent(dom.EventChange))
}

func (m *Model) triggerAction(n int) {
	rows := m.page.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return
	}
	actions := RowActions(rows[m.cursor])
	if n < 0 || n >= len(actions) {
		m.info = fmt.Sprintf("Row has no action %d", n+1)
		return
	}
	m.clearBanners()
	actions[n].Click()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.ensureCursorVisible()
}

func (m *Model) clampCursor() {
	n := len(m.page.Rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) visibleRows() int {
	// header, tabs, controls, table header, divider, status, footer
	return max(1, m.height-10)
}

func (m *Model) clearBanners() {
	m.error = ""
	m.info = ""
}

// collect moves action outcomes into the info banner and keeps the cursor
// on a rendered row.
func (m *Model) collect() {
	if notes := m.actions.Drain(); len(notes) > 0 {
		m.info = notes[len(notes)-1]
	}
	m.clampCursor()
	m.ensureCursorVisible()
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.help, m.keys, m.width, m.height)
	}

	current := m.results.CurrentTable()
	header := renderHeader([]string{"Tables", current}, m.page.Window.Location().Pathname(), m.width)
	tabs := renderTabs(m.results.Order(), current, m.width)
	controls := m.renderControls()

	var footer string
	if m.mode == model.ModeFilter {
		footer = RenderHelp(m.help, m.filterKeys, m.width)
	} else {
		footer = RenderHelp(m.help, m.keys, m.width)
	}

	parts := []string{header, tabs, controls}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}

	used := 0
	for _, p := range parts {
		used += lipgloss.Height(p)
	}
	contentHeight := max(3, m.height-used-lipgloss.Height(footer))
	content := renderTable(m.page, m.cursor, m.offset, m.width, contentHeight, m.rowNumbers, m.tableStatus())
	content = lipgloss.NewStyle().Width(m.width).Height(contentHeight).Render(content)

	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderControls() string {
	var segs []string

	if sm := m.results.SortManager(); sm != nil {
		label := "none"
		if idx := m.page.SortSelect.SelectedIndex(); idx > 0 {
			label = m.page.SortSelect.Options()[idx].Label
		}
		segs = append(segs, LabelStyle.Render("sort")+" "+label+" "+BreadcrumbStyle.Render("("+m.page.Direction.Text+")"))
	}

	if m.results.FilterManager() != nil {
		if m.mode == model.ModeFilter {
			segs = append(segs, InputStyle.Render(m.filterField.View()))
		} else {
			value := m.page.FilterInput.Value
			if value == "" {
				value = BreadcrumbStyle.Render("none")
			}
			segs = append(segs, LabelStyle.Render("filter")+" "+value)
		}
	}

	return StatusBarStyle.Width(m.width).Render(strings.Join(segs, "   "))
}

func (m Model) tableStatus() string {
	rows := len(m.page.Rows())
	status := fmt.Sprintf("%d rows", rows)
	if m.views.Loading() {
		status = "loading…  ·  " + status
	}
	if rows > 0 {
		status += fmt.Sprintf("  ·  row %d/%d", m.cursor+1, rows)
	}
	if sortKey, dir := m.views.Sort(); sortKey != "" {
		status += fmt.Sprintf("  ·  sorted by %s %s", sortKey, dir)
	}
	if f := m.views.Filter(); f != "" {
		status += fmt.Sprintf("  ·  filtered by %q", f)
	}
	return status
}

func renderTabs(order []string, current string, width int) string {
	var tabStrings []string
	for _, name := range order {
		tabStyle := lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

		if name == current {
			tabStyle = tabStyle.
				Foreground(ColorText).
				Bold(true).
				Underline(true)
		}

		tabStrings = append(tabStrings, tabStyle.Render(name))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, tabStrings...)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(tabBar)
}

func renderHeader(breadcrumbParts []string, path string, width int) string {
	title := HeaderStyle.Render("adminviews")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb
	right := BreadcrumbStyle.Render(path) + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}
