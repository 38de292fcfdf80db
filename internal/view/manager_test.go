package view

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminviews/internal/dom"
	"adminviews/internal/tableconfig"
)

// recordingSurface records surface calls instead of keeping a tree.
type recordingSurface struct {
	calls    []string
	children []*dom.Element
}

func (s *recordingSurface) Clear() {
	s.calls = append(s.calls, "clear")
	s.children = nil
}

func (s *recordingSurface) AppendHeader(h *dom.Element) {
	s.calls = append(s.calls, "header")
	s.children = append(s.children, h)
}

func (s *recordingSurface) AppendRow(r *dom.Element) {
	s.calls = append(s.calls, "row")
	s.children = append(s.children, r)
}

func (s *recordingSurface) Children() []*dom.Element { return s.children }

type clicked struct {
	row   tableconfig.Row
	table string
}

func testTables(onAction func(tableconfig.Row, string)) tableconfig.Tables {
	actions := []tableconfig.Action{
		{Type: tableconfig.ActionButton, Label: "Details", ClassName: "btn", Callback: onAction},
		{
			Type:     tableconfig.ActionLink,
			Label:    "Open",
			Callback: onAction,
			HrefKey:  "id",
			Href:     func(v any) string { return "/admin/item/" + tableconfig.Row{"v": v}.Text("v") },
		},
	}
	return tableconfig.Tables{
		"songs": {
			Columns: []tableconfig.Column{
				{Key: "title", Label: "Title"},
				{Key: "artist", Label: "Artist"},
			},
			HeaderClassName:    "songs-header",
			EntryClassName:     "songs-entry",
			RowNumberClassName: "num",
			Actions:            actions,
		},
		"synths": {
			Columns:         []tableconfig.Column{{Key: "name", Label: "Name"}},
			HeaderClassName: "synths-header",
			EntryClassName:  "synths-entry",
		},
	}
}

var fixtures = map[string][]tableconfig.Row{
	"songs": {
		{"id": 1, "title": "Windowlicker", "artist": "Aphex Twin"},
		{"id": 2, "title": "Xtal", "artist": "Aphex Twin"},
		{"id": 3, "title": "Roygbiv"},
	},
	"synths": {
		{"id": 1, "name": "Juno-60"},
		{"id": 2, "name": "Prophet-5"},
	},
}

func fixtureFetch(_ context.Context, table, _, _ string) ([]tableconfig.Row, error) {
	return fixtures[table], nil
}

func cellTexts(el *dom.Element, tag string) []string {
	var out []string
	for _, c := range el.ChildrenByTag(tag) {
		out = append(out, c.Text)
	}
	return out
}

func TestLoadTableRendersHeaderAndRows(t *testing.T) {
	container := dom.NewElement("table")
	m, err := New(NewElementSurface(container), testTables(nil), fixtureFetch)
	require.NoError(t, err)

	require.NoError(t, m.LoadTable(context.Background(), "songs", "", ""))
	assert.Equal(t, "songs", m.CurrentTable())

	children := container.Children()
	require.Len(t, children, 1+len(fixtures["songs"]))

	header := children[0]
	assert.Equal(t, "songs-header", header.ClassName)
	assert.Equal(t, []string{"Title", "Artist"}, cellTexts(header, "th"))

	assert.Equal(t, []string{"Windowlicker", "Aphex Twin"}, cellTexts(children[1], "td"))
	assert.Equal(t, []string{"Xtal", "Aphex Twin"}, cellTexts(children[2], "td"))
	assert.Equal(t, []string{"Roygbiv", ""}, cellTexts(children[3], "td"), "missing keys render empty")
	for _, row := range children[1:] {
		assert.Equal(t, "songs-entry", row.ClassName)
		assert.Len(t, row.ChildrenByTag("button"), 1)
		assert.Len(t, row.ChildrenByTag("a"), 1)
	}
}

func TestLoadTableSurfaceCallOrder(t *testing.T) {
	s := &recordingSurface{}
	m, err := New(s, testTables(nil), fixtureFetch)
	require.NoError(t, err)

	require.NoError(t, m.LoadTable(context.Background(), "synths", "", ""))
	assert.Equal(t, []string{"clear", "header", "row", "row"}, s.calls)
}

func TestLoadTableUnknownTable(t *testing.T) {
	s := &recordingSurface{}
	fetched := false
	m, err := New(s, testTables(nil), func(context.Context, string, string, string) ([]tableconfig.Row, error) {
		fetched = true
		return nil, nil
	})
	require.NoError(t, err)

	err = m.LoadTable(context.Background(), "albums", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTable))
	assert.Contains(t, err.Error(), "albums")
	assert.Empty(t, s.calls, "no surface mutation")
	assert.False(t, fetched)
}

func TestLoadTableWrapsFetchError(t *testing.T) {
	cause := errors.New("connection refused")
	container := dom.NewElement("table")
	m, err := New(NewElementSurface(container), testTables(nil), func(context.Context, string, string, string) ([]tableconfig.Row, error) {
		return nil, cause
	})
	require.NoError(t, err)

	err = m.LoadTable(context.Background(), "songs", "title", "asc")
	require.Error(t, err)
	assert.Equal(t, `failed to load table "songs": connection refused`, err.Error())
	assert.True(t, errors.Is(err, cause))

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "songs", fetchErr.Table)
	assert.Empty(t, container.Children())
}

func TestActions(t *testing.T) {
	var got []clicked
	container := dom.NewElement("table")
	m, err := New(NewElementSurface(container), testTables(func(row tableconfig.Row, table string) {
		got = append(got, clicked{row: row, table: table})
	}), fixtureFetch)
	require.NoError(t, err)
	require.NoError(t, m.LoadTable(context.Background(), "songs", "", ""))

	second := container.Children()[2]
	btn := second.ChildrenByTag("button")[0]
	assert.Equal(t, "Details", btn.Text)
	assert.Equal(t, "btn", btn.ClassName)
	assert.True(t, btn.Click())

	link := second.ChildrenByTag("a")[0]
	assert.Equal(t, "/admin/item/2", link.Href)
	assert.False(t, link.Click(), "link navigation is suppressed")

	require.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, "songs", c.table)
		assert.Equal(t, "Xtal", c.row["title"])
	}
}

func TestUnsupportedActionKeepsPreviousRender(t *testing.T) {
	tables := testTables(nil)
	tables["broken"] = &tableconfig.TableConfig{
		Columns: []tableconfig.Column{{Key: "name", Label: "Name"}},
		Actions: []tableconfig.Action{{Type: "dropdown", Label: "?"}},
	}
	fetch := func(_ context.Context, table, _, _ string) ([]tableconfig.Row, error) {
		if table == "broken" {
			return []tableconfig.Row{{"name": "x"}}, nil
		}
		return fixtures[table], nil
	}
	container := dom.NewElement("table")
	m, err := New(NewElementSurface(container), tables, fetch)
	require.NoError(t, err)
	require.NoError(t, m.LoadTable(context.Background(), "synths", "", ""))

	err = m.LoadTable(context.Background(), "broken", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedAction))
	assert.Equal(t, "synths", m.CurrentTable())
	assert.Len(t, container.Children(), 3)
}

func TestRowNumbers(t *testing.T) {
	container := dom.NewElement("table")
	m, err := New(NewElementSurface(container), testTables(nil), fixtureFetch,
		WithNumberedHeader(""), WithRowNumbers())
	require.NoError(t, err)
	require.NoError(t, m.LoadTable(context.Background(), "songs", "", ""))

	children := container.Children()
	assert.Equal(t, []string{"#", "Title", "Artist"}, cellTexts(children[0], "th"))
	for i, row := range children[1:] {
		cells := row.ChildrenByTag("td")
		assert.Equal(t, "num", cells[0].ClassName)
		assert.Equal(t, []string{"1", "2", "3"}[i], cells[0].Text)
	}
}

func TestSwitchingTablesReplacesRows(t *testing.T) {
	container := dom.NewElement("table")
	m, err := New(NewElementSurface(container), testTables(nil), fixtureFetch)
	require.NoError(t, err)

	require.NoError(t, m.LoadTable(context.Background(), "songs", "", ""))
	require.NoError(t, m.LoadTable(context.Background(), "synths", "", ""))

	for _, el := range container.Children() {
		assert.NotEqual(t, "songs-entry", el.ClassName)
		assert.NotEqual(t, "songs-header", el.ClassName)
	}
	assert.Len(t, container.Children(), 3)
}

func TestSupersededLoadIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(ctx context.Context, table, _, _ string) ([]tableconfig.Row, error) {
		if table == "songs" {
			close(started)
			<-release
		}
		return fixtures[table], nil
	}
	container := dom.NewElement("table")
	m, err := New(NewElementSurface(container), testTables(nil), fetch)
	require.NoError(t, err)

	slow := make(chan error, 1)
	go func() { slow <- m.LoadTable(context.Background(), "songs", "", "") }()
	<-started

	require.NoError(t, m.LoadTable(context.Background(), "synths", "", ""))
	close(release)

	err = <-slow
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSuperseded))
	assert.Equal(t, "synths", m.CurrentTable())
	assert.Len(t, container.Children(), 1+len(fixtures["synths"]))
}

func TestFailedNewerLoadDoesNotDropOlderResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(ctx context.Context, table, _, _ string) ([]tableconfig.Row, error) {
		switch table {
		case "songs":
			close(started)
			<-release
		case "synths":
			return nil, errors.New("connection reset")
		}
		return fixtures[table], nil
	}
	container := dom.NewElement("table")
	m, err := New(NewElementSurface(container), testTables(nil), fetch)
	require.NoError(t, err)

	slow := make(chan error, 1)
	go func() { slow <- m.LoadTable(context.Background(), "songs", "", "") }()
	<-started

	err = m.LoadTable(context.Background(), "synths", "", "")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.True(t, m.Loading())

	close(release)
	require.NoError(t, <-slow)
	assert.Equal(t, "songs", m.CurrentTable())
	assert.False(t, m.Loading())
}

// queuedRunner holds fetches until the test runs them, in any order.
type queuedRunner struct {
	pending []func()
}

func (q *queuedRunner) run(fetch func() ([]tableconfig.Row, error), deliver func([]tableconfig.Row, error)) {
	q.pending = append(q.pending, func() { deliver(fetch()) })
}

func TestLoadTableAsync(t *testing.T) {
	q := &queuedRunner{}
	container := dom.NewElement("table")
	m, err := New(NewElementSurface(container), testTables(nil), fixtureFetch, WithRunner(q.run))
	require.NoError(t, err)

	var results []error
	done := func(err error) { results = append(results, err) }

	m.LoadTableAsync(context.Background(), "songs", "", "", done)
	m.LoadTableAsync(context.Background(), "synths", "", "", done)
	assert.Empty(t, container.Children(), "nothing renders before delivery")
	assert.True(t, m.Loading())
	require.Len(t, q.pending, 2)

	// the newer load resolves first; the older one is then dropped
	q.pending[1]()
	q.pending[0]()

	require.Len(t, results, 2)
	assert.NoError(t, results[0])
	assert.ErrorIs(t, results[1], ErrSuperseded)
	assert.Equal(t, "synths", m.CurrentTable())
	assert.False(t, m.Loading())

	m.LoadTableAsync(context.Background(), "albums", "", "", done)
	require.Len(t, results, 3)
	assert.ErrorIs(t, results[2], ErrUnknownTable)
	assert.Len(t, q.pending, 2, "unknown tables never reach the runner")
}

func TestSetFilter(t *testing.T) {
	container := dom.NewElement("table")
	calls := 0
	fetch := func(ctx context.Context, table, k, d string) ([]tableconfig.Row, error) {
		calls++
		return fixtureFetch(ctx, table, k, d)
	}
	m, err := New(NewElementSurface(container), testTables(nil), fetch, WithRowNumbers())
	require.NoError(t, err)
	require.NoError(t, m.LoadTable(context.Background(), "songs", "", ""))

	require.NoError(t, m.SetFilter("XTAL"))
	assert.Equal(t, 1, calls, "filtering must not refetch")
	require.Len(t, container.Children(), 2)
	assert.Equal(t, []string{"1", "Xtal", "Aphex Twin"}, cellTexts(container.Children()[1], "td"))

	// reloading the same table keeps the filter
	require.NoError(t, m.LoadTable(context.Background(), "songs", "title", "desc"))
	assert.Equal(t, "XTAL", m.Filter())
	assert.Len(t, m.Rows(), 1)

	// switching tables clears it
	require.NoError(t, m.LoadTable(context.Background(), "synths", "", ""))
	assert.Equal(t, "", m.Filter())
	assert.Len(t, m.Rows(), 2)

	require.NoError(t, m.SetFilter(""))
	assert.Len(t, container.Children(), 3)
}

func TestNewValidatesArguments(t *testing.T) {
	_, err := New(nil, testTables(nil), fixtureFetch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surface")

	_, err = New(&recordingSurface{}, nil, fixtureFetch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tables")

	_, err = New(&recordingSurface{}, testTables(nil), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetchTableData")
}
