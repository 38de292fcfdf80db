package pagestate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminviews/internal/dom"
	"adminviews/internal/validate"
)

func newManager(t *testing.T, path string, session bool) (*Manager, *dom.Window) {
	t.Helper()
	win := dom.NewWindow(path, nil)
	m, err := New(Options{
		DefaultTable:       "songs",
		PathSegment:        3,
		BaseURL:            "/admin/manage/",
		SaveTableInSession: session,
		Window:             win,
	})
	require.NoError(t, err)
	return m, win
}

func TestGetCurrentTableFromURL(t *testing.T) {
	cases := map[string]string{
		"/admin/manage/presets":  "presets",
		"/admin/manage/synths/":  "synths",
		"/admin/manage/":         "songs",
		"/admin/manage":          "songs",
		"/":                      "songs",
		"/admin/manage/albums/7": "albums",
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			m, _ := newManager(t, path, false)
			assert.Equal(t, want, m.GetCurrentTableFromURL())
		})
	}
}

func TestSessionDisabled(t *testing.T) {
	m, _ := newManager(t, "/admin/manage/presets", false)

	_, _, err := m.GetSelectedTableFromSessionStorage()
	assert.True(t, errors.Is(err, ErrSessionDisabled))
	assert.True(t, errors.Is(m.SaveTableInSessionStorage("songs"), ErrSessionDisabled))

	name, err := m.GetInitialTable()
	require.NoError(t, err)
	assert.Equal(t, "presets", name)
}

func TestInitialTablePrecedence(t *testing.T) {
	m, win := newManager(t, "/admin/manage/presets", true)

	name, err := m.GetInitialTable()
	require.NoError(t, err)
	assert.Equal(t, "presets", name, "url wins when nothing is stored")

	require.NoError(t, m.SaveTableInSessionStorage("artists"))
	name, err = m.GetInitialTable()
	require.NoError(t, err)
	assert.Equal(t, "artists", name, "session wins over url")

	stored, ok, err := win.SessionStorage().GetItem(DefaultSessionKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "artists", stored)

	empty, _ := newManager(t, "/elsewhere", true)
	name, err = empty.GetInitialTable()
	require.NoError(t, err)
	assert.Equal(t, "songs", name, "default when neither is set")
}

func TestUpdateURLPushesWithoutPopState(t *testing.T) {
	m, win := newManager(t, "/admin/manage/songs", false)
	popped := 0
	win.AddEventListener(dom.EventPopState, dom.NewListener(func(*dom.Event) { popped++ }))

	m.UpdateURL("synths")
	assert.Equal(t, "/admin/manage/synths", win.Location().Pathname())
	assert.Equal(t, 2, win.History().Length())
	assert.Equal(t, 0, popped)
	assert.Equal(t, "synths", m.GetCurrentTableFromURL())
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(Options{PathSegment: 3, Window: dom.NewWindow("/", nil)})
	assert.True(t, errors.Is(err, validate.ErrInvalidOption))

	_, err = New(Options{DefaultTable: "songs", PathSegment: 3})
	assert.True(t, errors.Is(err, validate.ErrInvalidOption))

	_, err = New(Options{DefaultTable: "songs", Window: dom.NewWindow("/", nil)})
	assert.True(t, errors.Is(err, validate.ErrInvalidOption))
}
