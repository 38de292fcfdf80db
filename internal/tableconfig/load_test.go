package tableconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopCallbacks() map[string]ActionFunc {
	return map[string]ActionFunc{
		"details": func(Row, string) {},
		"open":    func(Row, string) {},
	}
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("", noopCallbacks())
	require.NoError(t, err)

	assert.Equal(t, "songs", cfg.DefaultTable)
	assert.Equal(t, []string{"songs", "albums", "artists", "synths", "presets"}, cfg.Order)
	assert.Equal(t, []string{"albums", "artists", "presets", "songs", "synths"}, cfg.Tables.Names())

	songs := cfg.Tables["songs"]
	require.NotNil(t, songs)
	require.Len(t, songs.Columns, 5)
	assert.Equal(t, Column{Key: "title", Label: "Title", ClassName: "col-title"}, songs.Columns[0])
	assert.Equal(t, "songs-header", songs.HeaderClassName)
	assert.Equal(t, "songs-num", songs.RowNumberClassName)
	require.Len(t, songs.Actions, 2)
	assert.Equal(t, ActionButton, songs.Actions[0].Type)
	assert.Equal(t, ActionLink, songs.Actions[1].Type)
	assert.Equal(t, "/admin/songs/7", songs.Actions[1].Href(int64(7)))
	assert.NotEmpty(t, songs.SortKeys)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.toml")
	data := `
[[tables]]
name = "presets"

  [[tables.columns]]
  key = "name"

  [[tables.sort_keys]]
  key = "name"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "presets", cfg.DefaultTable)
	assert.Equal(t, "name", cfg.Tables["presets"].Columns[0].Label)
	assert.Equal(t, []SortKey{{Key: "name", Label: "name"}}, cfg.Tables["presets"].SortKeys)
}

func TestParseRejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"no tables": `default_table = "x"`,
		"duplicate table": `
[[tables]]
name = "a"
[[tables]]
name = "a"
`,
		"duplicate column": `
[[tables]]
name = "a"
  [[tables.columns]]
  key = "k"
  [[tables.columns]]
  key = "k"
`,
		"unknown callback": `
[[tables]]
name = "a"
  [[tables.actions]]
  type = "button"
  label = "Go"
  callback = "missing"
`,
		"unknown default": `
default_table = "b"
[[tables]]
name = "a"
`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data), noopCallbacks())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), err.Error())
		})
	}
}

func TestParseKeepsUnsupportedActionType(t *testing.T) {
	// unsupported types fail at render time, not at load time
	cfg, err := Parse([]byte(`
[[tables]]
name = "a"
  [[tables.actions]]
  type = "dropdown"
  callback = "details"
`), noopCallbacks())
	require.NoError(t, err)
	assert.Equal(t, ActionType("dropdown"), cfg.Tables["a"].Actions[0].Type)
}

func TestRowText(t *testing.T) {
	row := Row{"s": "x", "n": 3, "nil": nil, "b": []byte("raw")}
	assert.Equal(t, "x", row.Text("s"))
	assert.Equal(t, "3", row.Text("n"))
	assert.Equal(t, "", row.Text("nil"))
	assert.Equal(t, "", row.Text("missing"))
	assert.Equal(t, "raw", row.Text("b"))
}
