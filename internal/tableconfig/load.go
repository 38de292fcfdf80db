package tableconfig

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every configuration file error.
var ErrInvalidConfig = errors.New("invalid table configuration")

//go:embed default_tables.toml
var defaultTables []byte

// hrefPlaceholder is replaced by the row value in link href templates.
const hrefPlaceholder = "{value}"

// File is a decoded table configuration file.
type File struct {
	DefaultTable string `toml:"default_table"`
	Tables       []struct {
		Name           string `toml:"name"`
		HeaderClass    string `toml:"header_class"`
		EntryClass     string `toml:"entry_class"`
		RowNumberClass string `toml:"row_number_class"`
		Columns        []struct {
			Key   string `toml:"key"`
			Label string `toml:"label"`
			Class string `toml:"class"`
		} `toml:"columns"`
		Actions []struct {
			Type     string `toml:"type"`
			Label    string `toml:"label"`
			Class    string `toml:"class"`
			Callback string `toml:"callback"`
			Href     string `toml:"href"`
			HrefKey  string `toml:"href_key"`
		} `toml:"actions"`
		SortKeys []struct {
			Key   string `toml:"key"`
			Label string `toml:"label"`
		} `toml:"sort_keys"`
	} `toml:"tables"`
}

// Config is the result of loading a table configuration file.
type Config struct {
	DefaultTable string
	// Order lists the table names in file order.
	Order  []string
	Tables Tables
}

// Load reads and parses the file at path. An empty path loads the embedded
// default configuration.
func Load(path string, callbacks map[string]ActionFunc) (*Config, error) {
	if path == "" {
		return Parse(defaultTables, callbacks)
	}
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to decode table config %s: %w", path, err)
	}
	return build(&f, callbacks)
}

// Parse parses configuration data.
func Parse(data []byte, callbacks map[string]ActionFunc) (*Config, error) {
	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("failed to decode table config: %w", err)
	}
	return build(&f, callbacks)
}

func build(f *File, callbacks map[string]ActionFunc) (*Config, error) {
	cfg := &Config{Tables: make(Tables, len(f.Tables))}
	if len(f.Tables) == 0 {
		return nil, fmt.Errorf("%w: no tables declared", ErrInvalidConfig)
	}

	for _, t := range f.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: table without name", ErrInvalidConfig)
		}
		if cfg.Tables.Has(t.Name) {
			return nil, fmt.Errorf("%w: duplicate table %q", ErrInvalidConfig, t.Name)
		}

		tc := &TableConfig{
			HeaderClassName:    t.HeaderClass,
			EntryClassName:     t.EntryClass,
			RowNumberClassName: t.RowNumberClass,
		}

		seen := make(map[string]bool, len(t.Columns))
		for _, c := range t.Columns {
			if c.Key == "" {
				return nil, fmt.Errorf("%w: table %q has a column without key", ErrInvalidConfig, t.Name)
			}
			if seen[c.Key] {
				return nil, fmt.Errorf("%w: table %q has duplicate column %q", ErrInvalidConfig, t.Name, c.Key)
			}
			seen[c.Key] = true
			label := c.Label
			if label == "" {
				label = c.Key
			}
			tc.Columns = append(tc.Columns, Column{Key: c.Key, Label: label, ClassName: c.Class})
		}

		for _, a := range t.Actions {
			cb, ok := callbacks[a.Callback]
			if !ok {
				return nil, fmt.Errorf("%w: table %q action %q references unknown callback %q", ErrInvalidConfig, t.Name, a.Label, a.Callback)
			}
			action := Action{
				Type:      ActionType(a.Type),
				ClassName: a.Class,
				Label:     a.Label,
				Callback:  cb,
				HrefKey:   a.HrefKey,
			}
			if a.Href != "" {
				action.Href = hrefTemplate(a.Href)
			}
			tc.Actions = append(tc.Actions, action)
		}

		for _, s := range t.SortKeys {
			label := s.Label
			if label == "" {
				label = s.Key
			}
			tc.SortKeys = append(tc.SortKeys, SortKey{Key: s.Key, Label: label})
		}

		cfg.Tables[t.Name] = tc
		cfg.Order = append(cfg.Order, t.Name)
	}

	cfg.DefaultTable = f.DefaultTable
	if cfg.DefaultTable == "" {
		cfg.DefaultTable = cfg.Order[0]
	}
	if !cfg.Tables.Has(cfg.DefaultTable) {
		return nil, fmt.Errorf("%w: default table %q is not declared", ErrInvalidConfig, cfg.DefaultTable)
	}
	return cfg, nil
}

func hrefTemplate(tmpl string) func(any) string {
	return func(v any) string {
		return strings.ReplaceAll(tmpl, hrefPlaceholder, Row{"v": v}.Text("v"))
	}
}
