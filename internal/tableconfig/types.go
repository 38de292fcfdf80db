// Package tableconfig holds the declarative description of the dashboard
// tables: their columns, styling hooks, row actions and sort keys.
package tableconfig

import (
	"fmt"
	"sort"
)

// Row is one record of displayable values keyed by column key.
type Row map[string]any

// Text returns the display text of the value stored under key, or "" if
// the row has no such key or the value is nil.
func (r Row) Text(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v)
}

// Column is one rendered column.
type Column struct {
	Key       string
	Label     string
	ClassName string
}

// ActionType selects how an action is rendered.
type ActionType string

const (
	ActionButton ActionType = "button"
	ActionLink   ActionType = "link"
)

// ActionFunc is invoked when a row action is activated.
type ActionFunc func(row Row, tableName string)

// Action is a per-row control.
type Action struct {
	Type      ActionType
	ClassName string
	Label     string
	Callback  ActionFunc
	// Href computes the display href of a link from the row's HrefKey value.
	Href    func(value any) string
	HrefKey string
}

// SortKey is one entry of a table's sort control.
type SortKey struct {
	Key   string
	Label string
}

// TableConfig describes one table.
type TableConfig struct {
	Columns            []Column
	HeaderClassName    string
	EntryClassName     string
	RowNumberClassName string
	Actions            []Action
	SortKeys           []SortKey
}

// Tables maps table names to their configuration.
type Tables map[string]*TableConfig

// Has reports whether name is a configured table.
func (t Tables) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Names returns the configured table names in sorted order.
func (t Tables) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
