package ui

import (
	"fmt"
	"sort"
	"strings"

	"adminviews/internal/tableconfig"
	"adminviews/internal/util"
)

// ActionLog collects the outcome of row actions so the model can show
// them in its info banner after the triggering click returns.
type ActionLog struct {
	pending []string
}

// NewActionLog creates an empty log.
func NewActionLog() *ActionLog {
	return &ActionLog{}
}

// Callbacks returns the named action callbacks table configs may reference.
func (a *ActionLog) Callbacks() map[string]tableconfig.ActionFunc {
	return map[string]tableconfig.ActionFunc{
		"details": a.details,
		"open":    a.open,
	}
}

func (a *ActionLog) details(row tableconfig.Row, tableName string) {
	keys := make([]string, 0, len(row))
	for k := range row {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+util.TruncateString(row.Text(k), 24))
	}
	a.pending = append(a.pending, fmt.Sprintf("%s #%s: %s", tableName, row.Text("id"), strings.Join(parts, ", ")))
}

func (a *ActionLog) open(row tableconfig.Row, tableName string) {
	a.pending = append(a.pending, fmt.Sprintf("Opened %s #%s", tableName, row.Text("id")))
}

// Drain returns and clears the collected messages.
func (a *ActionLog) Drain() []string {
	out := a.pending
	a.pending = nil
	return out
}
