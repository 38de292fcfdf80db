package ui

import (
	"adminviews/internal/model"
	"adminviews/internal/tableconfig"

	tea "github.com/charmbracelet/bubbletea"
)

// loadQueue collects the commands page events start while Update runs.
// Update returns them, so fetches run off the event loop and their results
// come back as messages.
type loadQueue struct {
	cmds []tea.Cmd
}

// run is the view manager's runner.
func (q *loadQueue) run(fetch func() ([]tableconfig.Row, error), deliver func([]tableconfig.Row, error)) {
	q.cmds = append(q.cmds, func() tea.Msg {
		rows, err := fetch()
		return model.TableLoadedMsg{Rows: rows, Err: err, Deliver: deliver}
	})
}

// report is the results manager's error callback.
func (q *loadQueue) report(err error) {
	if err == nil {
		return
	}
	q.cmds = append(q.cmds, func() tea.Msg {
		return model.ErrorMsg{Err: err}
	})
}

func (q *loadQueue) flush() tea.Cmd {
	cmds := q.cmds
	q.cmds = nil
	return tea.Batch(cmds...)
}
