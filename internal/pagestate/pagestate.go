// Package pagestate decides which table is active by reconciling the URL
// path, session storage and the configured default. It is the only
// component that pushes history entries.
package pagestate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"adminviews/internal/dom"
	"adminviews/internal/validate"
)

// ErrSessionDisabled is returned by the session accessors of a Manager
// created without session persistence.
var ErrSessionDisabled = errors.New("session storage not enabled")

// DefaultSessionKey is used when Options.SessionKey is empty.
const DefaultSessionKey = "adminviews.selectedTable"

// Options configures a Manager.
type Options struct {
	DefaultTable string
	// PathSegment is the index of the table name in the "/"-split path.
	// For "/admin/manage/<table>" it is 3.
	PathSegment int
	// BaseURL is the prefix of pushed paths, e.g. "/admin/manage".
	BaseURL            string
	SaveTableInSession bool
	SessionKey         string
	Window             *dom.Window
	Logger             *slog.Logger
}

// Manager is the single source of truth for the active table.
type Manager struct {
	defaultTable string
	pathSegment  int
	baseURL      string
	saveSession  bool
	sessionKey   string
	window       *dom.Window
	logger       *slog.Logger
}

// New creates a Manager.
func New(opts Options) (*Manager, error) {
	err := validate.All(
		validate.Spec{Name: "defaultTable", Value: opts.DefaultTable, Kind: validate.String},
		validate.Spec{Name: "window", Value: opts.Window, Kind: validate.Instance, Instance: validate.TypeOf[*dom.Window]()},
	)
	if err != nil {
		return nil, err
	}
	if opts.PathSegment < 1 {
		return nil, fmt.Errorf("%w: path segment must be >= 1, got %d", validate.ErrInvalidOption, opts.PathSegment)
	}

	m := &Manager{
		defaultTable: opts.DefaultTable,
		pathSegment:  opts.PathSegment,
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		saveSession:  opts.SaveTableInSession,
		sessionKey:   opts.SessionKey,
		window:       opts.Window,
		logger:       opts.Logger,
	}
	if m.sessionKey == "" {
		m.sessionKey = DefaultSessionKey
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m, nil
}

// DefaultTable returns the configured default table.
func (m *Manager) DefaultTable() string {
	return m.defaultTable
}

// GetCurrentTableFromURL returns the table encoded in the current path,
// or the default table if the segment is absent or empty.
func (m *Manager) GetCurrentTableFromURL() string {
	parts := strings.Split(m.window.Location().Pathname(), "/")
	if m.pathSegment < len(parts) && parts[m.pathSegment] != "" {
		return parts[m.pathSegment]
	}
	return m.defaultTable
}

// GetSelectedTableFromSessionStorage returns the persisted table name and
// whether one was stored.
func (m *Manager) GetSelectedTableFromSessionStorage() (string, bool, error) {
	if !m.saveSession {
		return "", false, ErrSessionDisabled
	}
	name, ok, err := m.window.SessionStorage().GetItem(m.sessionKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to read session storage: %w", err)
	}
	return name, ok && name != "", nil
}

// SaveTableInSessionStorage persists name as the selected table.
func (m *Manager) SaveTableInSessionStorage(name string) error {
	if !m.saveSession {
		return ErrSessionDisabled
	}
	if err := m.window.SessionStorage().SetItem(m.sessionKey, name); err != nil {
		return fmt.Errorf("failed to write session storage: %w", err)
	}
	return nil
}

// GetInitialTable resolves the active table: a session-stored value wins
// over the URL, which wins over the default.
func (m *Manager) GetInitialTable() (string, error) {
	if m.saveSession {
		name, ok, err := m.GetSelectedTableFromSessionStorage()
		if err != nil {
			return "", err
		}
		if ok {
			m.logger.Debug("initial table from session", "table", name)
			return name, nil
		}
	}
	name := m.GetCurrentTableFromURL()
	m.logger.Debug("initial table from url", "table", name, "path", m.window.Location().Pathname())
	return name, nil
}

// URLFor returns the path encoding tableName.
func (m *Manager) URLFor(tableName string) string {
	return m.baseURL + "/" + tableName
}

// UpdateURL pushes a history entry for tableName. It does not fire
// popstate.
func (m *Manager) UpdateURL(tableName string) {
	url := m.URLFor(tableName)
	m.window.History().PushState(map[string]string{"table": tableName}, url)
	m.logger.Debug("pushed history entry", "url", url)
}
