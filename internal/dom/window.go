package dom

import "sync"

// Storage is a string key/value store with the semantics of the browser's
// sessionStorage.
type Storage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// MemoryStorage is an in-process Storage.
type MemoryStorage struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (s *MemoryStorage) GetItem(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Location holds the current path of a Window.
type Location struct {
	pathname string
}

// Pathname returns the current path, e.g. "/admin/manage/songs".
func (l *Location) Pathname() string {
	return l.pathname
}

type historyEntry struct {
	url   string
	state any
}

// History is the session history of a Window.
type History struct {
	win     *Window
	entries []historyEntry
	index   int
}

// PushState adds a new entry for url and makes it current. Entries after
// the current one are dropped. No popstate event is fired.
func (h *History) PushState(state any, url string) {
	h.entries = append(h.entries[:h.index+1], historyEntry{url: url, state: state})
	h.index = len(h.entries) - 1
	h.win.location.pathname = url
}

// Back moves one entry back and fires popstate. It returns false if there
// is no previous entry.
func (h *History) Back() bool {
	return h.Go(-1)
}

// Forward moves one entry forward and fires popstate.
func (h *History) Forward() bool {
	return h.Go(1)
}

// Go moves delta entries and fires popstate on the window.
func (h *History) Go(delta int) bool {
	next := h.index + delta
	if delta == 0 || next < 0 || next >= len(h.entries) {
		return false
	}
	h.index = next
	entry := h.entries[next]
	h.win.location.pathname = entry.url
	ev := NewEvent(EventPopState)
	ev.State = entry.state
	h.win.DispatchEvent(ev)
	return true
}

// Length returns the number of entries.
func (h *History) Length() int {
	return len(h.entries)
}

// Index returns the position of the current entry.
func (h *History) Index() int {
	return h.index
}

// Window ties together location, history and session storage and is the
// target of popstate events.
type Window struct {
	location  Location
	history   History
	session   Storage
	listeners listenerSet
}

// NewWindow creates a window whose history starts with path. A nil
// session gets a MemoryStorage.
func NewWindow(path string, session Storage) *Window {
	if session == nil {
		session = NewMemoryStorage()
	}
	w := &Window{
		location: Location{pathname: path},
		session:  session,
	}
	w.history = History{win: w, entries: []historyEntry{{url: path}}}
	return w
}

func (w *Window) Location() *Location {
	return &w.location
}

func (w *Window) History() *History {
	return &w.history
}

func (w *Window) SessionStorage() Storage {
	return w.session
}

func (w *Window) AddEventListener(event string, l *Listener) {
	w.listeners.add(event, l)
}

func (w *Window) RemoveEventListener(event string, l *Listener) {
	w.listeners.remove(event, l)
}

func (w *Window) DispatchEvent(ev *Event) bool {
	return w.listeners.dispatch(ev)
}

// ListenerCount returns the number of listeners registered for event.
func (w *Window) ListenerCount(event string) int {
	return len(w.listeners[event])
}
