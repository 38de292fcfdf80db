package dom

import "slices"

// Event names used by the dashboard.
const (
	EventChange   = "change"
	EventClick    = "click"
	EventInput    = "input"
	EventPopState = "popstate"
)

// Event is dispatched to listeners of a Target.
type Event struct {
	Type   string
	Target *Element
	// State carries the history state for popstate events.
	State any

	defaultPrevented bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// PreventDefault suppresses the default action, e.g. link navigation.
func (ev *Event) PreventDefault() {
	ev.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool {
	return ev.defaultPrevented
}

// Listener wraps an event handler. The pointer is the listener's identity,
// so the same *Listener must be passed to remove it again.
type Listener struct {
	fn func(*Event)
}

// NewListener wraps fn.
func NewListener(fn func(*Event)) *Listener {
	return &Listener{fn: fn}
}

// Handle calls the wrapped function.
func (l *Listener) Handle(ev *Event) {
	if l != nil && l.fn != nil {
		l.fn(ev)
	}
}

// Target is anything listeners can be attached to.
type Target interface {
	AddEventListener(event string, l *Listener)
	RemoveEventListener(event string, l *Listener)
	DispatchEvent(ev *Event) bool
}

type listenerSet map[string][]*Listener

func (s *listenerSet) add(event string, l *Listener) {
	if *s == nil {
		*s = make(listenerSet)
	}
	if slices.Contains((*s)[event], l) {
		return
	}
	(*s)[event] = append((*s)[event], l)
}

func (s listenerSet) remove(event string, l *Listener) {
	ls := s[event]
	if i := slices.Index(ls, l); i >= 0 {
		s[event] = slices.Delete(ls, i, i+1)
	}
}

// dispatch calls a snapshot of the listeners so handlers may unbind
// themselves or others while the event is delivered.
func (s listenerSet) dispatch(ev *Event) bool {
	for _, l := range slices.Clone(s[ev.Type]) {
		l.Handle(ev)
	}
	return !ev.defaultPrevented
}

// AddEventListener registers l for event. Adding the same listener twice
// has no effect.
func (e *Element) AddEventListener(event string, l *Listener) {
	ls := listenerSet(e.listeners)
	ls.add(event, l)
	e.listeners = ls
}

// RemoveEventListener unregisters l for event if present.
func (e *Element) RemoveEventListener(event string, l *Listener) {
	listenerSet(e.listeners).remove(event, l)
}

// DispatchEvent delivers ev to the listeners of e. It returns false if a
// listener called PreventDefault.
func (e *Element) DispatchEvent(ev *Event) bool {
	if ev.Target == nil {
		ev.Target = e
	}
	return listenerSet(e.listeners).dispatch(ev)
}

// ListenerCount returns the number of listeners registered for event.
func (e *Element) ListenerCount(event string) int {
	return len(e.listeners[event])
}

// Click dispatches a click event on e.
func (e *Element) Click() bool {
	return e.DispatchEvent(NewEvent(EventClick))
}
