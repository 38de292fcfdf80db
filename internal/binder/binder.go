// Package binder keeps track of event listener registrations so a component
// can drop all of them at once when it is torn down.
package binder

import "adminviews/internal/dom"

type binding struct {
	target   dom.Target
	event    string
	listener *dom.Listener
}

// EventBinder records (target, event, listener) registrations.
// The zero value is ready to use.
type EventBinder struct {
	bindings []binding
}

// New creates an empty EventBinder.
func New() *EventBinder {
	return &EventBinder{}
}

// Bind attaches l to target for event and records the registration.
func (b *EventBinder) Bind(target dom.Target, event string, l *dom.Listener) {
	target.AddEventListener(event, l)
	b.bindings = append(b.bindings, binding{target: target, event: event, listener: l})
}

// Unbind removes the exact registration if it was recorded. Unknown
// registrations are ignored.
func (b *EventBinder) Unbind(target dom.Target, event string, l *dom.Listener) {
	for i, bd := range b.bindings {
		if bd.target == target && bd.event == event && bd.listener == l {
			target.RemoveEventListener(event, l)
			b.bindings = append(b.bindings[:i], b.bindings[i+1:]...)
			return
		}
	}
}

// UnbindAll removes every recorded listener. Calling it again, or on a
// binder without registrations, does nothing.
func (b *EventBinder) UnbindAll() {
	for _, bd := range b.bindings {
		bd.target.RemoveEventListener(bd.event, bd.listener)
	}
	b.bindings = nil
}

// Len returns the number of live registrations.
func (b *EventBinder) Len() int {
	return len(b.bindings)
}
