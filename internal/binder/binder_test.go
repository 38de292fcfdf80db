package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"adminviews/internal/dom"
)

func TestUnbindAllStopsHandlers(t *testing.T) {
	b := New()
	sel := dom.NewSelect()
	win := dom.NewWindow("/", nil)

	var calls int
	inc := dom.NewListener(func(*dom.Event) { calls++ })
	b.Bind(sel, dom.EventChange, inc)
	b.Bind(win, dom.EventPopState, inc)
	assert.Equal(t, 2, b.Len())

	sel.DispatchEvent(dom.NewEvent(dom.EventChange))
	win.DispatchEvent(dom.NewEvent(dom.EventPopState))
	assert.Equal(t, 2, calls)

	b.UnbindAll()
	sel.DispatchEvent(dom.NewEvent(dom.EventChange))
	win.DispatchEvent(dom.NewEvent(dom.EventPopState))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, sel.ListenerCount(dom.EventChange))
	assert.Equal(t, 0, win.ListenerCount(dom.EventPopState))
}

func TestUnbindAllIsIdempotent(t *testing.T) {
	var b EventBinder
	assert.NotPanics(t, func() {
		b.UnbindAll()
		b.UnbindAll()
	})

	btn := dom.NewElement("button")
	b.Bind(btn, dom.EventClick, dom.NewListener(func(*dom.Event) {}))
	b.UnbindAll()
	b.UnbindAll()
	assert.Equal(t, 0, btn.ListenerCount(dom.EventClick))
}

func TestUnbindExactTriple(t *testing.T) {
	b := New()
	btn := dom.NewElement("button")
	other := dom.NewElement("button")

	var a, c int
	la := dom.NewListener(func(*dom.Event) { a++ })
	lc := dom.NewListener(func(*dom.Event) { c++ })
	b.Bind(btn, dom.EventClick, la)
	b.Bind(btn, dom.EventClick, lc)

	// not recorded: different element, different event
	b.Unbind(other, dom.EventClick, la)
	b.Unbind(btn, dom.EventChange, la)
	assert.Equal(t, 2, b.Len())

	b.Unbind(btn, dom.EventClick, la)
	btn.Click()
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, c)
	assert.Equal(t, 1, b.Len())
}
