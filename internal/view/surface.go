package view

import "adminviews/internal/dom"

// Surface is the container a Manager renders into.
type Surface interface {
	Clear()
	AppendHeader(header *dom.Element)
	AppendRow(row *dom.Element)
	Children() []*dom.Element
}

// ElementSurface renders into the children of a container element.
type ElementSurface struct {
	container *dom.Element
}

// NewElementSurface wraps container.
func NewElementSurface(container *dom.Element) *ElementSurface {
	return &ElementSurface{container: container}
}

func (s *ElementSurface) Clear()                      { s.container.ReplaceChildren() }
func (s *ElementSurface) AppendHeader(h *dom.Element) { s.container.AppendChild(h) }
func (s *ElementSurface) AppendRow(r *dom.Element)    { s.container.AppendChild(r) }
func (s *ElementSurface) Children() []*dom.Element    { return s.container.Children() }

// Container returns the wrapped element.
func (s *ElementSurface) Container() *dom.Element { return s.container }
