package ui

import (
	"adminviews/internal/dom"
	"adminviews/internal/view"
)

// Page is the document the dashboard renders into: the table container
// plus the controls the results manager binds to.
type Page struct {
	Window      *dom.Window
	Container   *dom.Element
	TableSelect *dom.Element
	SortSelect  *dom.Element
	Direction   *dom.Element
	FilterInput *dom.Element
	FilterClear *dom.Element

	surface *view.ElementSurface
}

// NewPage creates the page elements inside window.
func NewPage(window *dom.Window) *Page {
	container := dom.NewElement("tbody")
	container.ClassName = "results"

	direction := dom.NewElement("button")
	direction.ClassName = "sort-direction"

	filterInput := dom.NewElement("input")
	filterInput.ClassName = "filter-input"

	filterClear := dom.NewElement("button")
	filterClear.ClassName = "filter-clear"
	filterClear.Text = "Clear"

	return &Page{
		Window:      window,
		Container:   container,
		TableSelect: dom.NewSelect(),
		SortSelect:  dom.NewSelect(),
		Direction:   direction,
		FilterInput: filterInput,
		FilterClear: filterClear,
		surface:     view.NewElementSurface(container),
	}
}

// Surface returns the surface wrapping the container.
func (p *Page) Surface() *view.ElementSurface {
	return p.surface
}

// HeaderCells returns the header cell texts of the rendered table.
func (p *Page) HeaderCells() []string {
	children := p.Container.Children()
	if len(children) == 0 {
		return nil
	}
	var cells []string
	for _, th := range children[0].ChildrenByTag("th") {
		cells = append(cells, th.Text)
	}
	return cells
}

// Rows returns the rendered row elements, header excluded.
func (p *Page) Rows() []*dom.Element {
	children := p.Container.Children()
	if len(children) <= 1 {
		return nil
	}
	return children[1:]
}

// RowActions returns the button and link elements of row in render order.
func RowActions(row *dom.Element) []*dom.Element {
	var actions []*dom.Element
	for _, child := range row.Children() {
		if child.Tag == "button" || child.Tag == "a" {
			actions = append(actions, child)
		}
	}
	return actions
}
