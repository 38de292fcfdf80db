// Package dom is the small document model the dashboard renders into.
// Elements carry listeners and children the way browser nodes do, so the
// view and results managers can be driven by events and inspected in tests.
package dom

import "strings"

// Option is one entry of a select element.
type Option struct {
	Value string
	Label string
}

// Element is a node of the document tree.
type Element struct {
	Tag       string
	ClassName string
	Text      string
	Href      string
	Value     string

	options   []Option
	children  []*Element
	listeners map[string][]*Listener
}

// NewElement creates an element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: strings.ToLower(tag)}
}

// NewSelect creates a select element with the given options.
func NewSelect(options ...Option) *Element {
	el := NewElement("select")
	el.SetOptions(options)
	return el
}

// AppendChild adds child as the last child of e.
func (e *Element) AppendChild(child *Element) {
	e.children = append(e.children, child)
}

// ReplaceChildren drops all children of e and appends the given ones.
func (e *Element) ReplaceChildren(children ...*Element) {
	e.children = append([]*Element(nil), children...)
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// ChildrenByTag returns the direct children with the given tag.
func (e *Element) ChildrenByTag(tag string) []*Element {
	var out []*Element
	for _, c := range e.children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// TextContent joins the text of e and all of its descendants.
func (e *Element) TextContent() string {
	var sb strings.Builder
	sb.WriteString(e.Text)
	for _, c := range e.children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// SetOptions replaces the options of a select element.
func (e *Element) SetOptions(options []Option) {
	e.options = append([]Option(nil), options...)
}

// Options returns a copy of the select options.
func (e *Element) Options() []Option {
	return append([]Option(nil), e.options...)
}

// HasOption reports whether value is one of the select options.
func (e *Element) HasOption(value string) bool {
	for _, o := range e.options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// SelectedIndex returns the index of the option matching Value, or -1.
func (e *Element) SelectedIndex() int {
	for i, o := range e.options {
		if o.Value == e.Value {
			return i
		}
	}
	return -1
}
