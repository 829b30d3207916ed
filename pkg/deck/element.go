// Package deck holds the in-memory element tree slidescroll operates on.
//
// A deck document mirrors the small part of a browser DOM the slide
// controller needs: a root element carrying state classes, a body, a
// container whose children are the slides, attributes, data annotations,
// inline style and a tiny selector engine.
package deck

import (
	"slices"
	"strings"
)

// Element is a node in a deck document.
type Element struct {
	Tag string
	// Text is the literal text of leaf nodes (spans, inline code, text runs).
	Text string
	// Source is the markdown a section element renders from.
	Source string

	attrs   map[string]string
	data    map[string]any
	style   map[string]string
	classes []string

	children []*Element
	parent   *Element
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// Attr returns the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	if name == "class" {
		if len(e.classes) == 0 {
			return "", false
		}
		return strings.Join(e.classes, " "), true
	}
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets an attribute. Setting "class" replaces the class list.
func (e *Element) SetAttr(name, value string) *Element {
	if name == "class" {
		e.classes = nil
		for _, c := range strings.Fields(value) {
			e.AddClass(c)
		}
		return e
	}
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
	return e
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) *Element {
	if name == "class" {
		e.classes = nil
		return e
	}
	delete(e.attrs, name)
	return e
}

// ID is shorthand for the id attribute.
func (e *Element) ID() string {
	return e.attrs["id"]
}

// Data returns a data annotation.
func (e *Element) Data(key string) (any, bool) {
	v, ok := e.data[key]
	return v, ok
}

// DataString returns a data annotation rendered as a string, or "".
func (e *Element) DataString(key string) string {
	v, ok := e.data[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return stringify(v)
}

// DataMap returns a copy of all data annotations.
func (e *Element) DataMap() map[string]any {
	out := make(map[string]any, len(e.data))
	for k, v := range e.data {
		out[k] = v
	}
	return out
}

// SetData stores a data annotation.
func (e *Element) SetData(key string, value any) *Element {
	if e.data == nil {
		e.data = make(map[string]any)
	}
	e.data[key] = value
	return e
}

// RemoveData deletes a data annotation.
func (e *Element) RemoveData(key string) *Element {
	delete(e.data, key)
	return e
}

// Style returns an inline style property.
func (e *Element) Style(prop string) (string, bool) {
	v, ok := e.style[prop]
	return v, ok
}

// SetStyle sets an inline style property.
func (e *Element) SetStyle(prop, value string) *Element {
	if e.style == nil {
		e.style = make(map[string]string)
	}
	e.style[prop] = value
	return e
}

// RemoveStyle deletes one inline style property.
func (e *Element) RemoveStyle(prop string) *Element {
	delete(e.style, prop)
	return e
}

// ClearStyle drops the whole inline style, like removing the style attribute.
func (e *Element) ClearStyle() *Element {
	e.style = nil
	return e
}

// HasStyle reports whether any inline style is set.
func (e *Element) HasStyle() bool {
	return len(e.style) > 0
}

// AddClass adds a class if not already present.
func (e *Element) AddClass(name string) *Element {
	if name == "" || e.HasClass(name) {
		return e
	}
	e.classes = append(e.classes, name)
	return e
}

// RemoveClass removes a class if present.
func (e *Element) RemoveClass(name string) *Element {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == name })
	return e
}

// HasClass reports whether the element carries the class.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// Classes returns a copy of the class list in insertion order.
func (e *Element) Classes() []string {
	return slices.Clone(e.classes)
}

// Children returns the direct children.
func (e *Element) Children() []*Element {
	return e.children
}

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element {
	return e.parent
}

// Append adds children at the end.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		c.detach()
		c.parent = e
		e.children = append(e.children, c)
	}
	return e
}

// InsertAfter places sibling directly after e in e's parent.
func (e *Element) InsertAfter(sibling *Element) {
	p := e.parent
	if p == nil {
		return
	}
	sibling.detach()
	i := slices.Index(p.children, e)
	sibling.parent = p
	p.children = slices.Insert(p.children, i+1, sibling)
}

// Remove detaches the element from its parent.
func (e *Element) Remove() {
	e.detach()
}

// Empty removes all children.
func (e *Element) Empty() *Element {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	return e
}

func (e *Element) detach() {
	p := e.parent
	if p == nil {
		return
	}
	p.children = slices.DeleteFunc(p.children, func(c *Element) bool { return c == e })
	e.parent = nil
}

// TextContent returns the concatenated text of the element and its descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.collectText(&b)
	return strings.TrimSpace(b.String())
}

func (e *Element) collectText(b *strings.Builder) {
	b.WriteString(e.Text)
	for _, c := range e.children {
		c.collectText(b)
	}
}

// Document is a parsed deck.
type Document struct {
	Name string
	// Root is the document root; state classes are applied here.
	Root *Element
	Body *Element
	// Container holds one child element per markdown section.
	Container *Element
}

// NewDocument creates an empty document with root, body and container.
func NewDocument(name string) *Document {
	root := NewElement("html")
	body := NewElement("body")
	container := NewElement("main")
	root.Append(body)
	body.Append(container)
	return &Document{Name: name, Root: root, Body: body, Container: container}
}
