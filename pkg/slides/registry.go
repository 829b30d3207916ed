package slides

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/vanderheijden86/slidescroll/pkg/debug"
	"github.com/vanderheijden86/slidescroll/pkg/deck"
)

// Slide describes one registered slide. Descriptors are created by Build and
// never change afterwards.
type Slide struct {
	Index int
	// Key addresses the slide in the location fragment. Unique per deck
	// unless the author declared duplicates (first one wins on lookup).
	Key string
	// Title is optional display text for the navigation link.
	Title   string
	Element *deck.Element
}

// Registry is the ordered slide list for one enabled deck, plus the
// navigation markup generated for it.
type Registry struct {
	opts   Options
	doc    *deck.Document
	slides []Slide
	byKey  map[string]int
	nav    *deck.Element
	links  []*deck.Element
}

// Build registers every element matched by opts.PagesSelector under the
// document's container, in document order.
func Build(doc *deck.Document, opts Options) *Registry {
	opts = opts.Normalized()
	r := &Registry{
		opts:  opts,
		doc:   doc,
		byKey: make(map[string]int),
	}

	for i, el := range doc.Container.Find(opts.PagesSelector) {
		key, title := r.resolveKey(i, el)

		if id := el.ID(); id != "" {
			el.SetData(opts.Class("id"), id)
			el.RemoveAttr("id")
		}
		el.SetStyle("top", percent(100*i))

		if prev, dup := r.byKey[key]; dup {
			debug.Log("slides: key %q of slide %d already used by slide %d; first wins", key, i, prev)
		} else {
			r.byKey[key] = i
		}
		r.slides = append(r.slides, Slide{Index: i, Key: key, Title: title, Element: el})
	}

	if opts.GenerateNavigation && len(r.slides) > 0 {
		r.buildNavigation()
	}
	return r
}

// resolveKey applies the key precedence: url slug, then element id, then
// the title selector's text, then "page-<index>".
func (r *Registry) resolveKey(i int, el *deck.Element) (key, title string) {
	key = fmt.Sprintf("page-%d", i)

	var selectorText string
	if sel := el.DataString(r.opts.Class("title-selector")); sel != "" {
		if found := el.First(sel); found != nil {
			selectorText = found.TextContent()
		}
	}
	if slug := slugify(selectorText); slug != "" {
		key = slug
	}
	if id := el.ID(); id != "" {
		key = id
	}
	if u := el.DataString(r.opts.Class("url")); u != "" {
		key = u
	}

	title = el.DataString(r.opts.Class("title"))
	if title == "" {
		title = selectorText
	}
	return key, title
}

func (r *Registry) buildNavigation() {
	nav := deck.NewElement("nav").SetAttr("role", "navigation").AddClass(r.opts.Class("nav"))
	for _, s := range r.slides {
		link := deck.NewElement("a").SetAttr("href", "#"+s.Key).SetData("target-slide", s.Index)
		index := deck.NewElement("span").AddClass("index")
		index.Text = strconv.Itoa(s.Index + 1)
		link.Append(index)
		if s.Title != "" {
			space := deck.NewElement("#text")
			space.Text = " "
			title := deck.NewElement("span").AddClass("title")
			title.Text = s.Title
			link.Append(space, title)
		}
		nav.Append(link)
		r.links = append(r.links, link)
	}
	r.doc.Container.InsertAfter(nav)
	r.nav = nav
}

// Teardown undoes Build: styles and slide markers are removed, ids restored
// and the navigation detached.
func (r *Registry) Teardown() {
	for _, s := range r.slides {
		s.Element.ClearStyle()
		if id := s.Element.DataString(r.opts.Class("id")); id != "" {
			s.Element.SetAttr("id", id)
			s.Element.RemoveData(r.opts.Class("id"))
		}
		r.doc.Root.RemoveClass(r.opts.Class(s.Key))
	}
	if r.nav != nil {
		r.nav.Remove()
		r.nav = nil
		r.links = nil
	}
}

// Count returns the number of slides.
func (r *Registry) Count() int {
	return len(r.slides)
}

// Slides returns a copy of the descriptors.
func (r *Registry) Slides() []Slide {
	out := make([]Slide, len(r.slides))
	copy(out, r.slides)
	return out
}

// Slide returns the descriptor at index i.
func (r *Registry) Slide(i int) (Slide, bool) {
	if i < 0 || i >= len(r.slides) {
		return Slide{}, false
	}
	return r.slides[i], true
}

// Key returns the key of slide i, or "" when out of range.
func (r *Registry) Key(i int) string {
	if s, ok := r.Slide(i); ok {
		return s.Key
	}
	return ""
}

// Navigation returns the generated nav element, or nil.
func (r *Registry) Navigation() *deck.Element {
	return r.nav
}

// Links returns the generated navigation links in slide order.
func (r *Registry) Links() []*deck.Element {
	return r.links
}

// setActiveLink moves the active class to link i.
func (r *Registry) setActiveLink(i int) {
	for j, link := range r.links {
		if j == i {
			link.AddClass(r.opts.ActiveClassName)
		} else {
			link.RemoveClass(r.opts.ActiveClassName)
		}
	}
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
