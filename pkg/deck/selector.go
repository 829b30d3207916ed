package deck

import (
	"fmt"
	"strings"
)

// selector is a single compound selector, optionally restricted to direct
// children with a leading ">".
type selector struct {
	childOnly bool
	any       bool
	tag       string
	id        string
	classes   []string
}

func parseSelector(s string) (selector, bool) {
	var sel selector
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, ">") {
		sel.childOnly = true
		s = strings.TrimSpace(s[1:])
	}
	if s == "" || strings.ContainsAny(s, " >+~[]:,") {
		return sel, false
	}
	if s == "*" {
		sel.any = true
		return sel, true
	}

	// Split into tag, #id and .class parts.
	rest := s
	i := strings.IndexAny(rest, ".#")
	if i < 0 {
		sel.tag = strings.ToLower(rest)
		return sel, true
	}
	sel.tag = strings.ToLower(rest[:i])
	rest = rest[i:]
	for rest != "" {
		marker := rest[0]
		rest = rest[1:]
		j := strings.IndexAny(rest, ".#")
		part := rest
		if j >= 0 {
			part, rest = rest[:j], rest[j:]
		} else {
			rest = ""
		}
		if part == "" {
			return sel, false
		}
		if marker == '#' {
			sel.id = part
		} else {
			sel.classes = append(sel.classes, part)
		}
	}
	return sel, true
}

func (s selector) matches(e *Element) bool {
	if strings.HasPrefix(e.Tag, "#") {
		return false
	}
	if s.any {
		return true
	}
	if s.tag != "" && s.tag != "*" && e.Tag != s.tag {
		return false
	}
	if s.id != "" && e.ID() != s.id {
		return false
	}
	for _, c := range s.classes {
		if !e.HasClass(c) {
			return false
		}
	}
	return true
}

// Find returns the descendants matching selector in document order.
// Unsupported selectors match nothing.
func (e *Element) Find(sel string) []*Element {
	s, ok := parseSelector(sel)
	if !ok {
		return nil
	}
	var out []*Element
	if s.childOnly {
		for _, c := range e.children {
			if s.matches(c) {
				out = append(out, c)
			}
		}
		return out
	}
	var walk func(*Element)
	walk = func(n *Element) {
		for _, c := range n.children {
			if s.matches(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// First returns the first descendant matching selector, or nil.
func (e *Element) First(sel string) *Element {
	if found := e.Find(sel); len(found) > 0 {
		return found[0]
	}
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(v)
	}
}
