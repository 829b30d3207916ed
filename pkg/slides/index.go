package slides

import "strconv"

// Target addresses a slide either by ordinal position or by navigation key.
type Target interface {
	isTarget()
	String() string
}

// Index targets a slide by position.
type Index int

// Key targets a slide by navigation key.
type Key string

func (Index) isTarget() {}
func (Key) isTarget()   {}

func (i Index) String() string { return strconv.Itoa(int(i)) }
func (k Key) String() string   { return string(k) }

// Resolve maps a target to a valid slide index. Registered keys map to their
// position, in-range indices pass through, and everything else (unknown
// keys, negative or too large indices, an empty registry) yields 0.
func (r *Registry) Resolve(t Target) int {
	switch v := t.(type) {
	case Key:
		if i, ok := r.byKey[string(v)]; ok {
			return i
		}
	case Index:
		if int(v) >= 0 && int(v) < len(r.slides) {
			return int(v)
		}
	}
	return 0
}

// Lookup reports the position of a registered key.
func (r *Registry) Lookup(key string) (int, bool) {
	i, ok := r.byKey[key]
	return i, ok
}
