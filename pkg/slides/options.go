// Package slides implements the slide registry, the navigation index and the
// transition controller that owns the current slide.
package slides

import (
	"strconv"
	"strings"
	"time"
)

// Option defaults.
const (
	DefaultPagesSelector     = "> *"
	DefaultActiveClassName   = "active"
	DefaultAnimationDuration = 1000 * time.Millisecond
	DefaultNamespace         = "slidescroll"
)

// Options configures one slidescroll instance.
type Options struct {
	// PagesSelector selects the slides among the container's descendants.
	PagesSelector string
	// CSS3 picks the transform backend; false picks the positional offset
	// backend. Callers set it from terminal capability.
	CSS3 bool
	// InitialPage is the slide shown on enable when the fragment names none.
	InitialPage        int
	GenerateNavigation bool
	ActiveClassName    string
	// AnimationDuration must match the renderer's transition time for wheel
	// debouncing to line up with the animation.
	AnimationDuration time.Duration
	// Namespace prefixes every generated class name and data annotation.
	Namespace string

	// BeforeMove runs before a transition starts. It cannot cancel the move.
	BeforeMove func(previous, target int)
	// Moved runs when the renderer reports the transition finished.
	Moved func(index int, key string)
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		PagesSelector:      DefaultPagesSelector,
		CSS3:               true,
		InitialPage:        0,
		GenerateNavigation: true,
		ActiveClassName:    DefaultActiveClassName,
		AnimationDuration:  DefaultAnimationDuration,
		Namespace:          DefaultNamespace,
	}
}

// Normalized fills empty string and duration fields with defaults.
func (o Options) Normalized() Options {
	if o.PagesSelector == "" {
		o.PagesSelector = DefaultPagesSelector
	}
	if o.ActiveClassName == "" {
		o.ActiveClassName = DefaultActiveClassName
	}
	if o.AnimationDuration <= 0 {
		o.AnimationDuration = DefaultAnimationDuration
	}
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	return o
}

// Class returns the namespaced form of a class or data name.
func (o Options) Class(name string) string {
	return o.Namespace + "-" + name
}

// ApplyData overlays recognised option names found in data annotations
// (deck frontmatter). Unknown keys and values of the wrong type are ignored.
func (o Options) ApplyData(data map[string]any) Options {
	for k, v := range data {
		switch normalizeKey(k) {
		case "pagesselector":
			if s, ok := v.(string); ok {
				o.PagesSelector = s
			}
		case "css3":
			if b, ok := v.(bool); ok {
				o.CSS3 = b
			}
		case "initialpage":
			if n, ok := AsInt(v); ok {
				o.InitialPage = n
			}
		case "generatenavigation":
			if b, ok := v.(bool); ok {
				o.GenerateNavigation = b
			}
		case "activeclassname":
			if s, ok := v.(string); ok {
				o.ActiveClassName = s
			}
		case "animationduration":
			if n, ok := AsInt(v); ok {
				o.AnimationDuration = time.Duration(n) * time.Millisecond
			} else if s, ok := v.(string); ok {
				if d, err := time.ParseDuration(s); err == nil {
					o.AnimationDuration = d
				}
			}
		case "namespace":
			if s, ok := v.(string); ok {
				o.Namespace = s
			}
		}
	}
	return o
}

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	k = strings.ReplaceAll(k, "-", "")
	return strings.ReplaceAll(k, "_", "")
}

// AsInt reports v as an int when it is numeric. Numeric strings do not count.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func percent(n int) string {
	return strconv.Itoa(n) + "%"
}
