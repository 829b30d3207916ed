package slides

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vanderheijden86/slidescroll/pkg/deck"
)

// Backend moves the slide container to a slide's offset. The renderer
// watches the container style and reports completion back through the
// controller's TransitionEnd.
type Backend interface {
	Name() string
	Move(container *deck.Element, index int)
}

// TransformBackend translates the container; renderers animate it.
type TransformBackend struct{}

// Name implements Backend.
func (TransformBackend) Name() string { return "transform" }

// Move implements Backend.
func (TransformBackend) Move(container *deck.Element, index int) {
	container.SetStyle("transform", fmt.Sprintf("translate3d(0,%s,0)", percent(-100*index)))
}

// OffsetBackend positions the container with an absolute top offset.
type OffsetBackend struct{}

// Name implements Backend.
func (OffsetBackend) Name() string { return "offset" }

// Move implements Backend.
func (OffsetBackend) Move(container *deck.Element, index int) {
	container.SetStyle("top", percent(-100*index))
}

// BackendFor selects the backend once, from the css3 capability flag.
func BackendFor(css3 bool) Backend {
	if css3 {
		return TransformBackend{}
	}
	return OffsetBackend{}
}

var translateY = regexp.MustCompile(`^translate3d\(\s*[^,]*,\s*(-?\d+)%\s*,[^)]*\)$`)

// ContainerOffset reads the container's vertical offset in percent of the
// viewport height. animated reports whether it came from a transform.
func ContainerOffset(container *deck.Element) (pct int, animated bool, ok bool) {
	if t, has := container.Style("transform"); has {
		if m := translateY.FindStringSubmatch(t); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true, true
			}
		}
	}
	if top, has := container.Style("top"); has {
		n, err := strconv.Atoi(strings.TrimSuffix(top, "%"))
		if err == nil {
			return n, false, true
		}
	}
	return 0, false, false
}
