package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/slidescroll/pkg/debug"
	"github.com/vanderheijden86/slidescroll/pkg/metrics"
)

// slideRenderer renders slide markdown with glamour and caches the result
// per slide until the width or the deck changes.
type slideRenderer struct {
	style string
	width int
	tr    *glamour.TermRenderer
	cache map[int]string
}

func newSlideRenderer(style string) *slideRenderer {
	if style == "" {
		style = "auto"
	}
	return &slideRenderer{style: style, cache: make(map[int]string)}
}

// resize drops the cache when the wrap width changes.
func (r *slideRenderer) resize(width int) {
	if width == r.width {
		return
	}
	r.width = width
	r.tr = nil
	r.reset()
}

func (r *slideRenderer) reset() {
	r.cache = make(map[int]string)
}

func (r *slideRenderer) termRenderer() *glamour.TermRenderer {
	if r.tr != nil {
		return r.tr
	}
	wrap := r.width - 4
	if wrap < 20 {
		wrap = 20
	}
	styleOpt := glamour.WithStandardStyle(r.style)
	if r.style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		debug.Log("ui: glamour renderer unavailable: %v", err)
		return nil
	}
	r.tr = tr
	return tr
}

// render returns slide i's markdown as styled terminal text. Sources that
// fail to render are shown as-is.
func (r *slideRenderer) render(i int, source string) string {
	if out, ok := r.cache[i]; ok {
		return out
	}
	defer metrics.Timer(metrics.UIRender)()

	out := source
	if tr := r.termRenderer(); tr != nil {
		if rendered, err := tr.Render(source); err == nil {
			out = strings.TrimRight(rendered, "\n ")
		}
	}
	r.cache[i] = out
	return out
}
