package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/slidescroll/pkg/deck"
)

// linkZone is the cell range a navigation link occupies on the nav bar.
type linkZone struct {
	start, end int // [start, end) in cells
	label      string
	link       *deck.Element
}

// navZones lays the links out left to right in width cells. Labels shrink
// evenly when the bar would overflow.
func navZones(links []*deck.Element, width int) []linkZone {
	if len(links) == 0 || width <= 0 {
		return nil
	}
	labels := make([]string, len(links))
	total := 0
	for i, link := range links {
		labels[i] = " " + linkLabel(link) + " "
		total += runewidth.StringWidth(labels[i])
	}
	if total > width {
		each := width/len(links) - 1
		if each < 3 {
			each = 3
		}
		for i := range labels {
			labels[i] = truncate(labels[i], each)
		}
	}

	zones := make([]linkZone, 0, len(links))
	x := 0
	for i, link := range links {
		w := runewidth.StringWidth(labels[i])
		if x+w > width {
			break
		}
		zones = append(zones, linkZone{start: x, end: x + w, label: labels[i], link: link})
		x += w + 1
	}
	return zones
}

// linkLabel is the link text, "<n> <title>", or "<n> <key>" for untitled
// slides.
func linkLabel(link *deck.Element) string {
	text := link.TextContent()
	if strings.Contains(text, " ") {
		return text
	}
	if href, ok := link.Attr("href"); ok {
		return text + " " + strings.TrimPrefix(href, "#")
	}
	return text
}

// zoneAt returns the link under cell x.
func zoneAt(zones []linkZone, x int) *deck.Element {
	for _, z := range zones {
		if x >= z.start && x < z.end {
			return z.link
		}
	}
	return nil
}

// renderNavBar draws the zones, highlighting the link carrying the active
// class.
func renderNavBar(zones []linkZone, activeClass string, theme Theme) string {
	var sb strings.Builder
	x := 0
	for _, z := range zones {
		if z.start > x {
			sb.WriteString(strings.Repeat(" ", z.start-x))
		}
		style := theme.NavLink
		if z.link.HasClass(activeClass) {
			style = theme.NavActive
		}
		sb.WriteString(style.Render(z.label))
		x = z.end
	}
	return sb.String()
}
