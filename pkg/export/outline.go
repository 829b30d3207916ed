package export

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/slidescroll/pkg/location"
)

// OutlineEntry is one slide in an exported outline.
type OutlineEntry struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	Title string `json:"title"`
	Href  string `json:"href"`
}

// Outline lists a deck's slides with their deep links.
type Outline struct {
	Deck    string         `json:"deck"`
	Current int            `json:"current"`
	Slides  []OutlineEntry `json:"slides"`
}

// BuildOutline collects the outline of d. deckPath prefixes every href.
func BuildOutline(d Deck, deckPath string) Outline {
	out := Outline{Deck: deckPath, Current: d.Current(), Slides: []OutlineEntry{}}
	for _, s := range d.Slides() {
		out.Slides = append(out.Slides, OutlineEntry{
			Index: s.Index,
			Key:   s.Key,
			Title: s.Title,
			Href:  location.Href(deckPath, s.Key),
		})
	}
	return out
}

// WriteOutline writes the outline as indented JSON.
func WriteOutline(w io.Writer, o Outline) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}

// OutlineMarkdown renders the outline as a Markdown list of deep links. The
// current slide is marked.
func OutlineMarkdown(o Outline) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", o.Deck))
	for _, e := range o.Slides {
		title := e.Title
		if title == "" {
			title = e.Key
		}
		marker := ""
		if e.Index == o.Current {
			marker = " *(current)*"
		}
		sb.WriteString(fmt.Sprintf("%d. [%s](%s)%s\n", e.Index+1, escapeLinkText(title), e.Href, marker))
	}
	return sb.String()
}

func escapeLinkText(s string) string {
	r := strings.NewReplacer("[", `\[`, "]", `\]`)
	return r.Replace(s)
}
