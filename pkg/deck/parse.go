package deck

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vanderheijden86/slidescroll/pkg/metrics"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

var (
	breakLine     = regexp.MustCompile(`^ {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	fenceLine     = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
	headingAttrs  = regexp.MustCompile(`^( {0,3}#{1,6}[ \t].*?)[ \t]*\{[^{}]*\}[ \t]*$`)
	markdownParse = goldmark.New(goldmark.WithParserOptions(parser.WithHeadingAttribute()))
)

// Load reads and parses a deck file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}
	doc, err := Parse(filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Parse builds a document from markdown source.
//
// Optional YAML frontmatter becomes data on the container. The body is split
// into sections on thematic breaks; each section becomes one container
// child whose attributes come from the first heading's attribute block
// (`## Title {#id .class data-key=value}`).
func Parse(name string, source []byte) (*Document, error) {
	defer metrics.Timer(metrics.DeckParse)()
	doc := NewDocument(name)

	front, body, err := splitFrontmatter(source)
	if err != nil {
		return nil, err
	}
	for k, v := range front {
		doc.Container.SetData(k, v)
	}

	for _, section := range splitSections(string(body)) {
		doc.Container.Append(parseSection(section))
	}
	return doc, nil
}

// splitFrontmatter separates a leading `---` delimited YAML mapping from the
// body. A leading block that is not a YAML mapping is left in the body.
func splitFrontmatter(content []byte) (map[string]any, []byte, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	open := []byte("---\n")
	if !bytes.HasPrefix(content, open) {
		return nil, content, nil
	}
	rest := content[len(open):]
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		if !bytes.HasSuffix(rest, []byte("\n---")) {
			return nil, content, nil
		}
		end = len(rest) - len("\n---")
	}

	var front map[string]any
	if err := yaml.Unmarshal(rest[:end], &front); err != nil {
		return nil, content, nil
	}
	if front == nil {
		return nil, content, nil
	}
	bodyStart := end + len("\n---\n")
	if bodyStart > len(rest) {
		bodyStart = len(rest)
	}
	return front, rest[bodyStart:], nil
}

type rawSection struct {
	original string
	stripped string
}

// splitSections cuts markdown into sections at thematic breaks outside
// fenced code. A dash line right under paragraph text is a setext heading
// underline and does not split.
func splitSections(body string) []rawSection {
	var (
		sections []rawSection
		original []string
		stripped []string
		fence    string
		prevText bool
	)
	flush := func() {
		o := strings.TrimSpace(strings.Join(original, "\n"))
		if o != "" {
			sections = append(sections, rawSection{
				original: o,
				stripped: strings.TrimSpace(strings.Join(stripped, "\n")),
			})
		}
		original = original[:0]
		stripped = stripped[:0]
	}

	for _, line := range strings.Split(body, "\n") {
		if m := fenceLine.FindStringSubmatch(line); m != nil {
			switch {
			case fence == "":
				fence = m[1]
			case m[1][0] == fence[0] && len(m[1]) >= len(fence):
				fence = ""
			}
			original = append(original, line)
			stripped = append(stripped, line)
			prevText = false
			continue
		}
		if fence != "" {
			original = append(original, line)
			stripped = append(stripped, line)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if breakLine.MatchString(line) && !(strings.HasPrefix(trimmed, "-") && prevText) {
			flush()
			prevText = false
			continue
		}

		original = append(original, line)
		stripped = append(stripped, headingAttrs.ReplaceAllString(line, "$1"))
		prevText = trimmed != "" && !strings.HasPrefix(trimmed, "#")
	}
	flush()
	return sections
}

// parseSection converts one section into an element subtree. Goldmark sees
// the attribute-bearing markdown; the stripped form is kept for rendering.
func parseSection(raw rawSection) *Element {
	section := NewElement("section")
	section.Source = raw.stripped

	source := []byte(raw.original)
	root := markdownParse.Parser().Parse(text.NewReader(source))

	lifted := false
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*gmast.Heading); ok && !lifted && h.Attributes() != nil {
			liftAttributes(section, h.Attributes())
			lifted = true
		}
		section.Append(convert(n, source))
	}
	return section
}

func liftAttributes(section *Element, attrs []gmast.Attribute) {
	for _, a := range attrs {
		name := string(a.Name)
		value := a.Value
		if b, ok := value.([]byte); ok {
			value = string(b)
		}
		switch {
		case name == "id":
			section.SetAttr("id", stringify(value))
		case name == "class":
			for _, c := range strings.Fields(stringify(value)) {
				section.AddClass(c)
			}
		case strings.HasPrefix(name, "data-"):
			section.SetData(strings.TrimPrefix(name, "data-"), value)
		default:
			section.SetAttr(name, stringify(value))
		}
	}
}

func convert(n gmast.Node, source []byte) *Element {
	var el *Element
	switch node := n.(type) {
	case *gmast.Heading:
		el = NewElement(fmt.Sprintf("h%d", node.Level))
	case *gmast.Paragraph, *gmast.TextBlock:
		el = NewElement("p")
	case *gmast.Emphasis:
		if node.Level >= 2 {
			el = NewElement("strong")
		} else {
			el = NewElement("em")
		}
	case *gmast.CodeSpan:
		el = NewElement("code")
	case *gmast.FencedCodeBlock, *gmast.CodeBlock:
		el = NewElement("pre")
		var b strings.Builder
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(source))
		}
		el.Text = b.String()
		return el
	case *gmast.List:
		if node.IsOrdered() {
			el = NewElement("ol")
		} else {
			el = NewElement("ul")
		}
	case *gmast.ListItem:
		el = NewElement("li")
	case *gmast.Blockquote:
		el = NewElement("blockquote")
	case *gmast.Link:
		el = NewElement("a")
		el.SetAttr("href", string(node.Destination))
	case *gmast.Text:
		el = NewElement("#text")
		el.Text = string(node.Segment.Value(source))
		if node.SoftLineBreak() || node.HardLineBreak() {
			el.Text += " "
		}
		return el
	case *gmast.String:
		el = NewElement("#text")
		el.Text = string(node.Value)
		return el
	default:
		if n.Type() == gmast.TypeBlock {
			el = NewElement("div")
		} else {
			el = NewElement("span")
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		el.Append(convert(c, source))
	}
	return el
}
