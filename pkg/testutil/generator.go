// Package testutil provides markdown deck fixtures and assertions for tests.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"
)

// KeyStyle selects how a generated slide gets its key.
type KeyStyle int

const (
	// KeyNone leaves the slide without attributes: its key is page-<index>.
	KeyNone KeyStyle = iota
	// KeyID gives the heading an {#id}.
	KeyID
	// KeyURL sets the url data attribute.
	KeyURL
	// KeyTitle points the title selector at the heading, keying by its slug.
	KeyTitle
)

func (k KeyStyle) String() string {
	switch k {
	case KeyID:
		return "id"
	case KeyURL:
		return "url"
	case KeyTitle:
		return "title"
	default:
		return "none"
	}
}

// DeckFixture is a generated deck and the keys and titles its slides must
// resolve to.
type DeckFixture struct {
	Description string
	Source      string
	Keys        []string
	Titles      []string
}

// GeneratorConfig controls deck generation.
type GeneratorConfig struct {
	Seed        int64      // Random seed for determinism (0 = 42)
	Namespace   string     // Attribute namespace (default: "slidescroll")
	KeyMix      []KeyStyle // Key style distribution (nil = all KeyID)
	BodyLines   int        // Paragraph lines per slide
	Frontmatter string     // Raw YAML placed between --- fences, if set
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:      42,
		Namespace: "slidescroll",
		KeyMix:    []KeyStyle{KeyID},
		BodyLines: 2,
	}
}

// Generator creates deck fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "slidescroll"
	}
	if len(cfg.KeyMix) == 0 {
		cfg.KeyMix = []KeyStyle{KeyID}
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

var words = []string{
	"scroll", "slide", "deck", "frame", "offset", "anchor",
	"wheel", "swipe", "fragment", "history", "section", "title",
}

// Deck generates a deck of n slides. Keys embed the slide index, so they
// never collide.
func (g *Generator) Deck(n int) DeckFixture {
	fx := DeckFixture{
		Description: fmt.Sprintf("%d slides, key mix %v", n, g.cfg.KeyMix),
		Keys:        make([]string, n),
		Titles:      make([]string, n),
	}

	var sb strings.Builder
	if g.cfg.Frontmatter != "" {
		sb.WriteString("---\n")
		sb.WriteString(strings.TrimRight(g.cfg.Frontmatter, "\n"))
		sb.WriteString("\n---\n\n")
	}

	ns := g.cfg.Namespace
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		style := g.cfg.KeyMix[g.rng.Intn(len(g.cfg.KeyMix))]
		heading := fmt.Sprintf("%s %d", capitalize(g.word()), i)
		switch style {
		case KeyID:
			fx.Keys[i] = fmt.Sprintf("s%d", i)
			fmt.Fprintf(&sb, "# %s {#%s}\n", heading, fx.Keys[i])
		case KeyURL:
			fx.Keys[i] = fmt.Sprintf("u%d", i)
			fmt.Fprintf(&sb, "# %s {data-%s-url=%q}\n", heading, ns, fx.Keys[i])
		case KeyTitle:
			fx.Keys[i] = strings.ToLower(strings.ReplaceAll(heading, " ", "-"))
			fx.Titles[i] = heading
			fmt.Fprintf(&sb, "# %s {data-%s-title-selector=\"h1\"}\n", heading, ns)
		default:
			fx.Keys[i] = fmt.Sprintf("page-%d", i)
			fmt.Fprintf(&sb, "# %s\n", heading)
		}
		if g.cfg.BodyLines > 0 {
			sb.WriteString("\n")
			for l := 0; l < g.cfg.BodyLines; l++ {
				sb.WriteString(g.sentence())
				sb.WriteString("\n")
			}
		}
	}
	fx.Source = sb.String()
	return fx
}

func (g *Generator) word() string {
	return words[g.rng.Intn(len(words))]
}

func capitalize(w string) string {
	return strings.ToUpper(w[:1]) + w[1:]
}

func (g *Generator) sentence() string {
	n := 3 + g.rng.Intn(5)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = g.word()
	}
	return strings.Join(parts, " ") + "."
}

// QuickDeck returns the source of an n-slide deck keyed by id (s0, s1...).
func QuickDeck(n int) string {
	return NewDefault().Deck(n).Source
}

// MixedDeck returns an n-slide deck using every key style.
func MixedDeck(seed int64, n int) DeckFixture {
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.KeyMix = []KeyStyle{KeyNone, KeyID, KeyURL, KeyTitle}
	return New(cfg).Deck(n)
}
