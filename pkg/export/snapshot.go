package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/slidescroll/pkg/metrics"
	"github.com/vanderheijden86/slidescroll/pkg/slides"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
)

// Deck is the view of a slidescroll instance the exporters need.
// *slidescroll.Scroller implements it.
type Deck interface {
	Slides() []slides.Slide
	Current() int
	Key() string
}

// SnapshotOptions controls filmstrip snapshot export.
type SnapshotOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title  string // Rendered in the header
	Deck   Deck
}

// SaveSnapshot renders every slide as a card at its resting offset, with the
// viewport drawn around the current one.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Deck == nil || len(opts.Deck.Slides()) == 0 {
		return fmt.Errorf("no slides to export")
	}

	format, path, err := snapshotFormat(opts.Format, opts.Path)
	if err != nil {
		return err
	}
	opts.Path = path

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	defer metrics.Timer(metrics.SnapshotRender)()
	layout := buildFilmstrip(opts)

	switch format {
	case "svg":
		file, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		defer file.Close()
		return renderSVG(file, layout)
	case "png":
		return renderPNG(layout).SavePNG(opts.Path)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

func snapshotFormat(format, path string) (string, string, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg"
			if path != "" && filepath.Ext(path) == "" {
				path += ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return "", "", fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if path == "" {
		return "", "", fmt.Errorf("output path is required")
	}
	return format, path, nil
}

// --- layout ----------------------------------------------------------------

type card struct {
	Index   int
	Key     string
	Title   string
	Lines   []string
	Current bool
	X, Y    float64
	W, H    float64
}

type filmstrip struct {
	Cards  []card
	Width  int
	Height int
	Header float64
	Title  string
	Status string
}

const (
	cardW        = 480.0
	cardH        = 270.0
	cardGap      = 24.0
	padding      = 36.0
	headerHeight = 80.0
	bodyLines    = 9
	bodyChars    = 62
)

func buildFilmstrip(opts SnapshotOptions) filmstrip {
	all := opts.Deck.Slides()
	current := opts.Deck.Current()

	title := opts.Title
	if title == "" {
		title = "slidescroll"
	}
	fs := filmstrip{
		Header: headerHeight,
		Title:  title,
		Status: fmt.Sprintf("[%d/%d] %s", current+1, len(all), opts.Deck.Key()),
		Width:  int(cardW + 2*padding),
	}

	// Cards sit where the container would place them: slide i at i*100%.
	y := headerHeight + padding
	for _, s := range all {
		fs.Cards = append(fs.Cards, card{
			Index:   s.Index,
			Key:     s.Key,
			Title:   s.Title,
			Lines:   cardLines(s),
			Current: s.Index == current,
			X:       padding,
			Y:       y,
			W:       cardW,
			H:       cardH,
		})
		y += cardH + cardGap
	}
	fs.Height = int(y - cardGap + padding)
	return fs
}

func cardLines(s slides.Slide) []string {
	if s.Element == nil {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(s.Element.Source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		lines = append(lines, truncate(line, bodyChars))
		if len(lines) == bodyLines {
			break
		}
	}
	return lines
}

// --- rendering -------------------------------------------------------------

var (
	colorCard     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorActive   = color.RGBA{0xe3, 0xf2, 0xfd, 0xff}
	colorStroke   = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorViewport = color.RGBA{0x6b, 0x80, 0xbf, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle   = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
)

func cardColor(c card) color.RGBA {
	if c.Current {
		return colorActive
	}
	return colorCard
}

func renderPNG(fs filmstrip) *gg.Context {
	dc := gg.NewContext(fs.Width, fs.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(fs.Width)-32, fs.Header-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(fs.Title, 32, 36, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(fs.Status, 32, 56, 0, 0.5)

	for _, c := range fs.Cards {
		drawCard(dc, c)
	}
	return dc
}

func drawCard(dc *gg.Context, c card) {
	dc.SetColor(cardColor(c))
	dc.DrawRoundedRectangle(c.X, c.Y, c.W, c.H, 8)
	dc.Fill()
	if c.Current {
		dc.SetColor(colorViewport)
		dc.SetLineWidth(3)
	} else {
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1.2)
	}
	dc.DrawRoundedRectangle(c.X, c.Y, c.W, c.H, 8)
	dc.Stroke()

	dc.SetColor(colorText)
	dc.DrawStringAnchored(fmt.Sprintf("%d. %s", c.Index+1, truncate(c.Title, 50)), c.X+12, c.Y+20, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored("#"+c.Key, c.X+12, c.Y+38, 0, 0.5)
	for i, line := range c.Lines {
		dc.DrawStringAnchored(line, c.X+12, c.Y+64+float64(i)*18, 0, 0.5)
	}
}

func renderSVG(w io.Writer, fs filmstrip) error {
	canvas := svg.New(w)
	canvas.Start(fs.Width, fs.Height)
	canvas.Rect(0, 0, fs.Width, fs.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, fs.Width-32, int(fs.Header-24), 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))
	canvas.Text(32, 40, fs.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 60, fs.Status, fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))

	for _, c := range fs.Cards {
		x, y := int(c.X), int(c.Y)
		stroke, width := css(colorStroke), "1.2"
		if c.Current {
			stroke, width = css(colorViewport), "3"
		}
		canvas.Gid(c.Key)
		canvas.Roundrect(x, y, int(c.W), int(c.H), 8, 8,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%s", css(cardColor(c)), stroke, width))
		canvas.Text(x+12, y+24, fmt.Sprintf("%d. %s", c.Index+1, truncate(c.Title, 50)),
			fmt.Sprintf("fill:%s;font-size:14px;font-family:monospace;font-weight:bold", css(colorText)))
		canvas.Text(x+12, y+42, "#"+c.Key, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
		for i, line := range c.Lines {
			canvas.Text(x+12, y+68+i*18, line, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
		}
		canvas.Gend()
	}

	canvas.End()
	return nil
}

// --- helpers ---------------------------------------------------------------

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
