//go:build ignore

// generate_testdata.go creates sample decks for trying the viewer and for
// timing deck builds with --stats.
// Usage: go run scripts/generate_testdata.go [output-dir]
//
// Creates:
//
//	<dir>/small.md   (8 slides)
//	<dir>/medium.md  (60 slides)
//	<dir>/large.md   (400 slides)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/slidescroll/pkg/testutil"
)

type deckSpec struct {
	name      string
	size      int
	bodyLines int
	css3      bool
}

var decks = []deckSpec{
	{"small", 8, 3, true},
	{"medium", 60, 6, true},
	{"large", 400, 12, false},
}

func main() {
	outputDir := "testdata/decks"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, d := range decks {
		fmt.Printf("Generating %s deck (%d slides)...\n", d.name, d.size)

		cfg := testutil.DefaultConfig()
		cfg.Seed = int64(d.size) // Reproducible per-size
		cfg.BodyLines = d.bodyLines
		cfg.KeyMix = []testutil.KeyStyle{testutil.KeyID, testutil.KeyTitle, testutil.KeyNone}
		cfg.Frontmatter = fmt.Sprintf("css3: %v\nanimation-duration: 600", d.css3)
		fx := testutil.New(cfg).Deck(d.size)

		outputPath := filepath.Join(outputDir, d.name+".md")
		if err := os.WriteFile(outputPath, []byte(fx.Source), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", outputPath, err)
			os.Exit(1)
		}

		fmt.Printf("  Written %s (%d bytes, first key %s)\n", outputPath, len(fx.Source), fx.Keys[0])
	}

	fmt.Println("\nDone! Sample decks created in", outputDir)
}
