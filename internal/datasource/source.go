// Package datasource discovers slide decks for the picker: decks registered
// in the config and markdown files found under the configured scan paths.
package datasource

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vanderheijden86/slidescroll/pkg/config"
)

// SourceType identifies where a deck was found
type SourceType string

const (
	// SourceTypeConfig is a deck listed in config.yaml
	SourceTypeConfig SourceType = "config"
	// SourceTypeScan is a markdown file found under a scan path
	SourceTypeScan SourceType = "scan"
)

// Priority values for source types (higher = listed first)
const (
	PriorityConfig = 100
	PriorityScan   = 50
)

// DeckSource is a deck the picker can offer.
type DeckSource struct {
	// Type identifies the source type
	Type SourceType `json:"type"`
	// Name is the configured name, or the file name for scanned decks
	Name string `json:"name"`
	// Path is the absolute path to the deck file
	Path string `json:"path"`
	// Priority orders config decks before scanned ones
	Priority int `json:"priority"`
	// ModTime is the last modification time of the file
	ModTime time.Time `json:"mod_time"`
	// Valid indicates whether the deck passed validation
	Valid bool `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false)
	ValidationError string `json:"validation_error,omitempty"`
	// SlideCount is the number of sections (set during validation)
	SlideCount int `json:"slide_count"`
	// Size is the file size in bytes
	Size int64 `json:"size"`
}

// String returns a human-readable description of the source
func (s DeckSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, slides=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.SlideCount, status)
}

// Label is the picker entry for the deck.
func (s DeckSource) Label() string {
	if s.SlideCount > 0 {
		return fmt.Sprintf("%s (%d slides)", s.Name, s.SlideCount)
	}
	return s.Name
}

// DiscoveryOptions configures deck discovery
type DiscoveryOptions struct {
	// Decks are the decks registered in the config
	Decks []config.Deck
	// ScanPaths are directories searched for *.md files
	ScanPaths []string
	// MaxDepth limits how deep scan paths are searched (0 = only the path itself)
	MaxDepth int
	// ValidateAfterDiscovery parses each discovered deck
	ValidateAfterDiscovery bool
	// IncludeInvalid includes decks that failed validation in results
	IncludeInvalid bool
	// Verbose enables detailed logging during discovery
	Verbose bool
	// Logger receives log messages when Verbose is true
	Logger func(msg string)
}

// OptionsFromConfig builds discovery options from the user configuration.
func OptionsFromConfig(cfg config.Config) DiscoveryOptions {
	return DiscoveryOptions{
		Decks:                  cfg.Decks,
		ScanPaths:              cfg.Discovery.ScanPaths,
		MaxDepth:               cfg.Discovery.MaxDepth,
		ValidateAfterDiscovery: true,
	}
}

// DiscoverDecks finds all decks, config decks first, then the most recently
// modified. A path found both ways is listed once, as the config deck.
func DiscoverDecks(opts DiscoveryOptions) ([]DeckSource, error) {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}

	var sources []DeckSource
	seen := make(map[string]bool)

	for _, d := range opts.Decks {
		path, err := filepath.Abs(d.ResolvedPath())
		if err != nil || seen[path] {
			continue
		}
		src := DeckSource{Type: SourceTypeConfig, Name: d.Name, Path: path, Priority: PriorityConfig}
		if info, err := os.Stat(path); err == nil {
			src.ModTime = info.ModTime()
			src.Size = info.Size()
		} else if opts.Verbose {
			opts.Logger(fmt.Sprintf("Configured deck %s: %v", d.Name, err))
		}
		seen[path] = true
		sources = append(sources, src)
	}

	for _, root := range opts.ScanPaths {
		found, err := scanDecks(expandHome(root), opts)
		if err != nil && opts.Verbose {
			opts.Logger(fmt.Sprintf("Scan warning for %s: %v", root, err))
		}
		for _, src := range found {
			if !seen[src.Path] {
				seen[src.Path] = true
				sources = append(sources, src)
			}
		}
	}

	if opts.ValidateAfterDiscovery {
		for i := range sources {
			if err := ValidateSource(&sources[i]); err != nil && opts.Verbose {
				opts.Logger(fmt.Sprintf("Validation failed for %s: %v", sources[i].Path, err))
			}
		}
	}

	if opts.ValidateAfterDiscovery && !opts.IncludeInvalid {
		var validSources []DeckSource
		for _, s := range sources {
			if s.Valid {
				validSources = append(validSources, s)
			}
		}
		sources = validSources
	}

	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].Priority != sources[j].Priority {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})

	if opts.Verbose {
		opts.Logger(fmt.Sprintf("Discovered %d decks", len(sources)))
	}

	return sources, nil
}

// scanDecks walks root up to opts.MaxDepth directories deep for markdown
// files. Hidden directories are skipped.
func scanDecks(root string, opts DiscoveryOptions) ([]DeckSource, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	baseDepth := strings.Count(root, string(filepath.Separator))

	var sources []DeckSource
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if strings.Count(path, string(filepath.Separator))-baseDepth > opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if !isMarkdown(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		sources = append(sources, DeckSource{
			Type:     SourceTypeScan,
			Name:     strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			Path:     path,
			Priority: PriorityScan,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
		if opts.Verbose {
			opts.Logger(fmt.Sprintf("Found deck: %s (mod=%s)", path, info.ModTime().Format(time.RFC3339)))
		}
		return nil
	})
	return sources, err
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return !strings.EqualFold(name, "README.md")
	}
	return false
}

func expandHome(path string) string {
	return config.Deck{Path: path}.ResolvedPath()
}
