// Package config handles loading and saving slidescroll configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/slidescroll/config.yaml
//   - State:   ~/.local/state/slidescroll/ (last position per deck)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/slidescroll/pkg/slides"
	"gopkg.in/yaml.v3"
)

const appName = "slidescroll"

// Deck is a deck registered in the config, offered by the picker.
type Deck struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// NavigationConfig overrides slide navigation defaults. Zero values keep the
// defaults; deck frontmatter and command-line flags override these in turn.
type NavigationConfig struct {
	PagesSelector      string  `yaml:"pages_selector,omitempty"`
	CSS3               *bool   `yaml:"css3,omitempty"` // nil: detect from the terminal
	InitialPage        int     `yaml:"initial_page,omitempty"`
	GenerateNavigation *bool   `yaml:"generate_navigation,omitempty"`
	ActiveClassName    string  `yaml:"active_class_name,omitempty"`
	AnimationDuration  string  `yaml:"animation_duration,omitempty"` // e.g. "800ms"
	Namespace          string  `yaml:"namespace,omitempty"`
	SwipeThreshold     float64 `yaml:"swipe_threshold,omitempty"` // pixels
}

// UIConfig holds terminal UI preferences.
type UIConfig struct {
	Theme      string `yaml:"theme,omitempty"`       // auto, dark, light
	CellHeight int    `yaml:"cell_height,omitempty"` // pixels per terminal row, for swipes
	LiveReload *bool  `yaml:"live_reload,omitempty"`
}

// DiscoveryConfig controls where the picker looks for decks.
type DiscoveryConfig struct {
	ScanPaths []string `yaml:"scan_paths,omitempty"`
	MaxDepth  int      `yaml:"max_depth,omitempty"`
}

// Config is the top-level configuration for slidescroll.
type Config struct {
	Decks      []Deck           `yaml:"decks,omitempty"`
	Favorites  map[int]string   `yaml:"favorites,omitempty"` // Number key (1-9) -> deck name
	Navigation NavigationConfig `yaml:"navigation,omitempty"`
	UI         UIConfig         `yaml:"ui,omitempty"`
	Discovery  DiscoveryConfig  `yaml:"discovery,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Favorites: make(map[int]string),
		UI: UIConfig{
			Theme:      "auto",
			CellHeight: 16,
		},
		Discovery: DiscoveryConfig{
			MaxDepth: 2,
		},
	}
}

// ConfigDir returns the XDG config directory for slidescroll.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// StateDir returns the XDG state directory for slidescroll.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", appName)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// StatePath returns the fragment database path.
func StatePath() string {
	dir := StateDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "fragments.db")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if d := cfg.Navigation.AnimationDuration; d != "" {
		if _, err := time.ParseDuration(d); err != nil {
			return cfg, fmt.Errorf("parsing config: invalid animation_duration %q: %w", d, err)
		}
	}

	if cfg.Favorites == nil {
		cfg.Favorites = make(map[int]string)
	}
	for i := range cfg.Decks {
		cfg.Decks[i].Path = expandHome(cfg.Decks[i].Path)
	}
	for i := range cfg.Discovery.ScanPaths {
		cfg.Discovery.ScanPaths[i] = expandHome(cfg.Discovery.ScanPaths[i])
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// SlideOptions layers the navigation settings over the defaults. capable is
// the terminal's animation capability, used when css3 is unset.
func (c Config) SlideOptions(capable bool) slides.Options {
	opts := slides.DefaultOptions()
	n := c.Navigation
	if n.PagesSelector != "" {
		opts.PagesSelector = n.PagesSelector
	}
	opts.CSS3 = capable
	if n.CSS3 != nil {
		opts.CSS3 = *n.CSS3
	}
	if n.InitialPage > 0 {
		opts.InitialPage = n.InitialPage
	}
	if n.GenerateNavigation != nil {
		opts.GenerateNavigation = *n.GenerateNavigation
	}
	if n.ActiveClassName != "" {
		opts.ActiveClassName = n.ActiveClassName
	}
	if d, err := time.ParseDuration(n.AnimationDuration); err == nil && d > 0 {
		opts.AnimationDuration = d
	}
	if n.Namespace != "" {
		opts.Namespace = n.Namespace
	}
	return opts
}

// LiveReload reports whether decks are reloaded on change. Defaults to true.
func (c Config) LiveReload() bool {
	return c.UI.LiveReload == nil || *c.UI.LiveReload
}

// FindDeck returns the deck with the given name, or nil.
func (c Config) FindDeck(name string) *Deck {
	for i := range c.Decks {
		if strings.EqualFold(c.Decks[i].Name, name) {
			return &c.Decks[i]
		}
	}
	return nil
}

// FavoriteDeck returns the deck assigned to number key n (1-9), or nil.
func (c Config) FavoriteDeck(n int) *Deck {
	name, ok := c.Favorites[n]
	if !ok {
		return nil
	}
	return c.FindDeck(name)
}

// SetFavorite assigns a deck name to a number key (1-9).
func (c *Config) SetFavorite(n int, deckName string) {
	if c.Favorites == nil {
		c.Favorites = make(map[int]string)
	}
	if deckName == "" {
		delete(c.Favorites, n)
	} else {
		c.Favorites[n] = deckName
	}
}

// AddDeck registers a deck unless a deck with the same path is known.
func (c *Config) AddDeck(name, path string) bool {
	for _, d := range c.Decks {
		if d.Path == path {
			return false
		}
	}
	c.Decks = append(c.Decks, Deck{Name: name, Path: path})
	return true
}

// ResolvedPath returns the deck path with ~ expanded.
func (d Deck) ResolvedPath() string {
	return expandHome(d.Path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
