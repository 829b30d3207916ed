package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.Theme != "auto" {
		t.Errorf("expected theme 'auto', got %q", cfg.UI.Theme)
	}
	if cfg.UI.CellHeight != 16 {
		t.Errorf("expected cell height 16, got %d", cfg.UI.CellHeight)
	}
	if cfg.Discovery.MaxDepth != 2 {
		t.Errorf("expected max depth 2, got %d", cfg.Discovery.MaxDepth)
	}
	if cfg.Favorites == nil {
		t.Error("expected favorites map to be initialized")
	}
	if !cfg.LiveReload() {
		t.Error("expected live reload on by default")
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("expected default config, got theme %q", cfg.UI.Theme)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
decks:
  - name: keynote
    path: ~/talks/keynote.md
  - name: other
    path: /absolute/deck.md

favorites:
  1: keynote

navigation:
  css3: false
  animation_duration: 600ms
  generate_navigation: false
  namespace: deck

ui:
  theme: dark
  live_reload: false

discovery:
  scan_paths:
    - ~/talks
  max_depth: 1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Decks) != 2 {
		t.Fatalf("expected 2 decks, got %d", len(cfg.Decks))
	}
	home, _ := os.UserHomeDir()
	expectedPath := filepath.Join(home, "talks/keynote.md")
	if cfg.Decks[0].Path != expectedPath {
		t.Errorf("expected expanded path %q, got %q", expectedPath, cfg.Decks[0].Path)
	}
	if cfg.Decks[1].Path != "/absolute/deck.md" {
		t.Errorf("expected absolute path preserved, got %q", cfg.Decks[1].Path)
	}
	if d := cfg.FavoriteDeck(1); d == nil || d.Name != "keynote" {
		t.Error("expected favorite 1 to be keynote")
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected theme 'dark', got %q", cfg.UI.Theme)
	}
	if cfg.LiveReload() {
		t.Error("expected live reload disabled")
	}
	if cfg.Discovery.MaxDepth != 1 {
		t.Errorf("expected max_depth 1, got %d", cfg.Discovery.MaxDepth)
	}

	opts := cfg.SlideOptions(true)
	if opts.CSS3 {
		t.Error("expected css3 from config to override capability")
	}
	if opts.AnimationDuration != 600*time.Millisecond {
		t.Errorf("expected 600ms, got %v", opts.AnimationDuration)
	}
	if opts.GenerateNavigation {
		t.Error("expected navigation disabled")
	}
	if opts.Namespace != "deck" {
		t.Errorf("expected namespace deck, got %q", opts.Namespace)
	}
}

func TestSlideOptions_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.SlideOptions(false)
	if opts.CSS3 {
		t.Error("expected capability to decide css3 when unset")
	}
	if opts.AnimationDuration != time.Second || opts.Namespace != "slidescroll" || !opts.GenerateNavigation {
		t.Errorf("unexpected defaults %+v", opts)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFrom_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("navigation:\n  animation_duration: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid animation_duration")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.AddDeck("one", "/decks/one.md")
	cfg.SetFavorite(3, "one")
	cfg.Navigation.AnimationDuration = "750ms"

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load after save failed: %v", err)
	}
	if len(loaded.Decks) != 1 || loaded.Decks[0].Name != "one" {
		t.Errorf("unexpected decks %+v", loaded.Decks)
	}
	if loaded.Favorites[3] != "one" {
		t.Errorf("expected favorite 3 = 'one', got %q", loaded.Favorites[3])
	}
	if loaded.Navigation.AnimationDuration != "750ms" {
		t.Errorf("expected 750ms, got %q", loaded.Navigation.AnimationDuration)
	}
}

func TestFindDeck(t *testing.T) {
	cfg := Config{
		Decks: []Deck{
			{Name: "alpha", Path: "/a.md"},
			{Name: "Beta", Path: "/b.md"},
		},
	}

	if d := cfg.FindDeck("alpha"); d == nil || d.Name != "alpha" {
		t.Error("expected to find 'alpha'")
	}
	if d := cfg.FindDeck("BETA"); d == nil || d.Name != "Beta" {
		t.Error("expected to find 'Beta' case-insensitively")
	}
	if cfg.FindDeck("nonexistent") != nil {
		t.Error("expected nil for nonexistent deck")
	}
}

func TestAddDeck(t *testing.T) {
	var cfg Config
	if !cfg.AddDeck("a", "/a.md") {
		t.Error("expected first add to succeed")
	}
	if cfg.AddDeck("again", "/a.md") {
		t.Error("expected duplicate path to be rejected")
	}
	if len(cfg.Decks) != 1 {
		t.Errorf("expected 1 deck, got %d", len(cfg.Decks))
	}
}

func TestSetFavorite(t *testing.T) {
	cfg := Config{}

	cfg.SetFavorite(1, "deck")
	if cfg.Favorites[1] != "deck" {
		t.Error("expected favorite 1 set to 'deck'")
	}

	cfg.SetFavorite(1, "")
	if _, ok := cfg.Favorites[1]; ok {
		t.Error("expected favorite 1 to be cleared")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/foo", filepath.Join(home, "foo")},
		{"/absolute", "/absolute"},
		{"relative", "relative"},
	}

	for _, tt := range tests {
		if got := expandHome(tt.input); got != tt.expected {
			t.Errorf("expandHome(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestXDGOverrides(t *testing.T) {
	cfgDir := t.TempDir()
	stateDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgDir)
	t.Setenv("XDG_STATE_HOME", stateDir)

	if got := ConfigPath(); got != filepath.Join(cfgDir, "slidescroll", "config.yaml") {
		t.Errorf("unexpected config path %q", got)
	}
	if got := StatePath(); got != filepath.Join(stateDir, "slidescroll", "fragments.db") {
		t.Errorf("unexpected state path %q", got)
	}
}
