package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vanderheijden86/slidescroll/pkg/config"
	"github.com/vanderheijden86/slidescroll/pkg/location"
)

// resolveDeckArg maps the deck argument to a deck link. Besides paths it
// accepts the name of a registered deck or a favorite number (1-9); the
// fragment is kept either way. Existing files win over names.
func resolveDeckArg(cfg config.Config, arg string) string {
	path, fragment := location.SplitHref(arg)
	if _, err := os.Stat(path); err == nil {
		return arg
	}

	var d *config.Deck
	if n, err := strconv.Atoi(path); err == nil {
		d = cfg.FavoriteDeck(n)
	}
	if d == nil {
		d = cfg.FindDeck(path)
	}
	if d == nil {
		return arg
	}
	return location.Href(d.ResolvedPath(), fragment)
}

// registerDeck adds path to the config under name and, when favorite is in
// 1-9, binds it to that number. The name defaults to the file name; a path
// registered before keeps its name.
func registerDeck(cfg *config.Config, name, path string, favorite int) error {
	if favorite != 0 && (favorite < 1 || favorite > 9) {
		return fmt.Errorf("favorite must be between 1 and 9, got %d", favorite)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	}
	if existing := cfg.FindDeck(name); existing != nil && existing.ResolvedPath() != abs {
		return fmt.Errorf("deck name %q is already used by %s", name, existing.Path)
	}
	if !cfg.AddDeck(name, abs) {
		// Already registered: the favorite refers to the existing entry.
		for _, d := range cfg.Decks {
			if d.Path == abs {
				name = d.Name
			}
		}
	}
	if favorite != 0 {
		cfg.SetFavorite(favorite, name)
	}
	return nil
}
