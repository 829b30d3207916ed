package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/slidescroll/internal/datasource"
	"github.com/vanderheijden86/slidescroll/pkg/config"
)

var errNoDecks = errors.New("no decks found")

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// deckOptions lists the valid sources as picker entries, registered decks
// first.
func deckOptions(sources []datasource.DeckSource) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, src := range sources {
		if !src.Valid {
			continue
		}
		opts = append(opts, huh.NewOption(src.Label(), src.Path))
	}
	return opts
}

// pickDeck asks which deck to open among the registered and scanned decks.
func pickDeck(cfg config.Config) (string, error) {
	dopts := datasource.OptionsFromConfig(cfg)
	if len(dopts.ScanPaths) == 0 {
		dopts.ScanPaths = []string{"."}
	}
	sources, err := datasource.DiscoverDecks(dopts)
	if err != nil {
		return "", fmt.Errorf("discovering decks: %w", err)
	}
	opts := deckOptions(sources)
	if len(opts) == 0 {
		return "", errNoDecks
	}
	if len(opts) == 1 {
		return opts[0].Value, nil
	}

	var path string
	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Open deck").
				Options(opts...).
				Value(&path),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return path, nil
}
