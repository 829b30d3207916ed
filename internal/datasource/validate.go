package datasource

import (
	"fmt"

	"github.com/vanderheijden86/slidescroll/pkg/deck"
)

// maxDeckSize bounds the files validation will parse.
const maxDeckSize = 8 << 20

// ValidateSource parses the deck and records its section count. A deck
// without any section is invalid.
func ValidateSource(s *DeckSource) error {
	s.Valid = false
	s.ValidationError = ""
	s.SlideCount = 0

	if s.Size > maxDeckSize {
		return s.invalid(fmt.Errorf("file too large (%d bytes)", s.Size))
	}
	doc, err := deck.Load(s.Path)
	if err != nil {
		return s.invalid(err)
	}
	s.SlideCount = len(doc.Container.Children())
	if s.SlideCount == 0 {
		return s.invalid(fmt.Errorf("no slides"))
	}
	s.Valid = true
	return nil
}

func (s *DeckSource) invalid(err error) error {
	s.ValidationError = err.Error()
	return err
}
