package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/slidescroll/pkg/config"
	"github.com/vanderheijden86/slidescroll/pkg/debug"
	"github.com/vanderheijden86/slidescroll/pkg/deck"
	"github.com/vanderheijden86/slidescroll/pkg/export"
	"github.com/vanderheijden86/slidescroll/pkg/hooks"
	"github.com/vanderheijden86/slidescroll/pkg/location"
	"github.com/vanderheijden86/slidescroll/pkg/slidescroll"
)

type sessionOptions struct {
	cfg       config.Config
	nav       navFlags
	capable   bool
	noHooks   bool
	resume    bool
	statePath string // empty: positions are not remembered
	now       func() time.Time
	warn      func(msg string)
}

// session is one opened deck with everything bound to it.
type session struct {
	path     string
	loc      *location.Location
	scroller *slidescroll.Scroller
	store    *location.Store
	untrack  func()
}

// openSession loads the deck addressed by href ("path#fragment") and enables
// navigation on it. Store and hook problems are reported through warn and do
// not stop the deck from opening.
func openSession(href string, o sessionOptions) (*session, error) {
	if o.now == nil {
		o.now = time.Now
	}
	if o.warn == nil {
		o.warn = func(string) {}
	}

	path, fragment := location.SplitHref(href)
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	doc, err := deck.Load(abs)
	if err != nil {
		return nil, err
	}

	s := &session{path: abs, untrack: func() {}}

	var stored string
	if o.statePath != "" {
		store, err := location.OpenStore(o.statePath)
		if err != nil {
			o.warn(fmt.Sprintf("positions will not be remembered: %v", err))
		} else {
			s.store = store
			if stored, err = store.Load(abs); err != nil {
				debug.Log("location: %v", err)
			}
		}
	}

	s.loc = location.New(startFragment(fragment, stored, o.resume))
	if s.store != nil {
		s.untrack = s.store.Track(s.loc, abs, func(err error) {
			debug.Log("location: saving %s: %v", abs, err)
		})
	}

	overrides := o.nav.overrides(o.cfg)
	exec, err := hooks.RunHooks(filepath.Dir(abs), o.noHooks)
	if err != nil {
		o.warn(fmt.Sprintf("hooks disabled: %v", err))
	} else if exec != nil {
		overrides = append(overrides, hookObserver(exec, abs, o.now))
	}

	plugins := slidescroll.NewPlugins()
	attach, _ := plugins.Lookup(slidescroll.DefaultEntryPoint)
	s.scroller = attach(doc, s.loc, o.cfg.SlideOptions(o.capable), overrides...)

	// The initial slide may not change the fragment, so Track would miss it.
	if s.store != nil {
		if err := s.store.Save(abs, s.loc.Fragment()); err != nil {
			debug.Log("location: saving %s: %v", abs, err)
		}
	}
	return s, nil
}

// Close disables navigation and stops remembering the position.
func (s *session) Close() {
	s.untrack()
	slidescroll.Detach(s.scroller.Document())
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			debug.Log("location: %v", err)
		}
	}
}

// exportOutline writes the outline to path: Markdown for .md, JSON otherwise.
// "-" writes JSON to stdout.
func (s *session) exportOutline(path string, stdout io.Writer) error {
	o := export.BuildOutline(s.scroller, s.path)
	if path == "-" {
		return export.WriteOutline(stdout, o)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".md" || ext == ".markdown" {
		return os.WriteFile(path, []byte(export.OutlineMarkdown(o)), 0o644)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteOutline(f, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *session) exportSnapshot(path string) error {
	return export.SaveSnapshot(export.SnapshotOptions{
		Path:  path,
		Title: s.scroller.Document().Name,
		Deck:  s.scroller,
	})
}
