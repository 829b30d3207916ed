package main

import (
	"fmt"
	"time"

	"github.com/vanderheijden86/slidescroll/pkg/config"
	"github.com/vanderheijden86/slidescroll/pkg/hooks"
	"github.com/vanderheijden86/slidescroll/pkg/slidescroll"
)

// navFlags are the navigation overrides given on the command line. They sit
// above both the config file and the deck frontmatter.
type navFlags struct {
	css3        bool
	noCSS3      bool
	noNav       bool
	initialPage int // -1: unset
	duration    time.Duration
	namespace   string
}

func (f navFlags) validate() error {
	if f.css3 && f.noCSS3 {
		return fmt.Errorf("--css3 and --no-css3 are mutually exclusive")
	}
	if f.duration < 0 {
		return fmt.Errorf("--duration must not be negative")
	}
	return nil
}

// overrides turns the flags and the config entries that have no slides.Options
// field into scroller options.
func (f navFlags) overrides(cfg config.Config) []slidescroll.Option {
	var opts []slidescroll.Option
	if cfg.Navigation.SwipeThreshold > 0 {
		opts = append(opts, slidescroll.WithTouchThreshold(cfg.Navigation.SwipeThreshold))
	}
	switch {
	case f.css3:
		opts = append(opts, slidescroll.WithCSS3(true))
	case f.noCSS3:
		opts = append(opts, slidescroll.WithCSS3(false))
	}
	if f.noNav {
		opts = append(opts, slidescroll.WithGenerateNavigation(false))
	}
	if f.initialPage >= 0 {
		opts = append(opts, slidescroll.WithInitialPage(f.initialPage))
	}
	if f.duration > 0 {
		opts = append(opts, slidescroll.WithAnimationDuration(f.duration))
	}
	if f.namespace != "" {
		opts = append(opts, slidescroll.WithNamespace(f.namespace))
	}
	return opts
}

// hookObserver runs the configured hooks for every move. Hooks run in the
// background; their failures are logged and never block navigation.
func hookObserver(exec *hooks.Executor, deckPath string, now func() time.Time) slidescroll.Option {
	return slidescroll.WithObserver(func(ev slidescroll.MoveEvent) {
		mc := hooks.MoveContext{
			Deck:      deckPath,
			From:      ev.From,
			To:        ev.To,
			Key:       ev.Key,
			Timestamp: now(),
		}
		exec.Go(hooks.HookPhase(ev.Phase), mc, nil)
	})
}

// startFragment picks the fragment the deck opens at. A fragment in the
// argument wins over the remembered one.
func startFragment(arg, stored string, resume bool) string {
	if arg != "" {
		return arg
	}
	if resume {
		return stored
	}
	return ""
}
