package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/vanderheijden86/slidescroll/pkg/config"
	"github.com/vanderheijden86/slidescroll/pkg/debug"
	"github.com/vanderheijden86/slidescroll/pkg/metrics"
	"github.com/vanderheijden86/slidescroll/pkg/ui"
	"github.com/vanderheijden86/slidescroll/pkg/version"
	"github.com/vanderheijden86/slidescroll/pkg/watcher"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("slidescroll", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var nav navFlags
	help := fs.Bool("help", false, "Show help")
	versionFlag := fs.Bool("version", false, "Show version")
	fs.BoolVar(&nav.css3, "css3", false, "Force the animated backend")
	fs.BoolVar(&nav.noCSS3, "no-css3", false, "Force the offset backend (no animation)")
	fs.BoolVar(&nav.noNav, "no-nav", false, "Do not generate the navigation bar")
	fs.IntVar(&nav.initialPage, "initial-page", -1, "Slide to open at when the link has no fragment")
	fs.DurationVar(&nav.duration, "duration", 0, "Animation duration (e.g. 500ms)")
	fs.StringVar(&nav.namespace, "namespace", "", "Class and attribute namespace")
	noHooks := fs.Bool("no-hooks", false, "Do not run hooks from .slidescroll/hooks.yaml")
	noWatch := fs.Bool("no-watch", false, "Do not reload the deck when it changes")
	noResume := fs.Bool("no-resume", false, "Do not reopen at the last remembered slide")
	stats := fs.Bool("stats", false, "Print timing metrics as JSON to stderr on exit")
	debugLog := fs.String("debug-log", "", "Write debug output to this file")
	outlinePath := fs.String("export-outline", "", "Write the deck outline (JSON, or Markdown for .md; - for stdout) and exit")
	snapshotPath := fs.String("snapshot", "", "Render the deck to an .svg or .png filmstrip and exit")
	register := fs.Bool("register", false, "Add the deck to the config so it can be opened by name")
	deckName := fs.String("name", "", "Name for --register (default: file name)")
	favorite := fs.Int("favorite", 0, "Bind the deck to a number 1-9 (with --register)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *help {
		fmt.Fprintln(stdout, "Usage: slidescroll [options] [deck.md[#slide]]")
		fmt.Fprintln(stdout, "\nScroll through a Markdown slide deck one slide at a time.")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "slidescroll %s\n", version.Version)
		return 0
	}

	if err := nav.validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if *debugLog != "" {
		f, err := os.OpenFile(*debugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer func() {
			debug.SetEnabled(false)
			f.Close()
		}()
		debug.SetOutput(f)
		debug.SetEnabled(true)
	} else if debug.Enabled() {
		fmt.Fprintln(stderr, "Warning: debug output goes to stderr and will mix with the viewer; use --debug-log")
	}
	debug.Section("slidescroll " + version.Version)

	if *stats {
		metrics.SetEnabled(true)
		defer func() {
			if err := metrics.WriteJSON(stderr); err != nil {
				debug.Log("metrics: %v", err)
			}
		}()
	}

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		// Non-fatal: continue without config
		fmt.Fprintf(stderr, "Warning: %v\n", cfgErr)
		cfg = config.DefaultConfig()
	}

	href := fs.Arg(0)
	if href == "" {
		if !isTerminal() {
			fmt.Fprintln(stderr, "Usage: slidescroll [options] deck.md[#slide]")
			return 2
		}
		picked, err := pickDeck(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		href = picked
	}
	href = resolveDeckArg(cfg, href)

	sess, err := openSession(href, sessionOptions{
		cfg:       cfg,
		nav:       nav,
		capable:   ui.AnimationCapable(),
		noHooks:   *noHooks,
		resume:    !*noResume,
		statePath: config.StatePath(),
		warn: func(msg string) {
			fmt.Fprintf(stderr, "Warning: %s\n", msg)
		},
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error loading deck: %v\n", err)
		return 1
	}
	defer sess.Close()

	if *register {
		if cfgErr != nil {
			fmt.Fprintln(stderr, "Error: not registering over an unreadable config")
			return 1
		}
		if err := registerDeck(&cfg, *deckName, sess.path, *favorite); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if err := config.Save(cfg); err != nil {
			fmt.Fprintf(stderr, "Error saving config: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "Registered %s in %s\n", sess.path, config.ConfigPath())
	}

	if *outlinePath != "" || *snapshotPath != "" {
		if *outlinePath != "" {
			if err := sess.exportOutline(*outlinePath, stdout); err != nil {
				fmt.Fprintf(stderr, "Error writing outline: %v\n", err)
				return 1
			}
		}
		if *snapshotPath != "" {
			if err := sess.exportSnapshot(*snapshotPath); err != nil {
				fmt.Fprintf(stderr, "Error writing snapshot: %v\n", err)
				return 1
			}
		}
		return 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []ui.Option{
		ui.WithContext(ctx),
		ui.WithCellHeight(cfg.UI.CellHeight),
		ui.WithGlamourStyle(cfg.UI.Theme),
	}
	if cfg.LiveReload() && !*noWatch {
		w, err := watcher.NewWatcher(sess.path, watcher.WithOnError(func(err error) {
			debug.Log("watcher: %v", err)
		}))
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Warning: live reload disabled: %v\n", err)
		} else {
			defer w.Stop()
			opts = append(opts, ui.WithWatcher(w))
		}
	}

	m := ui.NewModel(sess.scroller, sess.loc, sess.path, opts...)
	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(stderr, "Error running slidescroll: %v\n", err)
		return 1
	}
	return 0
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set SLIDESCROLL_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("SLIDESCROLL_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
