// Package watcher reloads a deck when its file changes on disk. It uses
// fsnotify on the deck's directory, so editors that save by rename are seen,
// and falls back to polling on network filesystems or when
// SLIDESCROLL_FORCE_POLL is set.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is the default polling interval for fallback mode.
const DefaultPollInterval = time.Second

var (
	ErrFileRemoved    = errors.New("deck file was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounceDuration sets the debounce duration.
func WithDebounceDuration(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounceDuration = d
	}
}

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.pollInterval = d
	}
}

// WithOnChange sets the callback invoked after a debounced change.
func WithOnChange(fn func()) WatcherOption {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// WithOnError sets the callback invoked on errors.
func WithOnError(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithForcePoll forces polling mode even if fsnotify is available.
func WithForcePoll(force bool) WatcherOption {
	return func(w *Watcher) {
		w.forcePoll = force
	}
}

// Watcher monitors one deck file.
type Watcher struct {
	path             string
	debounceDuration time.Duration
	pollInterval     time.Duration
	onChange         func()
	onError          func(error)
	forcePoll        bool

	mu        sync.RWMutex
	started   bool
	polling   bool
	fsType    FilesystemType
	fsWatcher *fsnotify.Watcher
	last      fileState
	cancel    context.CancelFunc

	debouncer *Debouncer
	changeCh  chan struct{}
}

// fileState is what polling compares between ticks.
type fileState struct {
	exists bool
	mtime  time.Time
	size   int64
}

func statFile(path string) (fileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}, err
	}
	return fileState{exists: true, mtime: info.ModTime(), size: info.Size()}, nil
}

// differs reports whether cur is a newer version of the deck than s.
func (s fileState) differs(cur fileState) bool {
	return cur.mtime.After(s.mtime) || cur.size != s.size
}

// NewWatcher creates a watcher for the deck at path. It does nothing until
// Start.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:             absPath,
		debounceDuration: DefaultDebounceDuration,
		pollInterval:     DefaultPollInterval,
		onChange:         func() {},
		onError:          func(error) {},
		changeCh:         make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = NewDebouncer(w.debounceDuration)
	return w, nil
}

// Start begins watching. fsnotify is used unless the deck lives on a remote
// filesystem, polling is forced, or the directory cannot be watched.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	state, err := statFile(w.path)
	if err != nil && os.IsPermission(err) {
		return ErrPermission
	}
	// A deck the editor has not written yet starts from the zero state.
	w.last = state

	w.fsType = detectFilesystemTypeFunc(w.path)
	w.polling = w.forcePoll || envBool("SLIDESCROLL_FORCE_POLL") || isRemoteFilesystem(w.fsType)
	w.fsWatcher = nil
	if !w.polling {
		w.fsWatcher, err = watchDir(filepath.Dir(w.path))
		w.polling = err != nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	if w.polling {
		go w.poll(ctx)
	} else {
		go w.listen(ctx, w.fsWatcher.Events, w.fsWatcher.Errors)
	}

	w.started = true
	return nil
}

// watchDir watches the deck's directory: editors often save by writing a
// temp file and renaming it over the deck.
func watchDir(dir string) (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return fsw, nil
}

// Stop stops watching. Changed is left open: a UI command may still be
// blocked on it and must not see a spurious close.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	w.cancel()
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
		w.fsWatcher = nil
	}
	w.debouncer.Cancel()
	w.started = false
}

// IsPolling reports whether the watcher fell back to polling.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.polling
}

// IsStarted returns true if the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// Changed returns a channel that receives after each debounced change.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Path returns the watched deck path.
func (w *Watcher) Path() string {
	return w.path
}

// FilesystemType is the classification Start made for the deck's path.
func (w *Watcher) FilesystemType() FilesystemType {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fsType
}

// PollInterval returns the interval used in polling mode.
func (w *Watcher) PollInterval() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pollInterval
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// deckEvent classifies a directory event for the deck named base.
func deckEvent(ev fsnotify.Event, base string) (changed, removed bool) {
	if filepath.Base(ev.Name) != base {
		return false, false
	}
	if ev.Op.Has(fsnotify.Remove) {
		return false, true
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename), false
}

// listen consumes fsnotify events until ctx is done. The channels are
// passed in because Stop clears fsWatcher.
func (w *Watcher) listen(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) {
	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch changed, removed := deckEvent(ev, base); {
			case removed:
				w.onError(ErrFileRemoved)
			case changed:
				w.debouncer.Trigger(w.notifyChange)
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

// poll compares the deck's stat on every tick until ctx is done.
func (w *Watcher) poll(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		cur, err := statFile(w.path)
		w.mu.Lock()
		prev := w.last
		if err == nil && prev.differs(cur) {
			w.last = cur
		}
		w.mu.Unlock()

		switch {
		case os.IsNotExist(err):
			// Only a deck that existed can be removed.
			if prev.exists {
				w.onError(ErrFileRemoved)
			}
		case os.IsPermission(err):
			w.onError(ErrPermission)
		case err != nil:
			w.onError(err)
		case prev.differs(cur):
			w.debouncer.Trigger(w.notifyChange)
		}
	}
}

// notifyChange runs the callback and signals Changed without blocking.
func (w *Watcher) notifyChange() {
	// Best effort: a change racing Stop may still be delivered.
	if !w.IsStarted() {
		return
	}

	w.onChange()

	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}

// Wait blocks until the next change or until ctx is done. It reports
// whether a change arrived.
func (w *Watcher) Wait(ctx context.Context) bool {
	select {
	case <-w.changeCh:
		return true
	case <-ctx.Done():
		return false
	}
}
