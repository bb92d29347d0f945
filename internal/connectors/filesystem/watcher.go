package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/tdsprep/internal/core/ports/driven"
	"github.com/custodia-labs/tdsprep/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before reporting a change.
const DefaultDebounce = 500 * time.Millisecond

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Watcher reports changes to input files and directories.
type Watcher struct {
	debounce time.Duration
	ignored  map[string]bool

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the settle time for bursts of events.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithIgnore excludes paths from change reports, typically the pipeline's
// own outputs.
func WithIgnore(paths ...string) WatcherOption {
	return func(w *Watcher) {
		for _, p := range paths {
			if p != "" {
				w.ignored[absPath(p)] = true
			}
		}
	}
}

// NewWatcher creates a Watcher.
func NewWatcher(opts ...WatcherOption) *Watcher {
	w := &Watcher{
		debounce: DefaultDebounce,
		ignored:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// watchSet is the set of paths one Watch call reports on.
type watchSet struct {
	files   map[string]bool
	dirs    map[string]bool
	ignored map[string]bool
}

// Watch starts watching paths. Files are watched through their parent
// directory so that editors that replace files are still seen. Directories
// are watched with their subdirectories. One value is sent per settled burst
// of changes; the channel closes when ctx is cancelled. Paths in ignore are
// skipped in addition to those given by WithIgnore.
func (w *Watcher) Watch(ctx context.Context, paths, ignore []string) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	set := &watchSet{
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		ignored: make(map[string]bool, len(w.ignored)+len(ignore)),
	}
	for p := range w.ignored {
		set.ignored[p] = true
	}
	for _, p := range ignore {
		if p != "" {
			set.ignored[absPath(p)] = true
		}
	}
	for _, p := range paths {
		if err := set.add(fsw, p); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	w.watchers = append(w.watchers, fsw)

	changes := make(chan struct{}, 1)
	go w.run(ctx, fsw, set, changes)

	return changes, nil
}

// Close stops all watches.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for _, fsw := range w.watchers {
		if err := fsw.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	w.watchers = nil
	return errors.Join(errs...)
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, set *watchSet, changes chan<- struct{}) {
	defer close(changes)
	defer fsw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !set.relevant(event) {
				continue
			}
			logger.Debug("Input changed: %s (%s)", event.Name, event.Op)
			if event.Has(fsnotify.Create) {
				set.addIfDir(fsw, event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case changes <- struct{}{}:
			default:
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

func (s *watchSet) add(fsw *fsnotify.Watcher, path string) error {
	path = absPath(path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	if !info.IsDir() {
		s.files[path] = true
		if err := fsw.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	}

	return filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && isHidden(p) {
			return filepath.SkipDir
		}
		s.dirs[p] = true
		if err := fsw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

// addIfDir starts watching a directory created inside a watched directory.
func (s *watchSet) addIfDir(fsw *fsnotify.Watcher, path string) {
	if !s.dirs[filepath.Dir(path)] || isHidden(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	s.dirs[path] = true
	if err := fsw.Add(path); err != nil {
		logger.Warn("Cannot watch new directory %s: %v", path, err)
	}
}

// relevant reports whether an event concerns a watched input.
// Permission changes, hidden files and ignored paths are not changes.
func (s *watchSet) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	path := absPath(event.Name)
	if s.ignored[path] || isHidden(path) {
		return false
	}
	return s.files[path] || s.dirs[filepath.Dir(path)]
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
