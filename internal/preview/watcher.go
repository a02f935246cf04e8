package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultDebounce coalesces bursts of editor writes into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// envFiles are the dotenv files read next to the site file.
var envFiles = map[string]bool{".env": true, ".env.local": true}

// Watcher monitors the site file, its .env files and an optional content
// directory, and calls rebuild after changes settle.
type Watcher struct {
	configPath string
	contentDir string
	rebuild    func(ctx context.Context)
	debounce   time.Duration
	logger     *slog.Logger

	watcher    *fsnotify.Watcher
	rebuildReq chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// WatcherOption customises NewWatcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithContentDir additionally watches dir recursively.
func WithContentDir(dir string) WatcherOption {
	return func(w *Watcher) { w.contentDir = dir }
}

// WithWatcherLogger sets the logger used for change events.
func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWatcher creates a watcher for configPath. rebuild runs on the Run
// goroutine, so rebuilds never overlap.
func NewWatcher(configPath string, rebuild func(ctx context.Context), opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	w := &Watcher{
		configPath: absPath,
		rebuild:    rebuild,
		debounce:   DefaultDebounce,
		logger:     slog.Default(),
		rebuildReq: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.contentDir != "" {
		if w.contentDir, err = filepath.Abs(w.contentDir); err != nil {
			return nil, fmt.Errorf("failed to resolve content dir: %w", err)
		}
	}
	return w, nil
}

// Run watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()
	w.watcher = fsw

	// The directory is watched rather than the file: editors replace files
	// on save and a watch on the old inode would go silent.
	configDir := filepath.Dir(w.configPath)
	if err := fsw.Add(configDir); err != nil {
		return fmt.Errorf("failed to watch config directory %s: %w", configDir, err)
	}
	if w.contentDir != "" {
		if err := addDirsRecursive(fsw, w.contentDir, w.logger); err != nil {
			return err
		}
	}
	w.logger.Info("Watching site for changes", logfields.Path(w.configPath))

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		case <-w.rebuildReq:
			w.rebuild(ctx)
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !w.relevant(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Remove == fsnotify.Remove && ev.Name == w.configPath {
		w.logger.Warn("Site file removed", logfields.Path(ev.Name))
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create && w.watcher != nil {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(w.watcher, ev.Name, w.logger)
		}
	}
	w.logger.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.trigger()
}

// relevant reports whether a change to path should rebuild the site.
func (w *Watcher) relevant(path string) bool {
	if filepath.Dir(path) == filepath.Dir(w.configPath) {
		base := filepath.Base(path)
		if base == filepath.Base(w.configPath) || envFiles[base] {
			return true
		}
	}
	if w.contentDir == "" || shouldIgnoreEvent(path) {
		return false
	}
	rel, err := filepath.Rel(w.contentDir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// trigger (re)starts the debounce timer. At most one rebuild request is
// queued at a time.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.rebuildReq <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger rebuilds.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp and swap files
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db"
}

func addDirsRecursive(w *fsnotify.Watcher, root string, logger *slog.Logger) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}
