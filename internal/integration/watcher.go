// Package integration contains the adapters between the DevNotes
// toolchain and its environment: the filesystem watcher backing lint
// watch mode, and the git executor backing the pre-commit hook.
package integration

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// CorpusWatcher watches the notes directory for markdown changes and
// invokes callbacks after a debounce period.
type CorpusWatcher struct {
	root      string
	watcher   *fsnotify.Watcher
	callbacks []func(paths []string)
	mu        sync.Mutex

	ctx     context.Context
	cancel  context.CancelFunc
	running bool

	debounce time.Duration
	timer    *time.Timer
	pending  map[string]struct{}
}

// NewCorpusWatcher creates a watcher over root with the given debounce
// period. A non-positive debounce falls back to 500ms.
func NewCorpusWatcher(root string, debounce time.Duration) (*CorpusWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &CorpusWatcher{
		root:     root,
		watcher:  watcher,
		ctx:      ctx,
		cancel:   cancel,
		debounce: debounce,
		pending:  make(map[string]struct{}),
	}, nil
}

// Start begins watching root and every subdirectory (dot-directories are
// skipped). onChange receives the relative paths of changed markdown
// files once the debounce period passes without further events.
func (cw *CorpusWatcher) Start(onChange func(paths []string)) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.running {
		return fmt.Errorf("watcher already running")
	}
	if onChange != nil {
		cw.callbacks = append(cw.callbacks, onChange)
	}

	err := filepath.WalkDir(cw.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != cw.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return cw.watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", cw.root, err)
	}

	cw.running = true
	go cw.handleEvents()
	return nil
}

// Stop cancels the watcher and releases its resources. Safe to call on a
// watcher that never started.
func (cw *CorpusWatcher) Stop() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.running {
		return
	}
	cw.cancel()
	_ = cw.watcher.Close()
	cw.running = false
	if cw.timer != nil {
		cw.timer.Stop()
	}
}

// IsRunning reports whether the watcher is active.
func (cw *CorpusWatcher) IsRunning() bool {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.running
}

func (cw *CorpusWatcher) handleEvents() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			cw.handleEvent(event)

		case _, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the next event re-syncs.

		case <-cw.ctx.Done():
			return
		}
	}
}

func (cw *CorpusWatcher) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)

	// New directories must be added to the watch set; fsnotify does not
	// recurse on its own.
	if event.Op&fsnotify.Create != 0 && !strings.HasPrefix(name, ".") {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = cw.watcher.Add(event.Name)
			return
		}
	}

	// Writes and creates trigger; editors that rename-write surface as
	// Create. Removes are picked up by the next full lint.
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".md") {
		return
	}

	rel, err := filepath.Rel(cw.root, event.Name)
	if err != nil {
		return
	}
	cw.schedule(rel)
}

// schedule records a changed path and (re)arms the debounce timer.
func (cw *CorpusWatcher) schedule(rel string) {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cw.pending[rel] = struct{}{}
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(cw.debounce, cw.flush)
}

func (cw *CorpusWatcher) flush() {
	cw.mu.Lock()
	paths := make([]string, 0, len(cw.pending))
	for p := range cw.pending {
		paths = append(paths, p)
	}
	cw.pending = make(map[string]struct{})
	callbacks := make([]func([]string), len(cw.callbacks))
	copy(callbacks, cw.callbacks)
	cw.mu.Unlock()

	if len(paths) == 0 {
		return
	}
	for _, cb := range callbacks {
		cb(paths)
	}
}
