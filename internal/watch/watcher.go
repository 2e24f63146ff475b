// Package watch re-triggers requirement analysis when input files change.
//
// Directory arguments are watched recursively (new subdirectories are picked
// up as they appear) and only files with a requirement extension count as
// changes. File arguments are watched through their parent directory so that
// editors that save via rename are still observed.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/harrison/reqlint/internal/fileutil"
	"github.com/harrison/reqlint/internal/parser"
)

// DefaultDebounce is used when New is given a non-positive window.
const DefaultDebounce = 500 * time.Millisecond

// Watcher observes requirement inputs and reports batches of changed paths.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	onChange func(changed []string)
	onError  func(err error)

	mu         sync.Mutex
	trees      map[string]bool // directories whose requirement files are tracked
	files      map[string]bool // explicitly named files
	registered map[string]bool // directories added to fsnotify
}

// New creates a watcher. onChange runs on a timer goroutine after the inputs
// have been quiet for debounce.
func New(debounce time.Duration, onChange func(changed []string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fs:         fsw,
		debounce:   debounce,
		onChange:   onChange,
		trees:      make(map[string]bool),
		files:      make(map[string]bool),
		registered: make(map[string]bool),
	}, nil
}

// OnError sets a handler for failures that do not stop Run, such as a new
// subdirectory that cannot be registered. Call it before Run.
func (w *Watcher) OnError(fn func(err error)) {
	w.onError = fn
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// AddPaths registers lint arguments: directories recursively, files individually.
func (w *Watcher) AddPaths(paths []string) error {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve path %q: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("failed to access path %q: %w", p, err)
		}
		if info.IsDir() {
			err = w.addTree(abs)
		} else {
			err = w.addFile(abs)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) addTree(root string) error {
	result, err := fileutil.ScanDirectory(root, parser.DirectoryScanOptions())
	if err != nil {
		return fmt.Errorf("failed to scan directory %q: %w", root, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, dir := range result.Dirs {
		w.trees[dir] = true
		if err := w.register(dir); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) addFile(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = true
	return w.register(filepath.Dir(path))
}

// register must be called with mu held.
func (w *Watcher) register(dir string) error {
	if w.registered[dir] {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.registered[dir] = true
	return nil
}

// Relevant reports whether a change to path should trigger re-analysis.
func (w *Watcher) Relevant(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[path] {
		return true
	}
	if !w.trees[filepath.Dir(path)] || strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return parser.DetectFormat(path) != parser.FormatUnknown
}

// Run processes filesystem events until ctx is cancelled or the watcher
// fails. It closes the underlying fsnotify watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	debouncer := NewDebouncer(w.debounce, w.onChange)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event, debouncer)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// handleEvent registers new subdirectories of watched trees and forwards
// relevant file changes to the debouncer.
func (w *Watcher) handleEvent(event fsnotify.Event, debouncer *Debouncer) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	if event.Op.Has(fsnotify.Create) && w.isTree(filepath.Dir(event.Name)) &&
		!strings.HasPrefix(filepath.Base(event.Name), ".") {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.reportError(fmt.Errorf("new directory left unwatched: %w", err))
			}
			return
		}
	}
	if w.Relevant(event.Name) {
		debouncer.Trigger(event.Name)
	}
}

func (w *Watcher) isTree(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.trees[dir]
}

// Close stops the watcher without running it.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
