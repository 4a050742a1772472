// Package filesystem walks and watches a local report directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/snapfind/internal/logger"
)

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("connector closed")

// Connector enumerates the files under one root directory.
type Connector struct {
	root     string
	supports func(path string) bool

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// New creates a connector for root. supports filters candidate files by
// path; nil accepts every regular file.
func New(root string, supports func(path string) bool) *Connector {
	if supports == nil {
		supports = func(string) bool { return true }
	}
	return &Connector{root: root, supports: supports}
}

// Root returns the directory being walked.
func (c *Connector) Root() string {
	return c.root
}

// Walk calls fn for every supported regular file under the root, in lexical
// order. Symlinks are followed only when they resolve to a regular file.
// Unreadable subdirectories are logged and skipped; an error from fn stops
// the walk.
func (c *Connector) Walk(ctx context.Context, fn func(path string) error) error {
	info, err := os.Stat(c.root)
	if err != nil {
		return fmt.Errorf("walk %s: %w", c.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("walk %s: not a directory", c.root)
	}

	return filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == c.root {
				return err
			}
			logger.Warn("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !isRegular(path, d) || !c.supports(path) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		return fn(abs)
	})
}

func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Watch blocks until ctx is cancelled, calling fn for each supported file
// that is created or written under the root. Calls are made one at a time
// from the event loop. New subdirectories are watched as they appear.
func (c *Connector) Watch(ctx context.Context, fn func(path string)) error {
	watcher, err := c.startWatcher()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if path, ok := c.handleFsEvent(event); ok {
				fn(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

func (c *Connector) startWatcher() (*fsnotify.Watcher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.watcher != nil {
		return nil, errors.New("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := addTree(watcher, c.root); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	c.watcher = watcher
	return watcher, nil
}

// addTree registers dir and all of its subdirectories.
func addTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// handleFsEvent returns the file to re-index for event, if any.
// Removals are ignored: records outlive their source files.
func (c *Connector) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return "", false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			c.mu.Lock()
			if c.watcher != nil {
				if err := addTree(c.watcher, event.Name); err != nil {
					logger.Warn("%v", err)
				}
			}
			c.mu.Unlock()
		}
		return "", false
	}
	if !info.Mode().IsRegular() || !c.supports(event.Name) {
		return "", false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	return abs, true
}

// Close stops any active watch. It is safe to call more than once.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	if c.watcher != nil {
		err := c.watcher.Close()
		c.watcher = nil
		return err
	}
	return nil
}
