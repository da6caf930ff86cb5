// Package watch notifies callers when the images of a folder change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
	"github.com/custodia-labs/pdfdesk/internal/logger"
)

// DefaultDebounce collapses bursts of events (a copy of many files) into one change.
const DefaultDebounce = 500 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.FolderWatcher = (*Watcher)(nil)

// Watcher is an fsnotify-based folder watcher.
type Watcher struct {
	debounce time.Duration
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch calls onChange after image files in dir are created, written,
// removed or renamed. It blocks until ctx is done and returns ctx.Err().
// onChange is never called concurrently with itself.
func (w *Watcher) Watch(ctx context.Context, dir string, onChange func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return domain.NewOpError(domain.OpConvert, domain.KindEnumeration, dir,
			fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
	}
	logger.Debug("watching %s", dir)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("%s %s", event.Op, event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", dir, err)

		case <-timer.C:
			onChange()
		}
	}
}

// relevant reports whether event can change the converted document.
// Attribute changes, hidden files and non-image files are ignored.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return domain.IsImageFile(name)
}
