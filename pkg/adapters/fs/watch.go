package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jotter/pkg/core"
)

// debounceDelay coalesces the burst of events a single save produces.
const debounceDelay = 50 * time.Millisecond

// Watch reports changes to notes and settings whose vault-relative path
// matches pattern (doublestar syntax, "" means everything). Changes made
// through this repository are not reported. The channel is closed when ctx ends.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	if !r.config.ReadOnly {
		for _, dir := range []string{r.notesDir(), r.systemDir()} {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to prepare %s: %w", dir, err)
			}
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.notesDir()); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.notesDir(), err)
	}
	if err := watcher.Add(r.systemDir()); err != nil && r.config.Logger != nil {
		r.config.Logger.Debug("settings not watched", "error", err)
	}

	known := make(map[string]bool)
	if ids, err := os.ReadDir(r.notesDir()); err == nil {
		for _, e := range ids {
			known[NotesDir+"/"+e.Name()] = true
		}
	}

	events := make(chan core.Event, r.config.EventBuffer)
	w := &watchWorker{
		repo:      r,
		pattern:   pattern,
		events:    events,
		watcher:   watcher,
		debouncer: newDebouncer(debounceDelay),
		known:     known,
	}

	r.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		if r.config.ErrorHandler != nil {
			r.config.ErrorHandler(fmt.Errorf("watcher: %w", err))
		} else if r.config.Logger != nil {
			r.config.Logger.Error("watcher failed", "error", err)
		}
	}))
	return events, nil
}

type watchWorker struct {
	repo      *Repository
	pattern   string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	known     map[string]bool // note files present, to tell CREATE from MODIFY
}

// run is the main event loop of the watcher.
func (w *watchWorker) run(ctx context.Context) error {
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.debouncer.stopAndWait(5 * time.Second)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.repo.config.Logger != nil {
				w.repo.config.Logger.Error("fsnotify error", "error", err)
			}
			if w.repo.config.ErrorHandler != nil {
				w.repo.config.ErrorHandler(err)
			}
		}
	}
}

// handle filters, classifies and debounces a single filesystem event.
func (w *watchWorker) handle(ctx context.Context, event fsnotify.Event) {
	rel, err := filepath.Rel(w.repo.Path, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	var entity core.Entity
	var id int64
	switch {
	case rel == w.repo.settingsRel():
		entity = core.EntitySettings
	default:
		n, ok := parseNoteRel(rel)
		if !ok {
			return
		}
		entity, id = core.EntityNote, n
	}

	if ok, _ := doublestar.Match(w.pattern, rel); !ok {
		return
	}

	removed := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	if removed {
		if _, err := os.Stat(event.Name); err == nil {
			// Replaced in place by a rename.
			removed = false
		}
	} else if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	var eType core.EventType
	if removed {
		delete(w.known, rel)
		if w.repo.writes.matches(rel, "") {
			return
		}
		eType = core.EventDelete
	} else {
		data, err := os.ReadFile(event.Name)
		if err != nil {
			return
		}
		existed := w.known[rel] || entity == core.EntitySettings
		w.known[rel] = true
		if w.repo.writes.matches(rel, checksum(data)) {
			return
		}
		eType = core.EventCreate
		if existed {
			eType = core.EventModify
		}
	}

	if w.repo.config.Logger != nil {
		w.repo.config.Logger.Debug("change detected", "path", rel, "type", eType)
	}
	w.repo.recordEvent()

	w.debouncer.add(core.Event{
		Type:      eType,
		Entity:    entity,
		ID:        id,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		defer func() {
			// The channel may already be closed if shutdown timed out.
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}
