package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Holder owns the metadata built from a mapping file and rebuilds it when
// the file changes. Published metadata is never modified; a reload swaps in
// a new snapshot.
type Holder struct {
	mu       sync.RWMutex
	file     *File
	md       *Metadata
	path     string
	opts     []Option
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(*Metadata)
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  bool
}

// NewHolder loads the mapping file at path and builds its metadata.
func NewHolder(path string, logger *slog.Logger, opts ...Option) (*Holder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	h := &Holder{
		path:   absPath,
		opts:   append([]Option{WithLogger(logger)}, opts...),
		logger: logger,
		stopCh: make(chan struct{}),
	}
	f, md, err := h.load()
	if err != nil {
		return nil, err
	}
	h.file, h.md = f, md
	return h, nil
}

func (h *Holder) load() (*File, *Metadata, error) {
	f, err := Load(h.path)
	if err != nil {
		return nil, nil, err
	}
	md, err := f.Build(h.opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("build mappings: %w", err)
	}
	return f, md, nil
}

// Get returns the current metadata.
func (h *Holder) Get() *Metadata {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.md
}

// File returns the mapping file the current metadata was built from.
func (h *Holder) File() *File {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.file
}

// Reload rebuilds the metadata from disk. On failure the current metadata
// is kept and the error is returned.
func (h *Holder) Reload() error {
	h.logger.Info("reloading mappings", "path", h.path)

	f, md, err := h.load()
	if err != nil {
		h.logger.Error("mapping reload failed, keeping old mappings", "error", err)
		return fmt.Errorf("reload mappings: %w", err)
	}

	h.mu.Lock()
	old := h.md
	h.file, h.md = f, md
	callbacks := append(([]func(*Metadata))(nil), h.onChange...)
	h.mu.Unlock()

	h.logChanges(old, md)
	for _, fn := range callbacks {
		fn(md)
	}
	h.logger.Info("mappings reloaded")
	return nil
}

// OnChange registers a callback invoked with the new metadata after every
// successful reload.
func (h *Holder) OnChange(fn func(*Metadata)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

var (
	errAlreadyWatching = errors.New("config: mapping file is already watched")
	errStopped         = errors.New("config: holder is stopped")
)

// WatchFile starts watching the mapping file. Changes trigger a reload.
// It fails when the file is already watched or the holder is stopped.
func (h *Holder) WatchFile() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.stopped:
		return errStopped
	case h.watcher != nil:
		return errAlreadyWatching
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory, editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	h.watcher = watcher
	go h.watchLoop(watcher)

	h.logger.Info("watching mapping file for changes", "path", h.path)
	return nil
}

// Stop stops watching the mapping file.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		h.stopped = true
		w := h.watcher
		h.mu.Unlock()
		close(h.stopCh)
		if w != nil {
			w.Close()
		}
	})
}

func (h *Holder) watchLoop(w *fsnotify.Watcher) {
	filename := filepath.Base(h.path)
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.logger.Debug("mapping file changed", "event", event.Op.String(), "file", event.Name)
				if err := h.Reload(); err != nil {
					h.logger.Error("file watch reload failed", "error", err)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			h.logger.Error("file watcher error", "error", err)
		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) logChanges(old, cur *Metadata) {
	if len(old.entities) != len(cur.entities) {
		h.logger.Info("entity count changed", "old", len(old.entities), "new", len(cur.entities))
	}
	for _, e := range cur.entities {
		prev := old.ClassMapping(e.Name())
		if prev == nil {
			h.logger.Info("entity added", "entity", e.Name())
			continue
		}
		for _, p := range e.Properties() {
			pp, ok := prev.Property(p.Name)
			if !ok {
				continue
			}
			was, err := pp.Type()
			if err != nil {
				continue
			}
			now, err := p.Type()
			if err != nil {
				h.logger.Warn("basic type not resolved", "entity", e.Name(), "attribute", p.Name, "error", err)
				continue
			}
			if was.Name() != now.Name() || was.SQLDescriptor() != now.SQLDescriptor() {
				h.logger.Info("basic type changed",
					"entity", e.Name(), "attribute", p.Name, "old", was.Name(), "new", now.Name())
			}
		}
	}
}
