package config

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"slices"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Holder owns the live configuration. Reload swaps it atomically and then
// notifies listeners registered with OnChange.
//
// Contract:
// - Concurrency: Get is safe at any time. Reloads are serialized, so
//   listeners never run concurrently and always see configs in apply order.
// - Failure: a reload that fails to load or validate keeps the current config.
type Holder struct {
	mu        sync.RWMutex
	cfg       *Config
	listeners []func(*Config)

	reloadMu sync.Mutex

	path   string
	logger zerolog.Logger

	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
}

// NewHolder loads path and returns a holder that can reload it.
func NewHolder(path string, logger zerolog.Logger) (*Holder, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := Load(abs)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &Holder{cfg: cfg, path: abs, logger: logger, done: make(chan struct{})}, nil
}

// NewStaticHolder wraps an already loaded configuration. Reload is a no-op
// because there is no file to re-read.
func NewStaticHolder(cfg *Config, logger zerolog.Logger) *Holder {
	return &Holder{cfg: cfg, logger: logger, done: make(chan struct{})}
}

// Get returns the current configuration.
func (h *Holder) Get() *Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// Path returns the absolute config file path, or "" for a static holder.
func (h *Holder) Path() string {
	return h.path
}

// OnChange registers fn to run after every successful reload.
func (h *Holder) OnChange(fn func(*Config)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Reload re-reads the config file and, if it is valid, makes it current and
// runs the listeners before returning.
func (h *Holder) Reload() error {
	if h.path == "" {
		return nil
	}
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	next, err := Load(h.path)
	if err != nil {
		h.logger.Error().Err(err).Str("path", h.path).Msg("config reload failed, keeping current config")
		return fmt.Errorf("reload config: %w", err)
	}

	h.mu.Lock()
	prev := h.cfg
	h.cfg = next
	listeners := slices.Clone(h.listeners)
	h.mu.Unlock()

	h.logger.Info().
		Str("path", h.path).
		Strs("changed", changedSections(prev, next)).
		Msg("configuration reloaded")

	for _, fn := range listeners {
		fn(next)
	}
	return nil
}

// WatchFile reloads whenever the config file is written or replaced.
func (h *Holder) WatchFile() error {
	if h.path == "" {
		return fmt.Errorf("watch: holder has no config file")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Editors that save atomically replace the file, so watch its directory.
	if err := w.Add(filepath.Dir(h.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	h.watcher = w

	go h.watchFile(w)
	h.logger.Info().Str("path", h.path).Msg("watching config file")
	return nil
}

// WatchSignals reloads on SIGHUP until Stop is called.
func (h *Holder) WatchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)

	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-sigCh:
				h.reloadFrom("sighup")
			case <-h.done:
				return
			}
		}
	}()
}

// Stop ends file and signal watching. It is safe to call more than once.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		if h.watcher != nil {
			h.watcher.Close()
		}
	})
}

func (h *Holder) watchFile(w *fsnotify.Watcher) {
	name := filepath.Base(h.path)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) == name && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.reloadFrom("file " + ev.Op.String())
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("config watcher error")
		case <-h.done:
			return
		}
	}
}

func (h *Holder) reloadFrom(trigger string) {
	h.logger.Debug().Str("trigger", trigger).Msg("config reload requested")
	if err := h.Reload(); err != nil {
		h.logger.Error().Err(err).Str("trigger", trigger).Msg("config reload failed")
	}
}

// changedSections names the top-level sections that differ between a and b.
func changedSections(a, b *Config) []string {
	sections := []struct {
		name string
		a, b any
	}{
		{"server", a.Server, b.Server},
		{"sandbox", a.Sandbox, b.Sandbox},
		{"catalog", a.Catalog, b.Catalog},
		{"logging", a.Logging, b.Logging},
		{"metrics", a.Metrics, b.Metrics},
		{"mcp", a.MCP, b.MCP},
		{"tools", a.Tools, b.Tools},
	}
	changed := []string{}
	for _, s := range sections {
		if !reflect.DeepEqual(s.a, s.b) {
			changed = append(changed, s.name)
		}
	}
	return changed
}
