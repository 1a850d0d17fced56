// ABOUTME: Polling-based config watcher for hot reload of viewer settings
// ABOUTME: Monitors config file mtimes and hands freshly loaded Settings to a callback

package config

import (
	"os"
	"sync"
	"time"

	"github.com/mauromedda/kgpview/internal/log"
)

// Watcher polls the config files and reloads Settings when any of them
// changes. A file that fails to parse is logged and the previous settings
// stay in effect.
type Watcher struct {
	paths    []string
	load     func() (*Settings, error)
	onChange func(*Settings)
	interval time.Duration
	mtimes   map[string]time.Time
	stopCh   chan struct{}
	mu       sync.Mutex
	running  bool
	stopOnce sync.Once
}

// NewWatcher creates a watcher over the global and project config files of
// projectRoot.
func NewWatcher(projectRoot string, onChange func(*Settings)) *Watcher {
	return &Watcher{
		paths:    ConfigFiles(projectRoot),
		load:     func() (*Settings, error) { return Load(projectRoot) },
		onChange: onChange,
		interval: 2 * time.Second,
		mtimes:   make(map[string]time.Time),
		stopCh:   make(chan struct{}),
	}
}

// SetInterval overrides the default polling interval (2s).
func (w *Watcher) SetInterval(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval = d
}

// Start begins polling in a goroutine. Safe to call multiple times; subsequent calls are no-ops.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.snapshotLocked()
	w.mu.Unlock()

	go w.loop()
}

// Stop halts the polling goroutine. Safe to call multiple times and concurrently.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.stopCh)
	})
}

// Check runs one poll synchronously and reports whether settings were reloaded.
func (w *Watcher) Check() bool {
	w.mu.Lock()
	changed := w.checkLocked()
	if changed {
		w.snapshotLocked()
	}
	w.mu.Unlock()

	if !changed {
		return false
	}
	return w.reload()
}

func (w *Watcher) loop() {
	w.mu.Lock()
	interval := w.interval
	w.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Check()
		}
	}
}

func (w *Watcher) reload() bool {
	s, err := w.load()
	if err != nil {
		log.Warn("config reload skipped: %v", err)
		return false
	}
	log.Debug("config reloaded")
	w.onChange(s)
	return true
}

// checkLocked compares current mtimes with stored snapshots. Must hold mu.
func (w *Watcher) checkLocked() bool {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			// File removed or inaccessible: check if it existed before
			if _, existed := w.mtimes[path]; existed {
				return true
			}
			continue
		}
		prev, ok := w.mtimes[path]
		if !ok || !info.ModTime().Equal(prev) {
			return true
		}
	}
	return false
}

// snapshotLocked records current mtimes. Must hold mu.
func (w *Watcher) snapshotLocked() {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.mtimes, path)
			continue
		}
		w.mtimes[path] = info.ModTime()
	}
}
