package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/NomadCrew/pett-server/types"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// HealthWatcher logs transitions of the health file as they happen.
// It only observes: request handling always goes through HealthChecker.Check.
type HealthWatcher struct {
	checker *HealthChecker
	watcher *fsnotify.Watcher
	log     *zap.SugaredLogger
	metrics *HealthMetrics

	last     *atomic.String
	onChange func(previous, current types.HealthStatus)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewHealthWatcher creates a watcher for the file read by checker.
func NewHealthWatcher(checker *HealthChecker) (*HealthWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &HealthWatcher{
		checker: checker,
		watcher: watcher,
		log:     checker.log,
		metrics: checker.metrics,
		last:    atomic.NewString(""),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// OnChange registers fn to be called after each status transition.
// It must be set before Watch is started.
func (w *HealthWatcher) OnChange(fn func(previous, current types.HealthStatus)) {
	w.onChange = fn
}

// Last returns the most recently observed status, or HealthStatusUnknown
// before the first observation.
func (w *HealthWatcher) Last() types.HealthStatus {
	last := w.last.Load()
	if last == "" {
		return types.HealthStatusUnknown
	}
	return types.HealthStatus(last)
}

// Watch observes the directory holding the health file until ctx is
// cancelled or Stop is called. The parent directory is watched rather than
// the file so that creation and atomic replacement are seen too.
func (w *HealthWatcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer close(w.doneCh)

	dir := filepath.Dir(w.checker.Path())
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.observe(ctx)
	w.log.Infow("Health file watcher started", "path", w.checker.Path(), "status", w.Last())

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Health file watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.log.Info("Health file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Base(event.Name) != HealthFileName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.metrics.fileEvents.WithLabelValues(event.Op.String()).Inc()
			w.log.Debugw("Health file event", "path", event.Name, "op", event.Op.String())
			w.observe(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Errorw("Health file watcher error", "error", err)
		}
	}
}

// Stop ends a running Watch and releases the underlying watcher.
func (w *HealthWatcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// observe records the current status. A cancelled ctx would read as Unknown,
// so shutdown leaves the last observation in place.
func (w *HealthWatcher) observe(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	current := w.checker.Check(ctx)
	previous := types.HealthStatus(w.last.Swap(string(current)))
	if previous == current {
		return
	}

	w.metrics.setCurrent(current)
	if previous == "" {
		return
	}

	w.log.Infow("Health status changed", "from", previous, "to", current)
	if w.onChange != nil {
		w.onChange(previous, current)
	}
}
