package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/FILIWILY/morpheus-dream-app-sub000/internal/domain/astro"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher serves the scoring table from a YAML file and swaps in a new table
// whenever the file changes. A file that fails to parse or validate leaves
// the previous table in force.
type Watcher struct {
	path     string
	base     astro.ScoringTable
	current  atomic.Pointer[astro.ScoringTable]
	debounce time.Duration
	onReload func(astro.ScoringTable, error)
	logger   *slog.Logger
}

var _ astro.ScoringSource = (*Watcher)(nil)

// NewWatcher loads the initial table. An empty path serves base unchanged.
func NewWatcher(path string, base astro.ScoringTable, logger *slog.Logger) (*Watcher, error) {
	w := &Watcher{
		path:     path,
		base:     base.Clone(),
		debounce: defaultDebounce,
		logger:   logger.With("component", "scoring.watcher"),
	}
	table := w.base.Clone()
	if path != "" {
		loaded, err := Load(path, w.base)
		if err != nil {
			return nil, err
		}
		table = loaded
	} else if err := table.Validate(); err != nil {
		return nil, err
	}
	w.current.Store(&table)
	return w, nil
}

// Scoring implements astro.ScoringSource.
func (w *Watcher) Scoring() astro.ScoringTable {
	return w.current.Load().Clone()
}

// Reload re-reads the file now.
func (w *Watcher) Reload() error {
	if w.path == "" {
		return nil
	}
	table, err := Load(w.path, w.base)
	if err != nil {
		w.logger.Warn("scoring reload rejected, keeping previous table", "path", w.path, "error", err)
	} else {
		w.current.Store(&table)
		w.logger.Info("scoring table reloaded", "path", w.path, "orb", table.Orb)
	}
	if w.onReload != nil {
		w.onReload(table, err)
	}
	return err
}

// Run watches the file's directory until ctx is done. Editors often replace
// files by rename, so the directory is watched rather than the file.
func (w *Watcher) Run(ctx context.Context) error {
	if w.path == "" {
		<-ctx.Done()
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create scoring watcher: %w", err)
	}
	defer fsw.Close()

	target := filepath.Clean(w.path)
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch scoring dir: %w", err)
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			_ = w.Reload()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("scoring watcher error", "error", err)
		}
	}
}
