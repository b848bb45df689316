package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"assetpress/internal/config"
	"assetpress/internal/logging"
	"assetpress/internal/scan"
	"assetpress/internal/services"
	"assetpress/internal/workflow"
)

// defaultSettleDelay is how long a file must stay quiet before it converts.
// Copies into the watched tree arrive as a burst of write events.
const defaultSettleDelay = 500 * time.Millisecond

// Watcher converts sources as they land in a directory tree.
type Watcher struct {
	cfg         *config.Config
	logger      *slog.Logger
	runner      *workflow.Runner
	settleDelay time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New builds a watcher around an existing runner.
func New(cfg *config.Config, logger *slog.Logger, runner *workflow.Runner) *Watcher {
	return &Watcher{
		cfg:         cfg,
		logger:      logging.WithComponent(logger, "watch"),
		runner:      runner,
		settleDelay: defaultSettleDelay,
		pending:     make(map[string]*time.Timer),
	}
}

// Run converts the existing files under sourceDir, then blocks converting new
// arrivals until the context is canceled. The session and its collision
// registry span the whole watch.
func (w *Watcher) Run(ctx context.Context, sourceDir string) error {
	session, err := w.runner.StartSession(ctx, sourceDir)
	if err != nil {
		return err
	}
	defer session.Close(ctx)

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "watching", "create notifier", "", err)
	}
	defer notifier.Close()

	if err := w.addTree(notifier, sourceDir); err != nil {
		return services.Wrap(services.ErrConfiguration, "watching", "register directories", "", err)
	}

	// Catch up on whatever is already there.
	sources, err := scan.Walk(sourceDir, w.scanOptions())
	if err != nil {
		return services.Wrap(services.ErrValidation, "watching", "walk source tree", "", err)
	}
	for _, src := range sources {
		session.Process(ctx, src)
	}

	w.logger.Info("watching for new files",
		logging.String("source_dir", sourceDir),
		logging.String(logging.FieldRunID, session.RunID()),
	)

	converts := make(chan string, 64)
	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()
		case path := <-converts:
			src, ok, err := scan.Resolve(sourceDir, path, w.scanOptions())
			if err != nil || !ok {
				continue
			}
			session.Process(ctx, src)
		case event, ok := <-notifier.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, notifier, event, converts)
		case err, ok := <-notifier.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("notifier error", logging.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, notifier *fsnotify.Watcher, event fsnotify.Event, converts chan<- string) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}

	// New directories join the watch so nested drops are seen.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(notifier, event.Name); err != nil {
				w.logger.Warn("cannot watch new directory",
					logging.String("path", event.Name), logging.Error(err))
			}
			return
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[event.Name]; ok {
		timer.Stop()
	}
	path := event.Name
	w.pending[path] = time.AfterFunc(w.settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.deliver(ctx, converts, path)
	})
}

// deliver hands a settled path to the conversion loop. A canceled context
// releases the timer goroutine even when nobody is draining the channel.
func (w *Watcher) deliver(ctx context.Context, converts chan<- string, path string) {
	select {
	case converts <- path:
	case <-ctx.Done():
	}
}

func (w *Watcher) addTree(notifier *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		if path == w.cfg.Paths.OutputDir {
			return filepath.SkipDir
		}
		return notifier.Add(path)
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) scanOptions() scan.Options {
	return scan.Options{
		Extensions: w.cfg.Convert.Extensions,
		Exclude:    w.cfg.Convert.Exclude,
		SkipDir:    w.cfg.Paths.OutputDir,
	}
}
