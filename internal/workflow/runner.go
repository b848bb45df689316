package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"assetpress/internal/config"
	"assetpress/internal/encoding"
	"assetpress/internal/logging"
	"assetpress/internal/naming"
	"assetpress/internal/pdfrender"
	"assetpress/internal/preflight"
	"assetpress/internal/report"
	"assetpress/internal/scan"
	"assetpress/internal/services"
	"assetpress/internal/target"
)

// lockFileName guards the output directory against concurrent runs.
const lockFileName = ".assetpress.lock"

// Outcome records the result for one converted file or page.
type Outcome struct {
	Source string
	Page   int // 0 for single-image sources
	Target string
	Err    error
}

// OK reports whether the item converted successfully.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Summary aggregates a whole run.
type Summary struct {
	RunID     string
	Outcomes  []Outcome
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// Runner converts batches of source files according to one configuration.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	encoder  *encoding.Encoder
	renderer *pdfrender.Renderer
	journal  *report.Store
}

// NewRunner constructs a runner. The journal may be nil, in which case
// outcomes are only reported in memory.
func NewRunner(cfg *config.Config, logger *slog.Logger, journal *report.Store) *Runner {
	return &Runner{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "workflow"),
		encoder:  encoding.NewEncoder(),
		renderer: pdfrender.NewRenderer(cfg.Convert.PDFZoom),
		journal:  journal,
	}
}

// Run converts every supported file under sourceDir and reports the outcome
// per item. The returned error is non-nil only for fatal pre-run problems;
// per-file failures live in the summary.
func (r *Runner) Run(ctx context.Context, sourceDir string) (*Summary, error) {
	session, err := r.StartSession(ctx, sourceDir)
	if err != nil {
		return nil, err
	}
	defer session.Close(ctx)

	sources, err := scan.Walk(sourceDir, scan.Options{
		Extensions: r.cfg.Convert.Extensions,
		Exclude:    r.cfg.Convert.Exclude,
		SkipDir:    r.cfg.Paths.OutputDir,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "scanning", "walk source tree", err.Error(), nil)
	}

	for _, src := range sources {
		session.Process(ctx, src)
	}
	return session.Finish(ctx), nil
}

// Session holds the state scoped to a single conversion run.
type Session struct {
	runner    *Runner
	lock      *flock.Flock
	allocator *target.Allocator
	prefix    string
	format    encoding.Format
	runID     string
	started   time.Time
	outcomes  []Outcome
	finished  bool
}

// StartSession validates the environment, locks the output directory, and
// opens the run. Callers must Close the session.
func (r *Runner) StartSession(ctx context.Context, sourceDir string) (*Session, error) {
	if check := preflight.CheckSourceDir("source directory", sourceDir); !check.Passed {
		return nil, services.Wrap(services.ErrValidation, "setup", "check source directory", check.Detail, nil)
	}

	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "setup", "create directories", err.Error(), nil)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.OutputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "setup", "acquire output lock", err.Error(), nil)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "setup", "acquire output lock",
			fmt.Sprintf("another run is writing to %s", r.cfg.Paths.OutputDir), nil)
	}

	session := &Session{
		runner:    r,
		lock:      lock,
		allocator: target.NewAllocator(r.cfg.Paths.OutputDir, target.NewRegistry()),
		prefix:    naming.NormalizePrefix(r.cfg.Convert.Prefix),
		format:    r.cfg.OutputFormat(),
		runID:     uuid.NewString(),
		started:   time.Now(),
	}

	if r.journal != nil {
		err := r.journal.BeginRun(ctx, report.Run{
			ID:        session.runID,
			StartedAt: session.started,
			SourceDir: sourceDir,
			OutputDir: r.cfg.Paths.OutputDir,
			Format:    session.format.String(),
		})
		if err != nil {
			r.logger.Warn("journal unavailable for this run", logging.Error(err))
		}
	}

	r.logger.Info("run started",
		logging.String(logging.FieldRunID, session.runID),
		logging.String("source_dir", sourceDir),
		logging.String("output_dir", r.cfg.Paths.OutputDir),
		logging.String("format", session.format.String()),
	)
	return session, nil
}

// RunID returns the run identifier.
func (s *Session) RunID() string {
	return s.runID
}

// Process converts one discovered source, appending its outcomes. Errors are
// captured per file or page and never propagate.
func (s *Session) Process(ctx context.Context, src scan.Source) []Outcome {
	var produced []Outcome
	switch src.Kind {
	case scan.KindDocument:
		produced = s.processDocument(ctx, src)
	default:
		produced = []Outcome{s.processImage(ctx, src)}
	}

	for _, outcome := range produced {
		s.record(ctx, outcome)
	}
	s.outcomes = append(s.outcomes, produced...)
	return produced
}

// Finish stamps the journal and builds the summary. Safe to call once.
func (s *Session) Finish(ctx context.Context) *Summary {
	summary := &Summary{
		RunID:    s.runID,
		Outcomes: s.outcomes,
		Duration: time.Since(s.started),
	}
	for _, outcome := range s.outcomes {
		if outcome.OK() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	if !s.finished {
		s.finished = true
		if s.runner.journal != nil {
			if err := s.runner.journal.FinishRun(ctx, s.runID, summary.Succeeded, summary.Failed); err != nil {
				s.runner.logger.Warn("journal finish failed", logging.Error(err))
			}
		}
		s.runner.logger.Info("run finished",
			logging.String(logging.FieldRunID, s.runID),
			logging.Int("succeeded", summary.Succeeded),
			logging.Int("failed", summary.Failed),
			logging.Duration("duration", summary.Duration),
		)
	}
	return summary
}

// Close releases the output lock. Finish is implied when not yet called.
func (s *Session) Close(ctx context.Context) {
	if !s.finished {
		s.Finish(ctx)
	}
	if s.lock != nil {
		_ = s.lock.Unlock()
		_ = os.Remove(s.lock.Path())
		s.lock = nil
	}
}

// baseName runs the naming pipeline for a source stem.
func (s *Session) baseName(stem string) string {
	return naming.ApplyPrefix(naming.Slugify(stem), s.prefix)
}

func (s *Session) record(ctx context.Context, outcome Outcome) {
	logger := s.runner.logger
	if outcome.OK() {
		attrs := []any{
			slog.String(logging.FieldSource, outcome.Source),
			slog.String(logging.FieldTarget, outcome.Target),
		}
		if outcome.Page > 0 {
			attrs = append(attrs, slog.Int(logging.FieldPage, outcome.Page))
		}
		logger.Info("converted", attrs...)
		if s.runner.journal != nil {
			if err := s.runner.journal.RecordSuccess(ctx, s.runID, outcome.Source, outcome.Page, outcome.Target); err != nil {
				logger.Warn("journal write failed", logging.Error(err))
			}
		}
		return
	}

	attrs := []any{
		slog.String(logging.FieldSource, outcome.Source),
		logging.Error(outcome.Err),
	}
	if outcome.Page > 0 {
		attrs = append(attrs, slog.Int(logging.FieldPage, outcome.Page))
	}
	logger.Error("conversion failed", attrs...)
	if s.runner.journal != nil {
		if err := s.runner.journal.RecordFailure(ctx, s.runID, outcome.Source, outcome.Page, outcome.Err.Error()); err != nil {
			logger.Warn("journal write failed", logging.Error(err))
		}
	}
}
