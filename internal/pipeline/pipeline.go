// Package pipeline orchestrates one organization run end to end.
//
// A run advances through a fixed sequence of stages: scan, classify, plan,
// place, quarantine, dedup. Stages communicate through in-memory values only;
// nothing about a run is persisted, so a crashed run leaves at worst a
// partially populated destination tree that the next run completes.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"datesift/internal/classify"
	"datesift/internal/dedup"
	"datesift/internal/label"
	"datesift/internal/logging"
	"datesift/internal/place"
	"datesift/internal/preflight"
	"datesift/internal/scan"
	"datesift/internal/services"
)

// LockFileName is created next to the destination root for the duration of a
// run so two runs never race on sequence allocation.
const LockFileName = ".datesift.lock"

// Stage identifies one phase of a run, in execution order.
type Stage string

const (
	StageScan       Stage = "scan"
	StageClassify   Stage = "classify"
	StagePlan       Stage = "plan"
	StagePlace      Stage = "place"
	StageQuarantine Stage = "quarantine"
	StageDedup      Stage = "dedup"
	StageDone       Stage = "done"
)

// Options configures a run. Source and Destination must be absolute or
// process-relative paths; Destination may live inside Source.
type Options struct {
	Source           string
	Destination      string
	DryRun           bool
	RemoveDuplicates bool
	Threads          int
	// Extractor, when non-nil, labels files during classification.
	Extractor label.Extractor
	Logger    *slog.Logger
}

// Organizer runs the organization pipeline. One Organizer performs one run.
type Organizer struct {
	opts   Options
	logger *slog.Logger
}

// New validates nothing; Run performs all checks so dry runs and real runs
// share one code path.
func New(opts Options) *Organizer {
	if opts.Threads < 1 {
		opts.Threads = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Organizer{opts: opts, logger: logging.NewComponentLogger(logger, "pipeline")}
}

// Run executes the pipeline and always returns a report describing how far it
// got, even on error. Fatal errors (failed preconditions, a held lock) carry
// the matching services sentinel; an interrupted run returns the context's
// error after finishing the in-flight file.
func (o *Organizer) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:       uuid.NewString(),
		Source:      o.opts.Source,
		Destination: o.opts.Destination,
		DryRun:      o.opts.DryRun,
	}
	logger := o.logger.With(logging.String("run_id", report.RunID))

	if check := preflight.CheckSource(o.opts.Source); !check.Passed {
		return report, services.Wrap(services.ErrPrecondition, "pipeline", "check source", check.Detail, nil)
	}

	destParent := filepath.Dir(o.opts.Destination)
	lockPath := filepath.Join(destParent, LockFileName)
	if !o.opts.DryRun {
		if check := preflight.CheckDestination(o.opts.Destination); !check.Passed {
			return report, services.Wrap(services.ErrPrecondition, "pipeline", "check destination", check.Detail, nil)
		}
		runLock := flock.New(lockPath)
		acquired, err := runLock.TryLock()
		if err != nil {
			return report, services.Wrap(services.ErrPrecondition, "pipeline", "acquire run lock", lockPath, err)
		}
		if !acquired {
			return report, services.Wrap(services.ErrLocked, "pipeline", "acquire run lock", "another run holds "+lockPath, nil)
		}
		defer func() { _ = runLock.Unlock() }()
	}

	quarantineDir := filepath.Join(destParent, place.QuarantineDirName)

	report.enter(StageScan)
	files, scanErrors := scan.Walk(ctx, o.opts.Source, logger, o.opts.Destination, quarantineDir, lockPath)
	report.ScannedFiles = len(files)
	report.ScanErrors = scanErrors
	logger.Info("scan complete", logging.Int("files", len(files)), logging.Int("errors", scanErrors))
	if ctx.Err() != nil {
		return report, ctx.Err()
	}

	report.enter(StageClassify)
	groups, classifyFailures := classify.Build(ctx, files, classify.Options{
		Workers:   o.opts.Threads,
		Extractor: o.opts.Extractor,
		Logger:    logger,
	})
	for _, failure := range classifyFailures {
		report.Failures = append(report.Failures, place.FailureRecord{OriginalPath: failure.Path, Reason: failure.Reason})
	}
	if ctx.Err() != nil {
		return report, ctx.Err()
	}

	report.enter(StagePlan)
	plans, plannedBytes := buildPlans(groups, o.opts.Destination)
	report.Months = len(plans)
	report.PlannedBytes = plannedBytes
	if plannedBytes > 0 {
		if check := preflight.CheckFreeSpace(destParent, uint64(plannedBytes)); !check.Passed {
			// Advisory only: same-volume renames consume no extra space.
			logger.Warn("destination may lack free space for cross-device copies",
				logging.String("detail", check.Detail))
		}
	}

	report.enter(StagePlace)
	placer := place.New(logger, o.opts.DryRun)
	for _, plan := range plans {
		if ctx.Err() != nil {
			break
		}
		result := placer.Execute(ctx, plan)
		report.Moves = append(report.Moves, result.Moves...)
		report.Conflicts += result.Conflicts
		report.Failures = append(report.Failures, result.Failures...)
	}
	logger.Info("placement complete",
		logging.Int("moved", len(report.Moves)),
		logging.Int("conflicts", report.Conflicts),
		logging.Int("failures", len(report.Failures)))

	if len(report.Failures) > 0 && !o.opts.DryRun {
		report.enter(StageQuarantine)
		moved, err := place.Quarantine(quarantineDir, report.Failures, report.RunID, logger)
		if err != nil {
			logger.Warn("quarantine incomplete", logging.Error(err))
		} else {
			report.QuarantineDir = quarantineDir
			report.QuarantinedFiles = moved
		}
	}

	if o.opts.RemoveDuplicates && !o.opts.DryRun && ctx.Err() == nil {
		report.enter(StageDedup)
		summary := dedup.New(o.opts.Threads, false, logger).RunScoped(ctx, o.opts.Destination)
		report.Dedup = &summary
	}

	report.enter(StageDone)
	return report, ctx.Err()
}
