// Package place executes naming plans: it moves files into their resolved
// month directories and quarantines anything that could not be placed.
//
// One failed move never aborts a batch. Failures accumulate as FailureRecords
// and are drained exactly once at run end into the quarantine directory and
// its log.
package place

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"datesift/internal/fileutil"
	"datesift/internal/logging"
	"datesift/internal/naming"
)

// Entry is one planned relocation. StartSeq is the position of the file
// within its day's sorted sequence; the final sequence may be higher when the
// destination already holds colliding names.
type Entry struct {
	Source   string
	Date     time.Time
	Ext      string
	Label    string
	StartSeq int
}

// MonthPlan carries the ordered entries targeting one month directory.
// Entries must already be in (day, modification time, path) order.
type MonthPlan struct {
	Year    int
	Month   time.Month
	Dir     string
	Entries []Entry
}

// Move records one resolved relocation, performed or merely planned.
type Move struct {
	Source      string
	Destination string
	StartSeq    int
	FinalSeq    int
}

// FailureRecord captures a file that could not be placed. OriginalPath is the
// path before any move was attempted; the record is never mutated after
// creation.
type FailureRecord struct {
	OriginalPath string
	Reason       string
}

// Result summarizes one executed month plan.
type Result struct {
	Moves     []Move
	Conflicts int
	Failures  []FailureRecord
}

// Placer executes month plans sequentially. Sequence allocation for one
// destination directory is inherently serialized because each plan owns its
// resolver.
type Placer struct {
	logger *slog.Logger
	dryRun bool
}

// New constructs a Placer. In dry-run mode names are resolved and reported
// but no filesystem mutation happens.
func New(logger *slog.Logger, dryRun bool) *Placer {
	return &Placer{logger: logging.NewComponentLogger(logger, "placer"), dryRun: dryRun}
}

// Execute resolves a final name for every entry immediately before moving it
// and performs the move. Per-entry failures are recorded and the batch
// continues. A cancelled context stops issuing new moves; entries not yet
// started are left untouched and unreported.
func (p *Placer) Execute(ctx context.Context, plan MonthPlan) Result {
	var result Result

	if !p.dryRun {
		if err := os.MkdirAll(plan.Dir, 0o755); err != nil {
			for _, entry := range plan.Entries {
				result.Failures = append(result.Failures, FailureRecord{OriginalPath: entry.Source, Reason: err.Error()})
			}
			return result
		}
	}

	resolver := naming.NewResolver(plan.Dir)
	for _, entry := range plan.Entries {
		if ctx.Err() != nil {
			break
		}
		name, seq, err := resolver.Resolve(entry.Date, entry.Ext, entry.Label, entry.StartSeq)
		if err != nil {
			if errors.Is(err, naming.ErrSequenceExhausted) {
				p.logger.Warn("sequence exhausted, skipping file",
					logging.String("source", entry.Source),
					logging.String("date", entry.Date.Format("20060102")))
			}
			result.Failures = append(result.Failures, FailureRecord{OriginalPath: entry.Source, Reason: err.Error()})
			continue
		}
		if seq != entry.StartSeq {
			result.Conflicts++
			p.logger.Debug("sequence conflict resolved",
				logging.String("source", entry.Source),
				logging.Int("requested", entry.StartSeq),
				logging.Int("assigned", seq))
		}

		destination := filepath.Join(plan.Dir, name)
		if !p.dryRun {
			if err := fileutil.MoveFile(entry.Source, destination); err != nil {
				p.logger.Warn("move failed",
					logging.String("source", entry.Source),
					logging.String("destination", destination),
					logging.Error(err))
				result.Failures = append(result.Failures, FailureRecord{OriginalPath: entry.Source, Reason: err.Error()})
				continue
			}
		}
		result.Moves = append(result.Moves, Move{
			Source:      entry.Source,
			Destination: destination,
			StartSeq:    entry.StartSeq,
			FinalSeq:    seq,
		})
	}
	return result
}
