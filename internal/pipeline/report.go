package pipeline

import (
	"datesift/internal/dedup"
	"datesift/internal/place"
)

// Report accumulates everything a run produced. It is filled in stage order
// and is valid (if partial) whenever Run returns, including on fatal errors.
type Report struct {
	RunID       string
	Source      string
	Destination string
	DryRun      bool

	ScannedFiles int
	ScanErrors   int
	Months       int
	PlannedBytes int64

	Moves     []place.Move
	Conflicts int
	Failures  []place.FailureRecord

	QuarantineDir    string
	QuarantinedFiles int

	// Dedup is nil unless the duplicate removal stage ran.
	Dedup *dedup.Summary

	// Stages lists every stage entered, in order.
	Stages []Stage
}

func (r *Report) enter(stage Stage) {
	r.Stages = append(r.Stages, stage)
}

// Completed reports whether the run reached its final stage.
func (r *Report) Completed() bool {
	return len(r.Stages) > 0 && r.Stages[len(r.Stages)-1] == StageDone
}
