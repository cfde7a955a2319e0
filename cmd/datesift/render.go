package main

import (
	"fmt"
	"io"

	"datesift/internal/pipeline"
	"datesift/internal/report"
)

func renderRunReport(out io.Writer, r *pipeline.Report) {
	renderer := report.NewRenderer(out)

	title := "Organize run"
	if r.DryRun {
		title = "Organize run (dry run, nothing was moved)"
	}
	renderer.Printf("%s %s\n", title, r.RunID)

	moved := "Files moved"
	if r.DryRun {
		moved = "Moves planned"
	}
	rows := [][]string{
		{"Source", r.Source},
		{"Destination", r.Destination},
		{"Files scanned", fmt.Sprintf("%d", r.ScannedFiles)},
		{"Scan errors", fmt.Sprintf("%d", r.ScanErrors)},
		{"Months", fmt.Sprintf("%d", r.Months)},
		{moved, fmt.Sprintf("%d", len(r.Moves))},
		{"Name conflicts resolved", fmt.Sprintf("%d", r.Conflicts)},
		{"Failures", fmt.Sprintf("%d", len(r.Failures))},
		{"Data placed", report.FormatBytes(r.PlannedBytes)},
	}
	renderer.Table([]string{"Metric", "Value"}, rows, []report.Alignment{report.AlignLeft, report.AlignRight})

	if r.DryRun && len(r.Moves) > 0 {
		moveRows := make([][]string, 0, len(r.Moves))
		for _, move := range r.Moves {
			moveRows = append(moveRows, []string{move.Source, move.Destination})
		}
		renderer.Table([]string{"Source", "Planned destination"}, moveRows, nil)
	}

	if len(r.Failures) > 0 {
		failureRows := make([][]string, 0, len(r.Failures))
		for _, failure := range r.Failures {
			failureRows = append(failureRows, []string{failure.OriginalPath, failure.Reason})
		}
		renderer.Table([]string{"File", "Error"}, failureRows, nil)
		if r.QuarantineDir != "" {
			renderer.Printf("%d failed file(s) collected under %s\n", r.QuarantinedFiles, r.QuarantineDir)
		}
	}

	if r.Dedup != nil {
		renderer.Printf("Duplicates: %d group(s), %d file(s) removed, %s reclaimed\n",
			r.Dedup.Groups, r.Dedup.Removed, report.FormatBytes(r.Dedup.BytesReclaimed))
	}
}
