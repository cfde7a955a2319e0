package place

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"datesift/internal/fileutil"
	"datesift/internal/logging"
)

const (
	// QuarantineDirName is created next to the destination root to collect
	// files that could not be placed.
	QuarantineDirName = "failed_files"
	// QuarantineLogName is the human-readable failure log written alongside
	// quarantined files.
	QuarantineLogName = "error_log.txt"
)

// Quarantine drains failure records into dir: it writes a single log
// enumerating every failure and then attempts, best effort, to relocate each
// failed file's current location into dir. Second-order failures are
// tolerated silently and never escalate. Returns the number of files actually
// relocated.
func Quarantine(dir string, failures []FailureRecord, runID string, logger *slog.Logger) (int, error) {
	if len(failures) == 0 {
		return 0, nil
	}
	logger = logging.NewComponentLogger(logger, "quarantine")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create quarantine directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "datesift failure log - %s", time.Now().Format("2006-01-02 15:04:05"))
	if runID != "" {
		fmt.Fprintf(&b, " - run %s", runID)
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", 80))
	b.WriteString("\n\n")
	for _, failure := range failures {
		fmt.Fprintf(&b, "file: %s\nerror: %s\n", failure.OriginalPath, failure.Reason)
		b.WriteString(strings.Repeat("-", 80))
		b.WriteString("\n")
	}
	logPath := filepath.Join(dir, QuarantineLogName)
	if err := os.WriteFile(logPath, []byte(b.String()), 0o644); err != nil {
		return 0, fmt.Errorf("write quarantine log: %w", err)
	}

	moved := 0
	for _, failure := range failures {
		src := failure.OriginalPath
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := filepath.Join(dir, filepath.Base(src))
		if _, err := os.Stat(dst); err == nil {
			base := filepath.Base(src)
			ext := filepath.Ext(base)
			stem := strings.TrimSuffix(base, ext)
			dst = filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, time.Now().Format("20060102150405"), ext))
		}
		if err := fileutil.MoveFile(src, dst); err != nil {
			// Best effort only; the log already records the original failure.
			continue
		}
		moved++
	}

	logger.Info("failures quarantined",
		logging.Int("failures", len(failures)),
		logging.Int("relocated", moved),
		logging.String("log", logPath))
	return moved, nil
}
