// Package scan enumerates regular files under a root directory.
//
// The walk is driven by an explicit stack rather than call recursion so
// pathological tree depths cannot exhaust the goroutine stack. Every
// directory-listing or stat failure is counted and skipped; a failed entry
// never aborts the walk. Symlinked directories are followed without cycle
// detection, a known limitation inherited from the tool's recovery-tree use
// case.
package scan

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"datesift/internal/logging"
)

// Walk returns every regular file reachable from root plus the number of
// entries that could not be accessed. No ordering is guaranteed. A cancelled
// context stops the walk early with whatever was collected so far. Paths in
// skip (files or whole subtrees) are not visited; the organizer uses this to
// keep an in-source destination tree from being re-ingested.
func Walk(ctx context.Context, root string, logger *slog.Logger, skip ...string) ([]string, int) {
	logger = logging.NewComponentLogger(logger, "scanner")

	skipped := make(map[string]struct{}, len(skip))
	for _, path := range skip {
		skipped[path] = struct{}{}
	}

	var files []string
	errorCount := 0

	stack := []string{root}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			break
		}
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			errorCount++
			logger.Debug("skipping unreadable directory", logging.String("dir", dir), logging.Error(err))
			continue
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if _, ok := skipped[path]; ok {
				continue
			}
			switch {
			case entry.Type().IsRegular():
				if _, err := entry.Info(); err != nil {
					errorCount++
					continue
				}
				files = append(files, path)
			case entry.IsDir():
				stack = append(stack, path)
			case entry.Type()&fs.ModeSymlink != 0:
				info, err := os.Stat(path)
				if err != nil {
					errorCount++
					continue
				}
				if info.IsDir() {
					stack = append(stack, path)
				} else if info.Mode().IsRegular() {
					files = append(files, path)
				}
			}
		}
	}

	if errorCount > 0 {
		logger.Warn("some paths were inaccessible and skipped", logging.Int("errors", errorCount))
	}
	return files, errorCount
}
