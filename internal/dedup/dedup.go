// Package dedup removes files whose content duplicates another file,
// retaining the copy with the earliest modification time.
//
// Two scopes exist: Run compares every given path against every other
// regardless of location, while RunScoped compares only files co-located in
// the same organized month folder. Preview mode performs the identical
// read-only computation so its counts match exactly what a real run would
// delete.
package dedup

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"datesift/internal/fingerprint"
	"datesift/internal/logging"
)

// Summary reports the outcome of one deduplication pass. In preview mode the
// numbers are projections; otherwise they reflect deletions performed.
type Summary struct {
	Groups         int
	Removed        int
	BytesReclaimed int64
	Preview        bool
}

// Deduplicator groups files by content digest and prunes duplicates.
type Deduplicator struct {
	hasher  *fingerprint.Hasher
	logger  *slog.Logger
	preview bool
}

// New constructs a Deduplicator backed by a bounded hashing pool.
func New(workers int, preview bool, logger *slog.Logger) *Deduplicator {
	return &Deduplicator{
		hasher:  fingerprint.NewHasher(workers, logger),
		logger:  logging.NewComponentLogger(logger, "dedup"),
		preview: preview,
	}
}

type member struct {
	path    string
	modTime time.Time
	size    int64
}

// Run deduplicates across the full path set: every file is compared against
// every other regardless of directory.
func (d *Deduplicator) Run(ctx context.Context, paths []string) Summary {
	digests := d.hasher.Compute(ctx, paths)

	groups := make(map[fingerprint.Digest][]string)
	for path, digest := range digests {
		groups[digest] = append(groups[digest], path)
	}

	summary := Summary{Preview: d.preview}
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		d.pruneGroup(group, &summary)
	}
	return summary
}

// RunScoped deduplicates each organized month folder independently: only
// files already co-located under root/<year>/<month> are compared. Same-date
// duplicates end up siblings after organizing, so the narrower scope finds
// them without re-reading the whole tree.
func (d *Deduplicator) RunScoped(ctx context.Context, root string) Summary {
	summary := Summary{Preview: d.preview}
	for _, dir := range monthDirs(root) {
		if ctx.Err() != nil {
			break
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			d.logger.Warn("skipping unreadable folder", logging.String("dir", dir), logging.Error(err))
			continue
		}
		var paths []string
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
		if len(paths) < 2 {
			continue
		}
		folder := d.Run(ctx, paths)
		summary.Groups += folder.Groups
		summary.Removed += folder.Removed
		summary.BytesReclaimed += folder.BytesReclaimed
	}
	return summary
}

// pruneGroup retains the oldest member of one digest group and deletes (or,
// in preview, merely counts) the rest. Exactly one member always survives.
func (d *Deduplicator) pruneGroup(paths []string, summary *Summary) {
	members := make([]member, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			d.logger.Warn("skipping vanished duplicate", logging.String("path", path), logging.Error(err))
			continue
		}
		members = append(members, member{path: path, modTime: info.ModTime(), size: info.Size()})
	}
	if len(members) < 2 {
		return
	}
	sort.Slice(members, func(i, j int) bool {
		if !members[i].modTime.Equal(members[j].modTime) {
			return members[i].modTime.Before(members[j].modTime)
		}
		return members[i].path < members[j].path
	})

	summary.Groups++
	keep := members[0]
	d.logger.Info("retaining oldest copy",
		logging.String("path", keep.path),
		logging.Int("duplicates", len(members)-1))

	for _, duplicate := range members[1:] {
		if !d.preview {
			if err := os.Remove(duplicate.path); err != nil {
				d.logger.Warn("failed to delete duplicate", logging.String("path", duplicate.path), logging.Error(err))
				continue
			}
		}
		summary.Removed++
		summary.BytesReclaimed += duplicate.size
	}
}

// monthDirs lists root/<year>/<month> directories, two levels deep.
func monthDirs(root string) []string {
	var dirs []string
	years, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	for _, year := range years {
		if !year.IsDir() {
			continue
		}
		yearDir := filepath.Join(root, year.Name())
		months, err := os.ReadDir(yearDir)
		if err != nil {
			continue
		}
		for _, month := range months {
			if month.IsDir() {
				dirs = append(dirs, filepath.Join(yearDir, month.Name()))
			}
		}
	}
	sort.Strings(dirs)
	return dirs
}
