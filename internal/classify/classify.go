// Package classify groups scanned files into date buckets.
//
// Each file becomes an immutable Record keyed by the year and month of its
// modification time. Within a month records are ordered by (modification
// time, path), a total and stable order that downstream sequence allocation
// relies on for reproducible output across runs.
package classify

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"datesift/internal/label"
	"datesift/internal/logging"
)

// Record describes one file scheduled for organization. Records are built
// once during classification and never mutated afterwards.
type Record struct {
	Path    string
	ModTime time.Time
	Size    int64
	Ext     string
	Label   string
	Year    int
	Month   time.Month
	Day     int
}

// MonthKey identifies one destination month directory.
type MonthKey struct {
	Year  int
	Month time.Month
}

// Failure notes a file that could not be classified.
type Failure struct {
	Path   string
	Reason string
}

// Options configures a classification pass.
type Options struct {
	// Workers bounds the concurrent stat and label extraction pool.
	Workers int
	// Extractor, when non-nil, supplies optional filename labels. Extractor
	// failures simply leave the label empty.
	Extractor label.Extractor
	Logger    *slog.Logger
}

// Build stats every path concurrently, derives records, and groups them by
// (year, month). Stat failures are returned as Failures, not errors. The
// per-month slices come back fully sorted.
func Build(ctx context.Context, paths []string, opts Options) (map[MonthKey][]Record, []Failure) {
	logger := logging.NewComponentLogger(opts.Logger, "classifier")
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	records := make([]Record, 0, len(paths))
	var failures []Failure
	var done int

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, path := range paths {
		path := path
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			info, err := os.Stat(path)
			if err != nil {
				mu.Lock()
				failures = append(failures, Failure{Path: path, Reason: err.Error()})
				mu.Unlock()
				return nil
			}

			record := newRecord(path, info.ModTime(), info.Size())
			if opts.Extractor != nil {
				if value, ok := opts.Extractor.ExtractLabel(path); ok {
					record.Label = value
				}
			}

			mu.Lock()
			records = append(records, record)
			done++
			if done%1000 == 0 {
				logger.Info("classification progress", logging.Int("done", done), logging.Int("total", len(paths)))
			}
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	groups := make(map[MonthKey][]Record)
	for _, record := range records {
		key := MonthKey{Year: record.Year, Month: record.Month}
		groups[key] = append(groups[key], record)
	}
	for key := range groups {
		SortRecords(groups[key])
	}
	return groups, failures
}

func newRecord(path string, modTime time.Time, size int64) Record {
	return Record{
		Path:    path,
		ModTime: modTime,
		Size:    size,
		Ext:     filepath.Ext(path),
		Year:    modTime.Year(),
		Month:   modTime.Month(),
		Day:     modTime.Day(),
	}
}

// SortRecords orders records ascending by modification time, breaking ties on
// the path string so equal timestamps still sort deterministically.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].ModTime.Equal(records[j].ModTime) {
			return records[i].ModTime.Before(records[j].ModTime)
		}
		return records[i].Path < records[j].Path
	})
}

// SortedKeys returns the month keys in ascending calendar order.
func SortedKeys(groups map[MonthKey][]Record) []MonthKey {
	keys := make([]MonthKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Month < keys[j].Month
	})
	return keys
}

// ByDay splits a sorted month group into per-day sequences, preserving record
// order, and returns the day numbers ascending.
func ByDay(records []Record) (map[int][]Record, []int) {
	days := make(map[int][]Record)
	for _, record := range records {
		days[record.Day] = append(days[record.Day], record)
	}
	order := make([]int, 0, len(days))
	for day := range days {
		order = append(order, day)
	}
	sort.Ints(order)
	return days, order
}
