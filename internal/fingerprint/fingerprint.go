// Package fingerprint computes content digests used for duplicate detection.
//
// Digests are 128-bit MD5 sums of the full byte stream. MD5 is sufficient
// here: the fingerprint distinguishes identical from non-identical content and
// carries no security weight. Files are read in fixed 64 KiB chunks so memory
// stays bounded regardless of file size.
package fingerprint

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"datesift/internal/logging"
)

const chunkSize = 64 * 1024

// Digest is a 128-bit content fingerprint.
type Digest [md5.Size]byte

// String returns the lowercase hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Hasher computes digests over sets of paths with a bounded worker pool.
type Hasher struct {
	workers int
	logger  *slog.Logger
}

// NewHasher constructs a Hasher. Worker counts below one are clamped to one.
func NewHasher(workers int, logger *slog.Logger) *Hasher {
	if workers < 1 {
		workers = 1
	}
	return &Hasher{
		workers: workers,
		logger:  logging.NewComponentLogger(logger, "fingerprint"),
	}
}

// Compute returns a digest for every path that hashed successfully. Unreadable
// files are dropped with a logged warning. Identical content always yields an
// identical digest regardless of path or worker scheduling.
func (h *Hasher) Compute(ctx context.Context, paths []string) map[string]Digest {
	results := make(map[string]Digest, len(paths))
	var mu sync.Mutex
	var done int

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(h.workers)

	for _, path := range paths {
		path := path
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			digest, err := HashFile(path)
			if err != nil {
				h.logger.Warn("skipping unreadable file", logging.String("path", path), logging.Error(err))
				return nil
			}
			mu.Lock()
			results[path] = digest
			done++
			if done%1000 == 0 {
				h.logger.Info("hashing progress", logging.Int("done", done), logging.Int("total", len(paths)))
			}
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()
	return results
}

// HashFile digests a single file, reading in bounded chunks.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, err
	}
	defer file.Close()

	hasher := md5.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(hasher, file, buf); err != nil {
		return Digest{}, err
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}
