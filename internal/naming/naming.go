// Package naming generates collision-free destination filenames of the
// canonical form [Label_]YYYYMMDDsss.ext, where sss is a zero-padded
// three-digit sequence between 001 and 999.
package naming

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxSequence is the highest sequence number a single date and label
// combination can hold.
const MaxSequence = 999

// ErrSequenceExhausted reports that no free sequence remained for a date.
// The condition is fatal to that one file's placement, never to the run.
var ErrSequenceExhausted = errors.New("sequence exhausted")

const placeholder = "unnamed"

// Sanitize cleans a name fragment for portable filesystem use: control
// characters (code points below 32, including CR, LF, TAB) and NUL bytes are
// stripped, characters illegal in portable filenames are replaced with
// underscores, and leading or trailing dots and spaces are removed. An input
// that cleans down to nothing becomes "unnamed". Sanitize is idempotent.
func Sanitize(name string) string {
	if name == "" {
		return placeholder
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r < 32:
			// dropped, covers CR, LF, TAB, and NUL
		case strings.ContainsRune(`<>:"|?*\/`, r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	cleaned := strings.Trim(b.String(), ". ")
	if cleaned == "" {
		return placeholder
	}
	return cleaned
}

// Filename renders the canonical name for a date, sequence, extension, and
// optional label. Extension and label are sanitized; a missing leading dot on
// the extension is restored after sanitization strips it.
func Filename(date time.Time, seq int, ext, label string) string {
	cleanExt := ""
	if strings.Trim(ext, ". ") != "" {
		cleanExt = "." + Sanitize(ext)
	}
	base := fmt.Sprintf("%s%03d%s", date.Format("20060102"), seq, cleanExt)
	if label == "" {
		return base
	}
	return Sanitize(label) + "_" + base
}

// Resolver allocates unique filenames inside one destination directory.
// Existence is probed against the filesystem immediately before assignment and
// against names the resolver already handed out during this run, so repeated
// or concurrent-with-prior runs cannot double-assign. A Resolver is not safe
// for concurrent use; allocation for one directory must stay serialized.
type Resolver struct {
	dir   string
	taken map[string]struct{}
}

// NewResolver creates a resolver for the given destination directory. The
// directory does not need to exist yet.
func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir, taken: make(map[string]struct{})}
}

// Resolve probes candidate names starting at startSeq, incrementing past
// collisions, and returns the free filename plus the sequence that produced
// it. It fails with ErrSequenceExhausted when no sequence up to MaxSequence is
// free for the date and label combination.
func (r *Resolver) Resolve(date time.Time, ext, label string, startSeq int) (string, int, error) {
	if startSeq < 1 {
		startSeq = 1
	}
	for seq := startSeq; seq <= MaxSequence; seq++ {
		name := Filename(date, seq, ext, label)
		if _, held := r.taken[name]; held {
			continue
		}
		if _, err := os.Stat(filepath.Join(r.dir, name)); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", 0, err
		}
		r.taken[name] = struct{}{}
		return name, seq, nil
	}
	return "", 0, fmt.Errorf("%w: no free sequence for %s in %s", ErrSequenceExhausted, date.Format("20060102"), r.dir)
}
