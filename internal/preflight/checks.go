// Package preflight validates run preconditions before any mutation.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Result captures the outcome of a single check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckSource verifies the source tree exists, is a directory, and is
// traversable. Failure here is the one fatal precondition of a run.
func CheckSource(path string) Result {
	const name = "source"
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckDestination verifies the nearest existing ancestor of the destination
// is writable. The destination itself usually does not exist yet.
func CheckDestination(path string) Result {
	const name = "destination"
	existing := nearestExisting(path)
	if existing == "" {
		return Result{Name: name, Detail: fmt.Sprintf("no writable ancestor for %s", path)}
	}
	if err := unix.Access(existing, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", existing, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", existing)}
}

// CheckFreeSpace compares the free bytes on the destination volume against
// the bytes the run expects to write. Moves within one volume consume no
// extra space, so the check is advisory for the common case and load-bearing
// for cross-device runs.
func CheckFreeSpace(path string, needed uint64) Result {
	const name = "free space"
	existing := nearestExisting(path)
	if existing == "" {
		return Result{Name: name, Detail: fmt.Sprintf("cannot stat volume for %s", path)}
	}
	var fs unix.Statfs_t
	if err := unix.Statfs(existing, &fs); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", existing, err)}
	}
	available := fs.Bavail * uint64(fs.Bsize)
	if available < needed {
		return Result{Name: name, Detail: fmt.Sprintf("%d bytes available, %d needed", available, needed)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d bytes available", available)}
}

func nearestExisting(path string) string {
	for current := path; ; current = filepath.Dir(current) {
		if _, err := os.Stat(current); err == nil {
			return current
		}
		if current == filepath.Dir(current) {
			return ""
		}
	}
}
