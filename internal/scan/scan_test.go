package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"datesift/internal/logging"
	"datesift/internal/scan"
)

func TestWalkCollectsNestedFiles(t *testing.T) {
	root := t.TempDir()
	want := []string{
		filepath.Join(root, "a.jpg"),
		filepath.Join(root, "sub", "b.png"),
		filepath.Join(root, "sub", "deep", "c.mov"),
	}
	for _, path := range want {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	files, errCount := scan.Walk(context.Background(), root, logging.NewNop())
	if errCount != 0 {
		t.Fatalf("expected zero errors, got %d", errCount)
	}
	sort.Strings(files)
	sort.Strings(want)
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(files), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("file %d: got %q, want %q", i, files[i], want[i])
		}
	}
}

func TestWalkToleratesInaccessibleSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	root := t.TempDir()
	accessible := filepath.Join(root, "ok")
	blocked := filepath.Join(root, "blocked")
	for _, dir := range []string{accessible, blocked} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	for _, name := range []string{"one.jpg", "two.jpg", "three.jpg"} {
		if err := os.WriteFile(filepath.Join(accessible, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(blocked, "hidden.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Chmod(blocked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(blocked, 0o755) })

	files, errCount := scan.Walk(context.Background(), root, logging.NewNop())
	if errCount == 0 {
		t.Fatal("expected nonzero error count")
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 accessible files, got %d: %v", len(files), files)
	}
}

func TestWalkIgnoresDirectoriesThemselves(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "empty", "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files, errCount := scan.Walk(context.Background(), root, logging.NewNop())
	if errCount != 0 {
		t.Fatalf("expected zero errors, got %d", errCount)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}

func TestWalkSkipsExcludedPaths(t *testing.T) {
	root := t.TempDir()
	keep := filepath.Join(root, "keep.jpg")
	lock := filepath.Join(root, ".lock")
	organized := filepath.Join(root, "organized")
	if err := os.MkdirAll(organized, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, path := range []string{keep, lock, filepath.Join(organized, "done.jpg")} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	files, errCount := scan.Walk(context.Background(), root, logging.NewNop(), organized, lock)
	if errCount != 0 {
		t.Fatalf("expected zero errors, got %d", errCount)
	}
	if len(files) != 1 || files[0] != keep {
		t.Fatalf("expected only %q, got %v", keep, files)
	}
}

func TestWalkStopsOnCancelledContext(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	files, _ := scan.Walk(ctx, root, logging.NewNop())
	if len(files) != 0 {
		t.Fatalf("expected cancelled walk to return early, got %v", files)
	}
}
