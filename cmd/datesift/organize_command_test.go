package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"datesift/internal/testsupport"
)

func TestOrganizeCommandMovesFilesIntoDateTree(t *testing.T) {
	source := t.TempDir()
	dest := filepath.Join(t.TempDir(), "sorted")
	when := time.Date(2023, time.January, 15, 9, 0, 0, 0, time.Local)
	testsupport.WriteFileAt(t, filepath.Join(source, "beach.jpg"), []byte("beach"), when)

	out, _, err := runCLI(t, "organize", source, "--output", dest)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "Organize run")

	want := filepath.Join(dest, "2023", "01", "20230115001.jpg")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}
}

func TestOrganizeCommandDefaultsDestinationUnderSource(t *testing.T) {
	source := t.TempDir()
	when := time.Date(2024, time.July, 4, 12, 0, 0, 0, time.Local)
	testsupport.WriteFileAt(t, filepath.Join(source, "flag.png"), []byte("flag"), when)

	if _, _, err := runCLI(t, "organize", source); err != nil {
		t.Fatalf("organize: %v", err)
	}
	want := filepath.Join(source, "organized", "2024", "07", "20240704001.png")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}
}

func TestOrganizeCommandDryRunLeavesFiles(t *testing.T) {
	source := t.TempDir()
	when := time.Date(2023, time.January, 15, 9, 0, 0, 0, time.Local)
	original := filepath.Join(source, "beach.jpg")
	testsupport.WriteFileAt(t, original, []byte("beach"), when)

	out, _, err := runCLI(t, "organize", source, "--dry-run")
	if err != nil {
		t.Fatalf("organize --dry-run: %v", err)
	}
	requireContains(t, out, "dry run")
	requireContains(t, out, filepath.Join("2023", "01", "20230115001.jpg"))
	if _, err := os.Stat(original); err != nil {
		t.Fatalf("dry run must not move files: %v", err)
	}
}

func TestOrganizeCommandRejectsMissingSource(t *testing.T) {
	if _, _, err := runCLI(t, "organize", filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestOrganizeCommandRejectsBadThreads(t *testing.T) {
	source := t.TempDir()
	if _, _, err := runCLI(t, "organize", source, "--threads", "0"); err == nil {
		t.Fatal("expected error for zero threads")
	}
}
