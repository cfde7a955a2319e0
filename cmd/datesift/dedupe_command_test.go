package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"datesift/internal/testsupport"
)

func TestDedupeCommandRemovesNewerCopies(t *testing.T) {
	dir := t.TempDir()
	content := []byte("same bytes")
	older := filepath.Join(dir, "older.jpg")
	newer := filepath.Join(dir, "sub", "newer.jpg")
	testsupport.WriteFileAt(t, older, content, time.Date(2023, time.March, 1, 8, 0, 0, 0, time.Local))
	testsupport.WriteFileAt(t, newer, content, time.Date(2023, time.March, 9, 8, 0, 0, 0, time.Local))

	out, _, err := runCLI(t, "dedupe", dir)
	if err != nil {
		t.Fatalf("dedupe: %v", err)
	}
	requireContains(t, out, "1 group(s)")
	if _, err := os.Stat(older); err != nil {
		t.Fatalf("oldest copy must survive: %v", err)
	}
	if _, err := os.Stat(newer); !os.IsNotExist(err) {
		t.Fatalf("expected newer copy removed, stat err %v", err)
	}
}

func TestDedupeCommandDryRunDeletesNothing(t *testing.T) {
	dir := t.TempDir()
	content := []byte("same bytes")
	a := filepath.Join(dir, "a.jpg")
	b := filepath.Join(dir, "b.jpg")
	testsupport.WriteFileAt(t, a, content, time.Date(2023, time.March, 1, 8, 0, 0, 0, time.Local))
	testsupport.WriteFileAt(t, b, content, time.Date(2023, time.March, 2, 8, 0, 0, 0, time.Local))

	out, _, err := runCLI(t, "dedupe", dir, "--dry-run")
	if err != nil {
		t.Fatalf("dedupe --dry-run: %v", err)
	}
	requireContains(t, out, "would remove 1 file(s)")
	for _, path := range []string{a, b} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("dry run must not delete %s: %v", path, err)
		}
	}
}

func TestDedupeCommandRejectsMissingDirectory(t *testing.T) {
	if _, _, err := runCLI(t, "dedupe", filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
