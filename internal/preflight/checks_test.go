package preflight_test

import (
	"os"
	"path/filepath"
	"testing"

	"datesift/internal/preflight"
)

func TestCheckSourcePasses(t *testing.T) {
	result := preflight.CheckSource(t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
}

func TestCheckSourceMissing(t *testing.T) {
	result := preflight.CheckSource(filepath.Join(t.TempDir(), "missing"))
	if result.Passed {
		t.Fatalf("expected failure, got %+v", result)
	}
}

func TestCheckSourceRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	result := preflight.CheckSource(path)
	if result.Passed {
		t.Fatalf("expected failure for non-directory, got %+v", result)
	}
}

func TestCheckDestinationWalksToExistingAncestor(t *testing.T) {
	base := t.TempDir()
	result := preflight.CheckDestination(filepath.Join(base, "not", "yet", "created"))
	if !result.Passed {
		t.Fatalf("expected pass via ancestor %s, got %+v", base, result)
	}
}

func TestCheckFreeSpaceTinyRequirement(t *testing.T) {
	result := preflight.CheckFreeSpace(t.TempDir(), 1)
	if !result.Passed {
		t.Fatalf("expected at least one free byte, got %+v", result)
	}
}

func TestCheckFreeSpaceImpossibleRequirement(t *testing.T) {
	result := preflight.CheckFreeSpace(t.TempDir(), 1<<62)
	if result.Passed {
		t.Fatalf("expected failure for absurd requirement, got %+v", result)
	}
}
