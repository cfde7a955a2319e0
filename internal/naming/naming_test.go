package naming_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"datesift/internal/naming"
)

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"normal",
		"with space",
		"a<b>c:d\"e|f?g*h\\i/j",
		"\x00\x01\x02\x1f",
		"\r\n\t",
		"...dots and spaces... ",
		". ",
		"é✓日本",
	}
	for _, in := range inputs {
		once := naming.Sanitize(in)
		twice := naming.Sanitize(once)
		if once != twice {
			t.Fatalf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitizeRules(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "unnamed"},
		{"\x00\x1f\r\n\t", "unnamed"},
		{". . .", "unnamed"},
		{"a/b\\c", "a_b_c"},
		{"x<y>", "x_y_"},
		{"  photo  ", "photo"},
		{"name.", "name"},
	}
	for _, tc := range cases {
		if got := naming.Sanitize(tc.in); got != tc.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFilenameForms(t *testing.T) {
	date := time.Date(2023, time.January, 15, 10, 30, 0, 0, time.Local)
	if got := naming.Filename(date, 1, ".jpg", ""); got != "20230115001.jpg" {
		t.Fatalf("unexpected filename: %q", got)
	}
	if got := naming.Filename(date, 42, "png", "Nikon"); got != "Nikon_20230115042.png" {
		t.Fatalf("unexpected labeled filename: %q", got)
	}
	if got := naming.Filename(date, 999, "", ""); got != "20230115999" {
		t.Fatalf("unexpected extensionless filename: %q", got)
	}
}

func TestResolveSkipsExistingNames(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.Local)
	if err := os.WriteFile(filepath.Join(dir, "20230115001.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resolver := naming.NewResolver(dir)
	name, seq, err := resolver.Resolve(date, ".jpg", "", 1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if name != "20230115002.jpg" || seq != 2 {
		t.Fatalf("expected sequence 2 after collision, got %q seq %d", name, seq)
	}
}

func TestResolveTracksAllocationsWithinRun(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.Local)

	resolver := naming.NewResolver(dir)
	first, _, err := resolver.Resolve(date, ".jpg", "", 1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, _, err := resolver.Resolve(date, ".jpg", "", 1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if first == second {
		t.Fatalf("resolver handed out %q twice without any file on disk", first)
	}
}

func TestResolveSequenceExhausted(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.Local)

	resolver := naming.NewResolver(dir)
	_, _, err := resolver.Resolve(date, ".jpg", "", naming.MaxSequence+1)
	if !errors.Is(err, naming.ErrSequenceExhausted) {
		t.Fatalf("expected ErrSequenceExhausted, got %v", err)
	}
}

func TestResolveLabelsDoNotCollideWithUnlabeled(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.Local)

	resolver := naming.NewResolver(dir)
	plain, _, err := resolver.Resolve(date, ".jpg", "", 1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	labeled, _, err := resolver.Resolve(date, ".jpg", "Canon", 1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if plain == labeled {
		t.Fatalf("labeled and unlabeled names collided: %q", plain)
	}
	if labeled != "Canon_20230115001.jpg" {
		t.Fatalf("unexpected labeled name %q", labeled)
	}
}

func TestResolveFillsFullRange(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.Local)
	resolver := naming.NewResolver(dir)

	seen := make(map[string]struct{})
	for i := 0; i < 25; i++ {
		name, _, err := resolver.Resolve(date, ".raw", "", 1)
		if err != nil {
			t.Fatalf("Resolve %d: %v", i, err)
		}
		if _, dup := seen[name]; dup {
			t.Fatalf("duplicate allocation %q", name)
		}
		seen[name] = struct{}{}
	}
	if _, ok := seen[fmt.Sprintf("%s%03d.raw", date.Format("20060102"), 25)]; !ok {
		t.Fatal("expected sequences to fill contiguously from 001")
	}
}
