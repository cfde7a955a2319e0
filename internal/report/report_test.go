package report_test

import (
	"bytes"
	"strings"
	"testing"

	"datesift/internal/report"
)

func TestTableRendersHeadersAndRows(t *testing.T) {
	var buf bytes.Buffer
	renderer := report.NewRenderer(&buf)
	renderer.Table(
		[]string{"Month", "Files"},
		[][]string{{"2023/01", "2"}, {"2023/02", "1"}},
		[]report.Alignment{report.AlignLeft, report.AlignRight},
	)

	out := buf.String()
	for _, fragment := range []string{"Month", "Files", "2023/01", "2023/02"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in table output:\n%s", fragment, out)
		}
	}
}

func TestTablePadsShortRows(t *testing.T) {
	var buf bytes.Buffer
	renderer := report.NewRenderer(&buf)
	renderer.Table([]string{"A", "B"}, [][]string{{"only"}}, nil)
	if !strings.Contains(buf.String(), "only") {
		t.Fatalf("expected padded row in output:\n%s", buf.String())
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{1024, "1.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tc := range cases {
		if got := report.FormatBytes(tc.in); got != tc.want {
			t.Fatalf("FormatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
