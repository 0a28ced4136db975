package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Mode", "Length", "Tier"}
	rows := [][]string{
		{"single", "16", "Strong"},
		{"batch/10", "8", "Medium"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Mode     Length Tier  " {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "single       16 Strong" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "batch/10      8 Medium" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("パス"); got != 4 {
		t.Fatalf("expected width 4, got %d", got)
	}
}
