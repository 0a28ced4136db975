package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuipass/internal/model"
	"github.com/verte-zerg/tuipass/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var records []model.GenerationRecord
	for i := 0; i < 3; i++ {
		tier := "Strong"
		if i == 0 {
			tier = "Weak"
		}
		records = append(records, model.GenerationRecord{
			CreatedAt:       time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
			Mode:            model.ModeBatch,
			BatchSize:       3,
			RequestedLength: 16,
			ActualLength:    16,
			Numbers:         true,
			Letters:         true,
			Special:         true,
			BothCases:       true,
			Tier:            tier,
			Score:           4,
		})
	}
	if err := st.InsertGenerations(ctx, records); err != nil {
		t.Fatalf("insert generations: %v", err)
	}

	report, err := BuildReport(ctx, st, model.HistoryFilter{Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(report.Records))
	}
	if report.Records[0].ID != records[1].ID || report.Records[1].ID != records[2].ID {
		t.Fatalf("unexpected record ids: %+v", report.Records)
	}
	if len(report.Totals) != 2 {
		t.Fatalf("expected all-time totals for 2 tiers, got %+v", report.Totals)
	}

	var buf bytes.Buffer
	if err := RenderReport(&buf, report, 5); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Generations: 2", "Strong: 2 (100.0%)", "batch/3", "0-9 !@# Aa", "All-time: Strong 2 · Weak 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil, 5); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No generations found." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestTierSummaryIncludesAllTiers(t *testing.T) {
	summary := TierSummary([]model.GenerationRecord{{Tier: "Medium"}, {Tier: "Medium"}})
	if len(summary) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(summary))
	}
	if summary[0].Tier != "Strong" || summary[0].Count != 0 {
		t.Fatalf("unexpected first tier: %+v", summary[0])
	}
	if summary[1].Tier != "Medium" || summary[1].Count != 2 {
		t.Fatalf("unexpected medium count: %+v", summary[1])
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 4}); got != " @" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{2, 2, 2}); got != "+++" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
}

func TestClassLabel(t *testing.T) {
	if got := ClassLabel(model.GenerationRecord{Letters: true}); got != "a" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := ClassLabel(model.GenerationRecord{}); got != "-" {
		t.Fatalf("unexpected empty label: %q", got)
	}
}
