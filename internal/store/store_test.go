package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuipass/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func record(i int, tier string) model.GenerationRecord {
	return model.GenerationRecord{
		CreatedAt:       time.Unix(0, 0).Add(time.Duration(i) * time.Minute).UTC(),
		Mode:            model.ModeSingle,
		BatchSize:       1,
		RequestedLength: 16,
		ActualLength:    16,
		Numbers:         true,
		Letters:         true,
		Special:         i%2 == 0,
		BothCases:       true,
		Tier:            tier,
		Score:           3,
	}
}

func TestInsertAndListGenerations(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	records := []model.GenerationRecord{record(0, "Strong"), record(1, "Medium"), record(2, "Strong")}
	if err := st.InsertGenerations(ctx, records); err != nil {
		t.Fatalf("insert: %v", err)
	}
	for i, rec := range records {
		if rec.ID == 0 {
			t.Fatalf("record %d: expected id to be set", i)
		}
	}

	all, err := st.ListGenerations(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].ID != records[0].ID || all[2].ID != records[2].ID {
		t.Fatalf("expected oldest first, got %+v", all)
	}
	if !all[0].Special || all[1].Special {
		t.Fatalf("expected booleans to round-trip: %+v", all)
	}
	if !all[1].CreatedAt.Equal(records[1].CreatedAt) {
		t.Fatalf("expected created_at to round-trip: %v vs %v", all[1].CreatedAt, records[1].CreatedAt)
	}
}

func TestListGenerationsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var records []model.GenerationRecord
	for i := 0; i < 5; i++ {
		tier := "Weak"
		if i >= 2 {
			tier = "Strong"
		}
		records = append(records, record(i, tier))
	}
	if err := st.InsertGenerations(ctx, records); err != nil {
		t.Fatalf("insert: %v", err)
	}

	last, err := st.ListGenerations(ctx, model.HistoryFilter{Last: 2})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 2 || last[0].ID != records[3].ID || last[1].ID != records[4].ID {
		t.Fatalf("unexpected last records: %+v", last)
	}

	weak, err := st.ListGenerations(ctx, model.HistoryFilter{Tier: "Weak"})
	if err != nil {
		t.Fatalf("list weak: %v", err)
	}
	if len(weak) != 2 {
		t.Fatalf("expected 2 weak records, got %d", len(weak))
	}

	since := records[3].CreatedAt
	recent, err := st.ListGenerations(ctx, model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records since %v, got %d", since, len(recent))
	}
}

func TestTierCounts(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	records := []model.GenerationRecord{record(0, "Weak"), record(1, "Strong"), record(2, "Medium"), record(3, "Strong")}
	if err := st.InsertGenerations(ctx, records); err != nil {
		t.Fatalf("insert: %v", err)
	}
	counts, err := st.TierCounts(ctx)
	if err != nil {
		t.Fatalf("tier counts: %v", err)
	}
	want := []model.TierCount{{Tier: "Strong", Count: 2}, {Tier: "Medium", Count: 1}, {Tier: "Weak", Count: 1}}
	if len(counts) != len(want) {
		t.Fatalf("expected %d tiers, got %+v", len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("unexpected counts: %+v", counts)
		}
	}
}

func TestInsertGenerationsEmpty(t *testing.T) {
	st := openTestStore(t)
	if err := st.InsertGenerations(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
