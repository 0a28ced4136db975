package model

import (
	"testing"
	"time"
)

func TestNewGenerationRecords(t *testing.T) {
	now := time.Unix(50, 0)
	sel := FeatureSelection{Numbers: true, Letters: true, Length: 10}
	records := NewGenerationRecords(sel, ModeBatch, []string{"1abcdefghi", "2a"}, now)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.Mode != ModeBatch || first.BatchSize != 2 || !first.CreatedAt.Equal(now) {
		t.Fatalf("unexpected record: %+v", first)
	}
	if first.RequestedLength != 10 || first.ActualLength != 10 {
		t.Fatalf("unexpected lengths: %+v", first)
	}
	if !first.Numbers || !first.Letters || first.Special || first.BothCases {
		t.Fatalf("unexpected classes: %+v", first)
	}
	if first.Tier != "Medium" || first.Score != 2 {
		t.Fatalf("unexpected strength: %+v", first)
	}
	if records[1].Tier != "Weak" || records[1].ActualLength != 2 {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestNewGenerationRecordsEmpty(t *testing.T) {
	if got := NewGenerationRecords(FeatureSelection{}, ModeSingle, nil, time.Now()); len(got) != 0 {
		t.Fatalf("expected no records, got %+v", got)
	}
}
