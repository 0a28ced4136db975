// Package model defines shared data structures.
package model

import "time"

// FeatureSelection chooses which character classes take part in generation.
type FeatureSelection struct {
	Numbers   bool
	Letters   bool
	Special   bool
	BothCases bool
	Length    int
}

// HasClass reports whether at least one character class is selected.
// BothCases alone does not count: it only widens the letter class.
func (s FeatureSelection) HasClass() bool {
	return s.Numbers || s.Letters || s.Special
}

// Config defines generation settings resolved from flags and the config file.
type Config struct {
	Selection   FeatureSelection
	Count       int
	SaveDir     string
	LegacyPools bool
	History     bool
}

// Generation modes recorded in history.
const (
	ModeSingle = "single"
	ModeBatch  = "batch"
)

// GenerationRecord describes one generated password without its contents.
type GenerationRecord struct {
	ID              int64
	CreatedAt       time.Time
	Mode            string
	BatchSize       int
	RequestedLength int
	ActualLength    int
	Numbers         bool
	Letters         bool
	Special         bool
	BothCases       bool
	Tier            string
	Score           int
}

// HistoryFilter narrows history queries.
type HistoryFilter struct {
	Tier  string
	Since *time.Time
	Last  int
}

// TierCount aggregates generation records per strength tier.
type TierCount struct {
	Tier  string
	Count int
}
