package model

import (
	"time"

	"github.com/verte-zerg/tuipass/internal/strength"
)

// NewGenerationRecords describes each generated password for history,
// keeping its strength verdict but never its text.
func NewGenerationRecords(sel FeatureSelection, mode string, passwords []string, now time.Time) []GenerationRecord {
	records := make([]GenerationRecord, 0, len(passwords))
	for _, password := range passwords {
		res := strength.Evaluate(password)
		records = append(records, GenerationRecord{
			CreatedAt:       now,
			Mode:            mode,
			BatchSize:       len(passwords),
			RequestedLength: sel.Length,
			ActualLength:    len(password),
			Numbers:         sel.Numbers,
			Letters:         sel.Letters,
			Special:         sel.Special,
			BothCases:       sel.BothCases,
			Tier:            res.Tier.String(),
			Score:           res.Score,
		})
	}
	return records
}
