// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/tuipass/internal/model"
	"github.com/verte-zerg/tuipass/internal/strength"
)

const sparkChars = " .:-=+*#%@"

const historyTimeLayout = "2006-01-02 15:04"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TierSummary counts records per tier, strongest first. Every tier is present.
func TierSummary(records []model.GenerationRecord) []model.TierCount {
	counts := map[string]int{}
	for _, rec := range records {
		counts[rec.Tier]++
	}
	tiers := []strength.Tier{strength.Strong, strength.Medium, strength.Weak}
	out := make([]model.TierCount, 0, len(tiers))
	for _, tier := range tiers {
		out = append(out, model.TierCount{Tier: tier.String(), Count: counts[tier.String()]})
	}
	return out
}

// ClassLabel renders the enabled character classes of a record compactly.
func ClassLabel(rec model.GenerationRecord) string {
	var parts []string
	if rec.Numbers {
		parts = append(parts, "0-9")
	}
	if rec.Special {
		parts = append(parts, "!@#")
	}
	if rec.Letters {
		if rec.BothCases {
			parts = append(parts, "Aa")
		} else {
			parts = append(parts, "a")
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// RenderSummary prints per-tier counts and a score trend for records.
func RenderSummary(w io.Writer, records []model.GenerationRecord, window int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No generations found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Generations: %d\n", len(records)); err != nil {
		return err
	}
	for _, tc := range TierSummary(records) {
		pct := float64(tc.Count) / float64(len(records)) * 100
		if _, err := fmt.Fprintf(w, "%s: %d (%.1f%%)\n", tc.Tier, tc.Count, pct); err != nil {
			return err
		}
	}
	scores := make([]float64, len(records))
	var total float64
	for i, rec := range records {
		scores[i] = float64(rec.Score)
		total += scores[i]
	}
	if _, err := fmt.Fprintf(w, "Avg score: %.2f/4\n", total/float64(len(records))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Score trend: [%s]\n", Sparkline(MovingAverage(scores, window))); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderHistoryTable prints one row per generation record.
func RenderHistoryTable(w io.Writer, records []model.GenerationRecord) error {
	if len(records) == 0 {
		return nil
	}
	headers := []string{"When", "Mode", "Classes", "Requested", "Length", "Score", "Tier"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		mode := rec.Mode
		if rec.Mode == model.ModeBatch {
			mode = fmt.Sprintf("%s/%d", rec.Mode, rec.BatchSize)
		}
		rows = append(rows, []string{
			rec.CreatedAt.Local().Format(historyTimeLayout),
			mode,
			ClassLabel(rec),
			fmt.Sprintf("%d", rec.RequestedLength),
			fmt.Sprintf("%d", rec.ActualLength),
			fmt.Sprintf("%d", rec.Score),
			rec.Tier,
		})
	}
	rightAlign := map[int]bool{3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
