// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/tuipass/internal/model"
	"github.com/verte-zerg/tuipass/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Records []model.GenerationRecord
	Totals  []model.TierCount
}

// BuildReport loads filtered records plus all-time tier totals.
func BuildReport(ctx context.Context, st *store.Store, filter model.HistoryFilter) (Report, error) {
	records, err := st.ListGenerations(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	totals, err := st.TierCounts(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{Records: records, Totals: totals}, nil
}

// RenderReport writes the summary, the history table and all-time totals.
func RenderReport(w io.Writer, report Report, window int) error {
	if err := RenderSummary(w, report.Records, window); err != nil {
		return err
	}
	if err := RenderHistoryTable(w, report.Records); err != nil {
		return err
	}
	if len(report.Totals) == 0 {
		return nil
	}
	segments := make([]string, 0, len(report.Totals))
	for _, tc := range report.Totals {
		segments = append(segments, fmt.Sprintf("%s %d", tc.Tier, tc.Count))
	}
	_, err := fmt.Fprintf(w, "\nAll-time: %s\n", strings.Join(segments, " · "))
	return err
}
