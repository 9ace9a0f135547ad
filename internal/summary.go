package internal

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/Premkumar5225/global-invest-simulator/internal/domain"
)

// Reductions over the allocation output. These feed the pie charts,
// the CAGR comparison bar and the header card - all simple
// sum-by-key passes over Pct.

func GroupPctByAssetClass(items []domain.LineItem) map[domain.AssetClass]float64 {
	out := map[domain.AssetClass]float64{}
	for _, item := range items {
		out[item.AssetClass] += item.Pct
	}
	return out
}

func GroupPctByCountry(items []domain.LineItem) map[domain.Country]float64 {
	out := map[domain.Country]float64{}
	for _, item := range items {
		out[item.Country] += item.Pct
	}
	return out
}

// TopByPct returns the n largest rows. The engine already orders its
// output descending by Pct, so this is a bounded copy, not a re-sort.
func TopByPct(items []domain.LineItem, n int) []domain.LineItem {
	if n > len(items) {
		n = len(items)
	}
	out := make([]domain.LineItem, n)
	copy(out, items[:n])
	return out
}

type AllocationSummary struct {
	NumLines         int
	WeightedCagrLow  float64
	WeightedCagrHigh float64
	MeanBandWidth    float64
	MaxSinglePct     float64
}

// Summarize computes portfolio-level expectations from the line
// items: the pct-weighted CAGR band, the mean band width and the
// largest single position.
func Summarize(items []domain.LineItem) (AllocationSummary, error) {
	if len(items) == 0 {
		return AllocationSummary{}, fmt.Errorf("cannot summarize empty allocation")
	}

	summary := AllocationSummary{NumLines: len(items)}

	bandWidths := make([]float64, 0, len(items))
	for _, item := range items {
		summary.WeightedCagrLow += item.Pct / 100 * item.ExpectedCagr.Low
		summary.WeightedCagrHigh += item.Pct / 100 * item.ExpectedCagr.High
		bandWidths = append(bandWidths, item.ExpectedCagr.High-item.ExpectedCagr.Low)
	}

	meanWidth, err := stats.Mean(bandWidths)
	if err != nil {
		return AllocationSummary{}, fmt.Errorf("failed to compute mean band width: %w", err)
	}
	summary.MeanBandWidth = meanWidth

	maxPct, err := stats.Max(pcts(items))
	if err != nil {
		return AllocationSummary{}, fmt.Errorf("failed to compute max pct: %w", err)
	}
	summary.MaxSinglePct = maxPct

	return summary, nil
}

func pcts(items []domain.LineItem) []float64 {
	out := make([]float64, 0, len(items))
	for _, item := range items {
		out = append(out, item.Pct)
	}
	return out
}
