package internal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Premkumar5225/global-invest-simulator/internal/domain"
)

func TestGroupPct(t *testing.T) {
	items := []domain.LineItem{
		{AssetClass: domain.AssetClass_Equity, Country: domain.Country_USA, Pct: 40},
		{AssetClass: domain.AssetClass_Equity, Country: domain.Country_India, Pct: 20},
		{AssetClass: domain.AssetClass_FixedIncome, Country: domain.Country_USA, Pct: 30},
		{AssetClass: domain.AssetClass_Crypto, Country: domain.Country_Global, Pct: 10},
	}

	t.Run("by asset class", func(t *testing.T) {
		grouped := GroupPctByAssetClass(items)

		require.InDelta(t, 60, grouped[domain.AssetClass_Equity], 1e-9)
		require.InDelta(t, 30, grouped[domain.AssetClass_FixedIncome], 1e-9)
		require.InDelta(t, 10, grouped[domain.AssetClass_Crypto], 1e-9)
	})

	t.Run("by country", func(t *testing.T) {
		grouped := GroupPctByCountry(items)

		require.InDelta(t, 70, grouped[domain.Country_USA], 1e-9)
		require.InDelta(t, 20, grouped[domain.Country_India], 1e-9)
		require.InDelta(t, 10, grouped[domain.Country_Global], 1e-9)
	})
}

func TestTopByPct(t *testing.T) {
	items, err := Allocate(validPrefs())
	require.NoError(t, err)

	t.Run("returns n largest rows", func(t *testing.T) {
		top := TopByPct(items, 8)

		require.Len(t, top, 8)
		require.Equal(t, items[0], top[0])
		for i := 1; i < len(top); i++ {
			require.GreaterOrEqual(t, top[i-1].Pct, top[i].Pct)
		}
	})

	t.Run("n larger than the list returns everything", func(t *testing.T) {
		top := TopByPct(items, 1000)
		require.Len(t, top, len(items))
	})

	t.Run("does not alias the input slice", func(t *testing.T) {
		top := TopByPct(items, 1)
		top[0].Pct = -1
		require.NotEqual(t, -1.0, items[0].Pct)
	})
}

func TestSummarize(t *testing.T) {
	t.Run("weighted band over a simple allocation", func(t *testing.T) {
		items := []domain.LineItem{
			{Pct: 50, ExpectedCagr: domain.CagrRange{Low: 10, High: 20}},
			{Pct: 50, ExpectedCagr: domain.CagrRange{Low: 4, High: 6}},
		}

		summary, err := Summarize(items)
		require.NoError(t, err)

		require.InDelta(t, 7, summary.WeightedCagrLow, 1e-9)
		require.InDelta(t, 13, summary.WeightedCagrHigh, 1e-9)
		require.InDelta(t, 6, summary.MeanBandWidth, 1e-9) // (10 + 2) / 2
		require.InDelta(t, 50, summary.MaxSinglePct, 1e-9)
		require.Equal(t, 2, summary.NumLines)
	})

	t.Run("low never exceeds high on real output", func(t *testing.T) {
		items, err := Allocate(validPrefs())
		require.NoError(t, err)

		summary, err := Summarize(items)
		require.NoError(t, err)

		require.LessOrEqual(t, summary.WeightedCagrLow, summary.WeightedCagrHigh)
		require.Positive(t, summary.WeightedCagrHigh)
	})

	t.Run("empty allocation errors", func(t *testing.T) {
		_, err := Summarize(nil)
		require.Error(t, err)
	})
}
