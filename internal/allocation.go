package internal

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Premkumar5225/global-invest-simulator/internal/domain"
)

// Turn declarative preferences into a percentage-weighted list of
// line items summing to 100. The adjustment order below is
// load-bearing: horizon tilt runs before the opt-outs and the cap,
// and normalization runs last. Reordering silently changes output.

var (
	// ErrInvalidInput marks preferences the engine refuses to compute
	// on: a region split that does not add to 100, or an unknown enum.
	ErrInvalidInput = errors.New("invalid preferences")

	// ErrDegenerateWeights marks a category total <= 0 after
	// adjustments. Unreachable with the shipped base tables, but the
	// engine must never emit NaN or divide by zero.
	ErrDegenerateWeights = errors.New("total category weight is not positive")
)

type category string

const (
	category_Equity      category = "equity"
	category_FixedIncome category = "fixedIncome"
	category_Gold        category = "gold"
	category_Reits       category = "reits"
	category_Cash        category = "cash"
	category_Crypto      category = "crypto"
)

// baseWeights is one snapshot of the category-level percentages.
// Each adjustment step takes a snapshot and returns a new one, so
// every step is independently testable.
type baseWeights map[category]float64

func (w baseWeights) copy() baseWeights {
	out := make(baseWeights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

func (w baseWeights) total() float64 {
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	return sum
}

// Category weights per risk profile. Each row sums to 100.
var baseWeightsByProfile = map[domain.RiskProfile]baseWeights{
	domain.RiskProfile_Conservative: {
		category_Equity:      35,
		category_FixedIncome: 45,
		category_Gold:        12,
		category_Reits:       4,
		category_Cash:        4,
		category_Crypto:      0,
	},
	domain.RiskProfile_Moderate: {
		category_Equity:      60,
		category_FixedIncome: 25,
		category_Gold:        8,
		category_Reits:       5,
		category_Cash:        2,
		category_Crypto:      0,
	},
	domain.RiskProfile_ModerateAggressive: {
		category_Equity:      70,
		category_FixedIncome: 15,
		category_Gold:        7,
		category_Reits:       5,
		category_Cash:        1,
		category_Crypto:      2,
	},
	domain.RiskProfile_Aggressive: {
		category_Equity:      80,
		category_FixedIncome: 8,
		category_Gold:        5,
		category_Reits:       5,
		category_Cash:        0,
		category_Crypto:      2,
	},
}

const (
	longHorizonYears  = 10
	shortHorizonYears = 3

	// line items below this share are folded into one synthetic
	// "Consolidated" row
	consolidationThresholdPct = 0.4

	regionSplitTolerance = 1e-6
	weightSumTolerance   = 1e-6
)

// Allocate computes the full allocation for one set of preferences.
// Pure and deterministic: identical preferences always produce an
// identical, identically-ordered list. Either a complete list whose
// Pct values sum to 100 is returned, or an error - never partial
// output.
func Allocate(prefs domain.Preferences) ([]domain.LineItem, error) {
	prefs = prefs.Clamped()
	if err := validatePreferences(prefs); err != nil {
		return nil, err
	}

	base, ok := baseWeightsByProfile[prefs.RiskProfile]
	if !ok {
		return nil, fmt.Errorf("%w: unknown risk profile %q", ErrInvalidInput, prefs.RiskProfile)
	}

	weights := base.copy()
	weights = applyHorizonTilt(weights, prefs.HorizonYears)
	weights = applyGoldOptOut(weights, prefs.IncludeGold)
	weights = applyCryptoOptOut(weights, prefs.IncludeCrypto)
	weights = applyCryptoCap(weights, prefs.IncludeCrypto, prefs.CryptoCapPct)

	weights, err := normalize(weights)
	if err != nil {
		return nil, err
	}

	items := expandLineItems(weights, prefs.RegionSplit)
	items = consolidateSmallSlices(items)

	// validate the rows still add to 100
	sum := 0.0
	for _, item := range items {
		if math.IsNaN(item.Pct) {
			return nil, fmt.Errorf("invalid pct NaN for %s", item.Instrument)
		}
		sum += item.Pct
	}
	if math.Abs(sum-100) > weightSumTolerance {
		return nil, fmt.Errorf("line items should sum to 100, got %f", sum)
	}

	// descending by share; stable, so insertion order breaks ties and
	// repeated calls agree row for row
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Pct > items[j].Pct
	})

	return items, nil
}

func validatePreferences(prefs domain.Preferences) error {
	split := prefs.RegionSplit
	if split.UsaPct < 0 || split.IndiaPct < 0 {
		return fmt.Errorf("%w: region split must be non-negative, got (%f, %f)", ErrInvalidInput, split.UsaPct, split.IndiaPct)
	}
	if math.Abs(split.UsaPct+split.IndiaPct-100) > regionSplitTolerance {
		return fmt.Errorf("%w: region split must sum to 100, got %f", ErrInvalidInput, split.UsaPct+split.IndiaPct)
	}
	return nil
}

// applyHorizonTilt shifts weight between equity and fixed income for
// long or short horizons. A short horizon on a low-fixed-income
// profile is allowed to push fixed income negative here - nothing is
// clamped before normalization.
func applyHorizonTilt(w baseWeights, horizonYears int) baseWeights {
	out := w.copy()
	switch {
	case horizonYears >= longHorizonYears:
		out[category_Equity] += 5
		out[category_FixedIncome] -= 5
	case horizonYears <= shortHorizonYears:
		out[category_Equity] -= 10
		out[category_FixedIncome] += 10
	}
	return out
}

// applyGoldOptOut folds the gold weight into fixed income, not
// equity - opting out of a defensive asset should not raise the
// portfolio's risk.
func applyGoldOptOut(w baseWeights, includeGold bool) baseWeights {
	if includeGold {
		return w
	}
	out := w.copy()
	out[category_FixedIncome] += out[category_Gold]
	out[category_Gold] = 0
	return out
}

func applyCryptoOptOut(w baseWeights, includeCrypto bool) baseWeights {
	if includeCrypto {
		return w
	}
	out := w.copy()
	out[category_Equity] += out[category_Crypto]
	out[category_Crypto] = 0
	return out
}

// applyCryptoCap clamps crypto to the configured cap and moves the
// excess to equity. Runs only when crypto remains included - the
// opt-out step already zeroed it otherwise.
func applyCryptoCap(w baseWeights, includeCrypto bool, capPct float64) baseWeights {
	if !includeCrypto || w[category_Crypto] <= capPct {
		return w
	}
	out := w.copy()
	out[category_Equity] += out[category_Crypto] - capPct
	out[category_Crypto] = capPct
	return out
}

// normalize rescales the snapshot so the categories sum to exactly
// 100. This is the single point that guarantees the sum-to-100
// invariant, so it runs even when the adjustments kept the sum at
// 100 already.
func normalize(w baseWeights) (baseWeights, error) {
	sum := w.total()
	if sum <= 0 {
		return nil, fmt.Errorf("%w: got %f", ErrDegenerateWeights, sum)
	}

	out := make(baseWeights, len(w))
	for k, v := range w {
		normalized := v / sum * 100
		if math.IsNaN(normalized) || math.IsInf(normalized, 0) {
			return nil, fmt.Errorf("%w: normalizing %s produced %f", ErrDegenerateWeights, k, normalized)
		}
		out[k] = normalized
	}
	return out, nil
}

// sectorTilt is one fixed sub-split of a regional equity share.
type sectorTilt struct {
	instrument string
	share      float64 // fraction of the regional equity share
	cagr       domain.CagrRange
	riskTier   domain.RiskTier
	rationale  string
}

var usaEquityTilts = []sectorTilt{
	{
		instrument: "US Broad Market ETF (VTI)",
		share:      0.55,
		cagr:       domain.CagrRange{Low: 8, High: 12},
		riskTier:   domain.RiskTier_Medium,
		rationale:  "Core exposure to the total US market",
	},
	{
		instrument: "US Technology/AI ETF (QQQ)",
		share:      0.20,
		cagr:       domain.CagrRange{Low: 12, High: 18},
		riskTier:   domain.RiskTier_High,
		rationale:  "Growth tilt toward technology and AI leaders",
	},
	{
		instrument: "US Healthcare ETF (XLV)",
		share:      0.10,
		cagr:       domain.CagrRange{Low: 8, High: 12},
		riskTier:   domain.RiskTier_Medium,
		rationale:  "Defensive sector with steady demand",
	},
	{
		instrument: "US Energy ETF (XLE)",
		share:      0.08,
		cagr:       domain.CagrRange{Low: 8, High: 12},
		riskTier:   domain.RiskTier_Medium,
		rationale:  "Inflation-sensitive real-asset exposure",
	},
	{
		instrument: "US Industrials ETF (XLI)",
		share:      0.07,
		cagr:       domain.CagrRange{Low: 8, High: 12},
		riskTier:   domain.RiskTier_Medium,
		rationale:  "Cyclical exposure to manufacturing and infrastructure",
	},
}

var indiaEquityTilts = []sectorTilt{
	{
		instrument: "Nifty 50 Index Fund",
		share:      0.55,
		cagr:       domain.CagrRange{Low: 10, High: 14},
		riskTier:   domain.RiskTier_Medium,
		rationale:  "Core exposure to India's largest companies",
	},
	{
		instrument: "Nifty Midcap 150 Fund",
		share:      0.20,
		cagr:       domain.CagrRange{Low: 14, High: 20},
		riskTier:   domain.RiskTier_High,
		rationale:  "Midcap growth tilt with higher volatility",
	},
	{
		instrument: "Nifty Financial Services Fund",
		share:      0.10,
		cagr:       domain.CagrRange{Low: 10, High: 14},
		riskTier:   domain.RiskTier_Medium,
		rationale:  "Banks and insurers riding credit growth",
	},
	{
		instrument: "India Manufacturing/Infra Fund",
		share:      0.10,
		cagr:       domain.CagrRange{Low: 10, High: 14},
		riskTier:   domain.RiskTier_Medium,
		rationale:  "Capex cycle and infrastructure buildout",
	},
	{
		instrument: "India Export-Tech Fund",
		share:      0.05,
		cagr:       domain.CagrRange{Low: 10, High: 14},
		riskTier:   domain.RiskTier_Medium,
		rationale:  "IT services earning in foreign currency",
	},
}

// instrumentSpec is the fixed display metadata for a non-equity line.
type instrumentSpec struct {
	instrument string
	cagr       domain.CagrRange
	riskTier   domain.RiskTier
	rationale  string
}

var nonEquityInstruments = map[category]map[domain.Country]instrumentSpec{
	category_FixedIncome: {
		domain.Country_USA: {
			instrument: "US Aggregate Bond ETF (AGG)",
			cagr:       domain.CagrRange{Low: 4, High: 5.5},
			riskTier:   domain.RiskTier_Low,
			rationale:  "Investment-grade ballast against equity drawdowns",
		},
		domain.Country_India: {
			instrument: "India Corporate Bond Fund",
			cagr:       domain.CagrRange{Low: 6.5, High: 8},
			riskTier:   domain.RiskTier_Low,
			rationale:  "Higher-yielding INR debt with moderate duration",
		},
	},
	category_Gold: {
		domain.Country_USA: {
			instrument: "Gold ETF (GLD)",
			cagr:       domain.CagrRange{Low: 5, High: 8},
			riskTier:   domain.RiskTier_Low,
			rationale:  "Inflation and crisis hedge",
		},
		domain.Country_India: {
			instrument: "Sovereign Gold Bonds",
			cagr:       domain.CagrRange{Low: 6, High: 9},
			riskTier:   domain.RiskTier_Low,
			rationale:  "Gold exposure plus sovereign-paid interest",
		},
	},
	category_Reits: {
		domain.Country_USA: {
			instrument: "US REIT ETF (VNQ)",
			cagr:       domain.CagrRange{Low: 6, High: 10},
			riskTier:   domain.RiskTier_Medium,
			rationale:  "Income-producing real estate with listed liquidity",
		},
		domain.Country_India: {
			instrument: "India REITs (Embassy/Mindspace)",
			cagr:       domain.CagrRange{Low: 7, High: 11},
			riskTier:   domain.RiskTier_Medium,
			rationale:  "Commercial real estate yield in a growth market",
		},
	},
	category_Cash: {
		domain.Country_USA: {
			instrument: "USD Money Market Fund",
			cagr:       domain.CagrRange{Low: 3, High: 4.5},
			riskTier:   domain.RiskTier_Low,
			rationale:  "Liquidity buffer for rebalancing and emergencies",
		},
		domain.Country_India: {
			instrument: "INR Liquid Fund",
			cagr:       domain.CagrRange{Low: 5, High: 6.5},
			riskTier:   domain.RiskTier_Low,
			rationale:  "Parking INR cash at short-term rates",
		},
	},
}

var cryptoInstrument = instrumentSpec{
	instrument: "Bitcoin + Ethereum Basket",
	cagr:       domain.CagrRange{Low: 10, High: 30},
	riskTier:   domain.RiskTier_VeryHigh,
	rationale:  "Small speculative sleeve, capped by preference",
}

var assetClassByCategory = map[category]domain.AssetClass{
	category_Equity:      domain.AssetClass_Equity,
	category_FixedIncome: domain.AssetClass_FixedIncome,
	category_Gold:        domain.AssetClass_Commodity,
	category_Reits:       domain.AssetClass_REITs,
	category_Cash:        domain.AssetClass_Cash,
	category_Crypto:      domain.AssetClass_Crypto,
}

// expandLineItems splits every normalized category weight into its
// USA and India shares and maps each positive share to instrument
// rows. Equity shares fan out into the fixed sector tilts; the other
// categories emit at most one row per region. Crypto is a single
// Global row.
func expandLineItems(weights baseWeights, split domain.RegionSplit) []domain.LineItem {
	usaFraction := split.UsaPct / 100
	indiaFraction := split.IndiaPct / 100

	items := []domain.LineItem{}

	appendEquityTilts := func(regionShare float64, country domain.Country, tilts []sectorTilt) {
		if regionShare <= 0 {
			return
		}
		for _, tilt := range tilts {
			items = append(items, domain.LineItem{
				AssetClass:   domain.AssetClass_Equity,
				Instrument:   tilt.instrument,
				Country:      country,
				Pct:          regionShare * tilt.share,
				ExpectedCagr: tilt.cagr,
				RiskTier:     tilt.riskTier,
				Rationale:    tilt.rationale,
			})
		}
	}
	appendEquityTilts(weights[category_Equity]*usaFraction, domain.Country_USA, usaEquityTilts)
	appendEquityTilts(weights[category_Equity]*indiaFraction, domain.Country_India, indiaEquityTilts)

	for _, cat := range []category{category_FixedIncome, category_Gold, category_Reits, category_Cash} {
		for _, regional := range []struct {
			country domain.Country
			share   float64
		}{
			{domain.Country_USA, weights[cat] * usaFraction},
			{domain.Country_India, weights[cat] * indiaFraction},
		} {
			if regional.share <= 0 {
				continue
			}
			inst := nonEquityInstruments[cat][regional.country]
			items = append(items, domain.LineItem{
				AssetClass:   assetClassByCategory[cat],
				Instrument:   inst.instrument,
				Country:      regional.country,
				Pct:          regional.share,
				ExpectedCagr: inst.cagr,
				RiskTier:     inst.riskTier,
				Rationale:    inst.rationale,
			})
		}
	}

	if weights[category_Crypto] > 0 {
		items = append(items, domain.LineItem{
			AssetClass:   domain.AssetClass_Crypto,
			Instrument:   cryptoInstrument.instrument,
			Country:      domain.Country_Global,
			Pct:          weights[category_Crypto],
			ExpectedCagr: cryptoInstrument.cagr,
			RiskTier:     cryptoInstrument.riskTier,
			Rationale:    cryptoInstrument.rationale,
		})
	}

	return items
}

// ConsolidatedInstrument names the synthetic row that absorbs slices
// below the consolidation threshold.
const ConsolidatedInstrument = "Consolidated (small allocations)"

// consolidateSmallSlices removes rows under the threshold and folds
// their total into one synthetic Cash/Global row, preserving the
// sum-to-100 invariant while keeping the table readable.
func consolidateSmallSlices(items []domain.LineItem) []domain.LineItem {
	kept := make([]domain.LineItem, 0, len(items))
	consolidated := 0.0
	for _, item := range items {
		if item.Pct < consolidationThresholdPct {
			consolidated += item.Pct
			continue
		}
		kept = append(kept, item)
	}

	if consolidated > 0 {
		kept = append(kept, domain.LineItem{
			AssetClass:   domain.AssetClass_Cash,
			Instrument:   ConsolidatedInstrument,
			Country:      domain.Country_Global,
			Pct:          consolidated,
			ExpectedCagr: domain.CagrRange{},
			RiskTier:     domain.RiskTier_Low,
			Rationale:    "Slices below the display threshold, merged",
		})
	}

	return kept
}
