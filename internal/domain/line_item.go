package domain

import (
	"fmt"
	"strings"
)

type AssetClass string

const (
	AssetClass_Equity      AssetClass = "Equity"
	AssetClass_FixedIncome AssetClass = "Fixed Income"
	AssetClass_Commodity   AssetClass = "Commodity"
	AssetClass_REITs       AssetClass = "REITs"
	AssetClass_Cash        AssetClass = "Cash"
	AssetClass_Crypto      AssetClass = "Crypto"
)

type Country string

const (
	Country_USA    Country = "USA"
	Country_India  Country = "India"
	Country_Global Country = "Global"
)

type RiskTier string

const (
	RiskTier_Low      RiskTier = "Low"
	RiskTier_Medium   RiskTier = "Medium"
	RiskTier_High     RiskTier = "High"
	RiskTier_VeryHigh RiskTier = "Very High"
)

func NewRiskTier(s string) (*RiskTier, error) {
	m := map[string]RiskTier{
		"LOW":       RiskTier_Low,
		"MEDIUM":    RiskTier_Medium,
		"HIGH":      RiskTier_High,
		"VERY_HIGH": RiskTier_VeryHigh,
	}
	for k, v := range m {
		if strings.EqualFold(
			strings.ReplaceAll(k, "_", ""),
			strings.NewReplacer("_", "", " ", "").Replace(s),
		) {
			return &v, nil
		}
	}

	return nil, fmt.Errorf("invalid risk tier: %s", s)
}

// CagrRange is an expected compound annual growth band, in percent.
type CagrRange struct {
	Low  float64
	High float64
}

// LineItem is one row of the final allocation: one instrument in one
// country with its share of the portfolio. Rows carry no identity
// beyond their content and are recomputed in full on every call.
type LineItem struct {
	AssetClass   AssetClass
	Instrument   string
	Country      Country
	Pct          float64
	ExpectedCagr CagrRange
	RiskTier     RiskTier
	Rationale    string
}
