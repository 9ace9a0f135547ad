package domain

import (
	"fmt"
	"strings"
)

type RiskProfile string

const (
	RiskProfile_Conservative       RiskProfile = "CONSERVATIVE"
	RiskProfile_Moderate           RiskProfile = "MODERATE"
	RiskProfile_ModerateAggressive RiskProfile = "MODERATE_AGGRESSIVE"
	RiskProfile_Aggressive         RiskProfile = "AGGRESSIVE"
)

func NewRiskProfile(s string) (*RiskProfile, error) {
	m := map[string]RiskProfile{
		"CONSERVATIVE":        RiskProfile_Conservative,
		"MODERATE":            RiskProfile_Moderate,
		"MODERATE_AGGRESSIVE": RiskProfile_ModerateAggressive,
		"AGGRESSIVE":          RiskProfile_Aggressive,
	}
	for k, v := range m {
		if strings.EqualFold(
			strings.ReplaceAll(k, "_", ""),
			strings.NewReplacer("_", "", "-", "", " ", "").Replace(s),
		) {
			return &v, nil
		}
	}

	return nil, fmt.Errorf("invalid risk profile: %s", s)
}

type Currency string

const (
	Currency_USD Currency = "USD"
	Currency_INR Currency = "INR"
	Currency_EUR Currency = "EUR"
)

func NewCurrency(s string) (*Currency, error) {
	m := map[string]Currency{
		"USD": Currency_USD,
		"INR": Currency_INR,
		"EUR": Currency_EUR,
	}
	for k, v := range m {
		if strings.EqualFold(k, s) {
			return &v, nil
		}
	}

	return nil, fmt.Errorf("invalid currency: %s", s)
}

type RebalanceFrequency string

const (
	RebalanceFrequency_Monthly   RebalanceFrequency = "MONTHLY"
	RebalanceFrequency_Quarterly RebalanceFrequency = "QUARTERLY"
	RebalanceFrequency_Yearly    RebalanceFrequency = "YEARLY"
)

func NewRebalanceFrequency(s string) (*RebalanceFrequency, error) {
	m := map[string]RebalanceFrequency{
		"MONTHLY":   RebalanceFrequency_Monthly,
		"QUARTERLY": RebalanceFrequency_Quarterly,
		"YEARLY":    RebalanceFrequency_Yearly,
	}
	for k, v := range m {
		if strings.EqualFold(k, s) {
			return &v, nil
		}
	}

	return nil, fmt.Errorf("invalid rebalance frequency: %s", s)
}

// RegionSplit divides every asset category between the two
// investable regions. The two sides must add to 100.
type RegionSplit struct {
	UsaPct   float64
	IndiaPct float64
}

// Preferences is the full input to the allocation engine. Currency
// and RebalanceFrequency are display-only - the weight math never
// reads them.
type Preferences struct {
	Budget             float64
	HorizonYears       int
	RiskProfile        RiskProfile
	RegionSplit        RegionSplit
	IncludeGold        bool
	IncludeCrypto      bool
	CryptoCapPct       float64
	Currency           Currency
	RebalanceFrequency RebalanceFrequency
}

const (
	MinBudget       = 100.0
	MaxBudget       = 10_000_000.0
	MinHorizonYears = 1
	MaxHorizonYears = 30
	MaxCryptoCapPct = 10.0
)

// Clamped returns a copy with the numeric fields pulled into their
// documented ranges. The form in front of the engine already clamps,
// but the engine must be safe to call in isolation.
func (p Preferences) Clamped() Preferences {
	out := p
	out.Budget = clamp(p.Budget, MinBudget, MaxBudget)
	out.HorizonYears = int(clamp(float64(p.HorizonYears), MinHorizonYears, MaxHorizonYears))
	out.CryptoCapPct = clamp(p.CryptoCapPct, 0, MaxCryptoCapPct)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
