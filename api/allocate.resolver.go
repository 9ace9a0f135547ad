package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Premkumar5225/global-invest-simulator/internal"
	"github.com/Premkumar5225/global-invest-simulator/internal/domain"
)

type AllocateRequest struct {
	Budget             float64 `json:"budget"`
	HorizonYears       int     `json:"horizonYears"`
	RiskProfile        string  `json:"riskProfile"`
	UsaPct             float64 `json:"usaPct"`
	IndiaPct           float64 `json:"indiaPct"`
	IncludeGold        bool    `json:"includeGold"`
	IncludeCrypto      bool    `json:"includeCrypto"`
	CryptoCapPct       float64 `json:"cryptoCapPct"`
	Currency           string  `json:"currency"`
	RebalanceFrequency string  `json:"rebalanceFrequency"`
}

type LineItemResponse struct {
	AssetClass  string  `json:"assetClass"`
	Instrument  string  `json:"instrument"`
	Country     string  `json:"country"`
	Pct         float64 `json:"pct"`
	ExpCagrLow  float64 `json:"expCagrLow"`
	ExpCagrHigh float64 `json:"expCagrHigh"`
	RiskTier    string  `json:"riskTier"`
	Rationale   string  `json:"rationale"`
}

type SummaryResponse struct {
	NumLines         int     `json:"numLines"`
	WeightedCagrLow  float64 `json:"weightedCagrLow"`
	WeightedCagrHigh float64 `json:"weightedCagrHigh"`
	MeanBandWidth    float64 `json:"meanBandWidth"`
	MaxSinglePct     float64 `json:"maxSinglePct"`
}

type AllocateResponse struct {
	LineItems    []LineItemResponse `json:"lineItems"`
	ByAssetClass map[string]float64 `json:"byAssetClass"`
	ByCountry    map[string]float64 `json:"byCountry"`
	TopByPct     []LineItemResponse `json:"topByPct"`
	Summary      SummaryResponse    `json:"summary"`
}

// how many rows feed the CAGR comparison bar
const topComparisonSize = 8

func (m ApiHandler) allocate(c *gin.Context) {
	var requestBody AllocateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	prefs, err := preferencesFromRequest(requestBody)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	items, err := internal.Allocate(*prefs)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	summary, err := internal.Summarize(items)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, AllocateResponse{
		LineItems:    lineItemResponses(items),
		ByAssetClass: stringKeyed(internal.GroupPctByAssetClass(items)),
		ByCountry:    stringKeyed(internal.GroupPctByCountry(items)),
		TopByPct:     lineItemResponses(internal.TopByPct(items, topComparisonSize)),
		Summary: SummaryResponse{
			NumLines:         summary.NumLines,
			WeightedCagrLow:  summary.WeightedCagrLow,
			WeightedCagrHigh: summary.WeightedCagrHigh,
			MeanBandWidth:    summary.MeanBandWidth,
			MaxSinglePct:     summary.MaxSinglePct,
		},
	})
}

func preferencesFromRequest(requestBody AllocateRequest) (*domain.Preferences, error) {
	riskProfile, err := domain.NewRiskProfile(requestBody.RiskProfile)
	if err != nil {
		return nil, fmt.Errorf("could not parse risk profile: %w", err)
	}

	currency := domain.Currency_USD
	if requestBody.Currency != "" {
		parsed, err := domain.NewCurrency(requestBody.Currency)
		if err != nil {
			return nil, fmt.Errorf("could not parse currency: %w", err)
		}
		currency = *parsed
	}

	rebalance := domain.RebalanceFrequency_Quarterly
	if requestBody.RebalanceFrequency != "" {
		parsed, err := domain.NewRebalanceFrequency(requestBody.RebalanceFrequency)
		if err != nil {
			return nil, fmt.Errorf("could not parse rebalance frequency: %w", err)
		}
		rebalance = *parsed
	}

	return &domain.Preferences{
		Budget:       requestBody.Budget,
		HorizonYears: requestBody.HorizonYears,
		RiskProfile:  *riskProfile,
		RegionSplit: domain.RegionSplit{
			UsaPct:   requestBody.UsaPct,
			IndiaPct: requestBody.IndiaPct,
		},
		IncludeGold:        requestBody.IncludeGold,
		IncludeCrypto:      requestBody.IncludeCrypto,
		CryptoCapPct:       requestBody.CryptoCapPct,
		Currency:           currency,
		RebalanceFrequency: rebalance,
	}, nil
}

func lineItemResponses(items []domain.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, LineItemResponse{
			AssetClass:  string(item.AssetClass),
			Instrument:  item.Instrument,
			Country:     string(item.Country),
			Pct:         item.Pct,
			ExpCagrLow:  item.ExpectedCagr.Low,
			ExpCagrHigh: item.ExpectedCagr.High,
			RiskTier:    string(item.RiskTier),
			Rationale:   item.Rationale,
		})
	}
	return out
}

func stringKeyed[K ~string](in map[K]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}
