package export

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/Premkumar5225/global-invest-simulator/internal/domain"
)

type csvRow struct {
	AssetClass    string `csv:"Asset Class"`
	Instrument    string `csv:"Instrument"`
	Country       string `csv:"Country"`
	AllocationPct string `csv:"Allocation %"`
	Amount        string `csv:"Amount"`
	CagrLow       string `csv:"Exp CAGR Low"`
	CagrHigh      string `csv:"Exp CAGR High"`
	Risk          string `csv:"Risk"`
	Rationale     string `csv:"Rationale"`
}

// MarshalAllocation renders line items as CSV, one row per item,
// percentages to two decimals. Amount is the budget share of the row
// in the preference currency; the weight math never saw the budget,
// so this is the one place it gets applied.
func MarshalAllocation(prefs domain.Preferences, items []domain.LineItem) (string, error) {
	budget := decimal.NewFromFloat(prefs.Budget)

	rows := make([]csvRow, 0, len(items))
	for _, item := range items {
		amount := budget.Mul(decimal.NewFromFloat(item.Pct)).Div(decimal.NewFromInt(100))
		rows = append(rows, csvRow{
			AssetClass:    string(item.AssetClass),
			Instrument:    item.Instrument,
			Country:       string(item.Country),
			AllocationPct: fmt.Sprintf("%.2f", item.Pct),
			Amount:        FormatAmount(amount, prefs.Currency),
			CagrLow:       fmt.Sprintf("%.2f", item.ExpectedCagr.Low),
			CagrHigh:      fmt.Sprintf("%.2f", item.ExpectedCagr.High),
			Risk:          string(item.RiskTier),
			Rationale:     item.Rationale,
		})
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("failed to marshal allocation csv: %w", err)
	}
	return out, nil
}

// FormatAmount renders a monetary amount with the symbol and digit
// grouping of the given currency.
func FormatAmount(amount decimal.Decimal, currency domain.Currency) string {
	minorUnits := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(minorUnits, string(currency)).Display()
}
