package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Premkumar5225/global-invest-simulator/internal"
	"github.com/Premkumar5225/global-invest-simulator/internal/domain"
	"github.com/Premkumar5225/global-invest-simulator/internal/export"
)

type cliFlags struct {
	budget             float64
	horizonYears       int
	riskProfile        string
	usaPct             float64
	includeGold        bool
	includeCrypto      bool
	cryptoCapPct       float64
	currency           string
	rebalanceFrequency string
	outFile            string
}

func main() {
	flags := cliFlags{}

	rootCmd := &cobra.Command{
		Use:   "investsim",
		Short: "Compute a normalized multi-asset allocation from preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}

	rootCmd.Flags().Float64Var(&flags.budget, "budget", 10000, "investable budget")
	rootCmd.Flags().IntVar(&flags.horizonYears, "horizon", 10, "investment horizon in years")
	rootCmd.Flags().StringVar(&flags.riskProfile, "risk", "moderate", "risk profile: conservative | moderate | moderate-aggressive | aggressive")
	rootCmd.Flags().Float64Var(&flags.usaPct, "usa", 60, "USA share of the portfolio in percent; India gets the rest")
	rootCmd.Flags().BoolVar(&flags.includeGold, "gold", true, "include a gold allocation")
	rootCmd.Flags().BoolVar(&flags.includeCrypto, "crypto", false, "include a crypto allocation")
	rootCmd.Flags().Float64Var(&flags.cryptoCapPct, "crypto-cap", 3, "max crypto share in percent")
	rootCmd.Flags().StringVar(&flags.currency, "currency", "USD", "display currency: USD | INR | EUR")
	rootCmd.Flags().StringVar(&flags.rebalanceFrequency, "rebalance", "quarterly", "rebalance frequency: monthly | quarterly | yearly")
	rootCmd.Flags().StringVar(&flags.outFile, "out", "", "write the allocation as CSV to this file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(flags cliFlags) error {
	prefs, err := preferencesFromFlags(flags)
	if err != nil {
		return err
	}

	items, err := internal.Allocate(*prefs)
	if err != nil {
		return err
	}

	if flags.outFile != "" {
		csvBody, err := export.MarshalAllocation(*prefs, items)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.outFile, []byte(csvBody), 0o644); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
		fmt.Printf("wrote %d rows to %s\n", len(items), flags.outFile)
		return nil
	}

	printTable(*prefs, items)
	return nil
}

func preferencesFromFlags(flags cliFlags) (*domain.Preferences, error) {
	riskProfile, err := domain.NewRiskProfile(flags.riskProfile)
	if err != nil {
		return nil, err
	}
	currency, err := domain.NewCurrency(flags.currency)
	if err != nil {
		return nil, err
	}
	rebalance, err := domain.NewRebalanceFrequency(flags.rebalanceFrequency)
	if err != nil {
		return nil, err
	}

	return &domain.Preferences{
		Budget:       flags.budget,
		HorizonYears: flags.horizonYears,
		RiskProfile:  *riskProfile,
		RegionSplit: domain.RegionSplit{
			UsaPct:   flags.usaPct,
			IndiaPct: 100 - flags.usaPct,
		},
		IncludeGold:        flags.includeGold,
		IncludeCrypto:      flags.includeCrypto,
		CryptoCapPct:       flags.cryptoCapPct,
		Currency:           *currency,
		RebalanceFrequency: *rebalance,
	}, nil
}

func printTable(prefs domain.Preferences, items []domain.LineItem) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ASSET CLASS\tINSTRUMENT\tCOUNTRY\tPCT\tAMOUNT\tCAGR\tRISK")

	budget := decimal.NewFromFloat(prefs.Budget)
	for _, item := range items {
		amount := budget.Mul(decimal.NewFromFloat(item.Pct)).Div(decimal.NewFromInt(100))
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f%%\t%s\t%.1f-%.1f%%\t%s\n",
			item.AssetClass,
			item.Instrument,
			item.Country,
			item.Pct,
			export.FormatAmount(amount, prefs.Currency),
			item.ExpectedCagr.Low,
			item.ExpectedCagr.High,
			item.RiskTier,
		)
	}
	w.Flush()

	if summary, err := internal.Summarize(items); err == nil {
		fmt.Printf("\nexpected portfolio CAGR: %.2f%% - %.2f%% across %d positions\n",
			summary.WeightedCagrLow, summary.WeightedCagrHigh, summary.NumLines)
	}
}
