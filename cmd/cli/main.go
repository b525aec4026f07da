package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gas-storage-valuation/internal/analysis"
	"gas-storage-valuation/internal/config"
	"gas-storage-valuation/internal/curve"
	"gas-storage-valuation/internal/data"
	"gas-storage-valuation/internal/model"
	"gas-storage-valuation/internal/valuation"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "value":
		cmdValue(os.Args[2:])
	case "curve":
		cmdCurve(os.Args[2:])
	case "analyze":
		cmdAnalyze(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli value --curve data/curve.json --config examples/config.yaml --out results/schedule.csv")
	fmt.Println("  cli value --live --config examples/config.yaml")
	fmt.Println("  cli curve --months 24")
	fmt.Println("  cli analyze --curve data/curve.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - value optimizes the storage schedule and writes it as CSV")
	fmt.Println("  - curve prints the live forward curve")
	fmt.Println("  - analyze prints seasonal spread statistics for a curve")
}

func cmdValue(args []string) {
	fs := flag.NewFlagSet("value", flag.ExitOnError)
	curvePath := fs.String("curve", "", "Path to curve snapshot JSON (see fetch-curve)")
	live := fs.Bool("live", false, "Fetch the forward curve live instead of from a snapshot")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/schedule.csv", "Output CSV path")
	showTrades := fs.Bool("trades", false, "Print the committed trades")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	points := loadPoints(*curvePath, *live, cfg.Curve.Months)

	engine := valuation.New()
	res := engine.Optimize(points, cfg.Facility.ToModelParams())

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := valuation.WriteScheduleCSVFile(*outPath, res); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(res.Schedule), *outPath)
	fmt.Printf("Total value=$%.2f Injection=%.0f Withdrawal=%.0f Peak inventory=%.0f\n",
		res.TotalValue, res.TotalInjection, res.TotalWithdrawal, res.PeakInventory)

	if *showTrades {
		fmt.Printf("%-4s %-10s %-10s %-12s %-10s %-12s\n", "#", "inject", "withdraw", "volume", "spread", "profit")
		for i, t := range res.Trades {
			fmt.Printf("%-4d %-10s %-10s %-12.0f %-10.4f %-12.2f\n",
				i+1, t.InjectLabel, t.WithdrawLabel, t.Volume, t.Spread, t.Profit)
		}
	}
}

func cmdCurve(args []string) {
	fs := flag.NewFlagSet("curve", flag.ExitOnError)
	months := fs.Int("months", 24, "Number of delivery months to fetch")
	_ = fs.Parse(args)

	client := data.NewQuoteClient("")
	quotes, err := client.FetchForwardCurve(context.Background(), *months)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-4s %-10s %-10s %-8s %-6s\n", "idx", "contract", "symbol", "price", "days")
	for i, q := range quotes {
		fmt.Printf("%-4d %-10s %-10s %-8.4f %-6d\n",
			i, q.Contract, q.Symbol, q.Price, curve.PeriodLength(q))
	}
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	curvePath := fs.String("curve", "", "Path to curve snapshot JSON")
	live := fs.Bool("live", false, "Fetch the forward curve live")
	months := fs.Int("months", 24, "Delivery months to fetch when --live")
	discountRate := fs.Float64("discount-rate", 0.05, "Annualized discount rate")
	_ = fs.Parse(args)

	points := loadPoints(*curvePath, *live, *months)
	p := analysis.ComputePotential(points, *discountRate)

	fmt.Printf("periods:        %d\n", p.Periods)
	fmt.Printf("price min/max:  %.4f / %.4f (mean %.4f)\n", p.MinPrice, p.MaxPrice, p.MeanPrice)
	fmt.Printf("p05/p95:        %.4f / %.4f (spread %.4f)\n", p.P05Price, p.P95Price, p.SpreadP95P05)
	if p.BestInjectIndex >= 0 {
		fmt.Printf("best spread:    %.4f (inject period %d, withdraw period %d)\n",
			p.BestSpread, p.BestInjectIndex, p.BestWithdrawIndex)
	} else {
		fmt.Println("best spread:    none (no profitable pair)")
	}
}

func loadPoints(curvePath string, live bool, months int) []model.ForwardPricePoint {
	if live {
		client := data.NewQuoteClient("")
		quotes, err := client.FetchForwardCurve(context.Background(), months)
		if err != nil {
			panic(err)
		}
		return curve.Normalize(quotes)
	}

	if curvePath == "" {
		curvePath = data.GetDefaultCurvePath()
	}
	snap, err := data.LoadCurveSnapshot(curvePath)
	if err != nil {
		panic(err)
	}
	return curve.Normalize(snap.Quotes)
}
