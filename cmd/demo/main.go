package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gas-storage-valuation/internal/model"
	"gas-storage-valuation/internal/valuation"
)

// Demo:
// - Build a 12-month seasonal forward curve (summer low, winter high)
// - Instantiate a storage facility with typical parameters
// - Optimize and print the resulting schedule to show how models fit together
func main() {
	outCSV := flag.String("out", "", "Optional path to write schedule CSV (e.g. results/schedule.csv)")
	flag.Parse()

	prices := []float64{2.50, 2.30, 2.20, 2.25, 2.35, 2.45, 2.55, 2.80, 3.20, 3.80, 4.00, 3.60}
	labels := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

	points := make([]model.ForwardPricePoint, len(prices))
	for i := range prices {
		points[i] = model.ForwardPricePoint{
			Label:            labels[i],
			Price:            prices[i],
			PeriodLengthDays: 30,
		}
	}

	params := model.FacilityParams{
		Capacity:          1_000_000,
		MaxInjectionRate:  10_000,
		MaxWithdrawalRate: 20_000,
		InjectionCost:     0.02,
		WithdrawalCost:    0.01,
		InitialInventory:  0,
		DiscountRate:      0.05,
	}
	if _, err := model.NewFacility(params); err != nil {
		panic(err)
	}

	engine := valuation.New()
	res := engine.Optimize(points, params)

	fmt.Printf("%-6s %-8s %-12s %-12s %-12s %-12s %-12s\n",
		"period", "price", "action", "injection", "withdrawal", "net_flow", "inventory")
	for _, row := range res.Schedule {
		fmt.Printf("%-6s %-8.2f %-12s %-12.0f %-12.0f %-12.0f %-12.0f\n",
			row.Label, row.Price, row.Action,
			row.Injection, row.Withdrawal, row.NetFlow, row.EndingInventory)
	}

	fmt.Println()
	fmt.Printf("Total value:      $%.2f\n", res.TotalValue)
	fmt.Printf("Total injection:  %.0f\n", res.TotalInjection)
	fmt.Printf("Total withdrawal: %.0f\n", res.TotalWithdrawal)
	fmt.Printf("Peak inventory:   %.0f\n", res.PeakInventory)
	fmt.Printf("Trades:           %d\n", len(res.Trades))

	if *outCSV != "" {
		if err := os.MkdirAll(filepath.Dir(*outCSV), 0o755); err != nil {
			panic(err)
		}
		if err := valuation.WriteScheduleCSVFile(*outCSV, res); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote schedule to %s\n", *outCSV)
	}
}
