package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"gas-storage-valuation/internal/data"
)

func main() {
	var (
		months     = flag.Int("months", 24, "Number of delivery months to fetch")
		outputPath = flag.String("output", "", "Output file path (default: ./data/curve.json)")
	)
	flag.Parse()

	if *outputPath == "" {
		*outputPath = data.GetDefaultCurvePath()
	}

	client := data.NewQuoteClient("")

	fmt.Printf("Fetching forward curve for %d months...\n", *months)
	quotes, err := client.FetchForwardCurve(context.Background(), *months)
	if err != nil {
		log.Fatalf("Failed to fetch forward curve: %v", err)
	}
	if len(quotes) == 0 {
		log.Fatal("No contracts quoted; nothing to save")
	}

	snap := &data.CurveSnapshot{
		Source: client.BaseURL,
		Quotes: quotes,
	}
	if err := data.SaveCurveSnapshot(snap, *outputPath); err != nil {
		log.Fatalf("Failed to save curve snapshot: %v", err)
	}

	fmt.Printf("Saved %d contracts to %s\n", len(quotes), *outputPath)
	fmt.Printf("Front month: %s @ %.4f\n", quotes[0].Contract, quotes[0].Price)
}
