package valuation

import (
	"math"

	"gas-storage-valuation/internal/model"
)

// periodsPerYear annualizes the period index for discounting. The forward
// curves this system produces are always monthly.
const periodsPerYear = 12

// DiscountFactor present-values a cash flow occurring at the given period
// index: (1 + rate)^(-index/12).
func DiscountFactor(rate float64, period int) float64 {
	return math.Pow(1+rate, -float64(period)/periodsPerYear)
}

// BuildSpreadMatrix computes the discounted net profit per unit volume for
// every ordered pair (inject at i, withdraw at j), j > i:
//
//	spread[i][j] = (price[j] - withdrawalCost) * df(j)
//	             - (price[i] + injectionCost)  * df(i)
//
// The diagonal and lower triangle stay zero: injection must precede
// withdrawal.
func BuildSpreadMatrix(points []model.ForwardPricePoint, facility model.FacilityParams) [][]float64 {
	n := len(points)
	spreads := make([][]float64, n)
	for i := range spreads {
		spreads[i] = make([]float64, n)
	}

	df := make([]float64, n)
	for k := 0; k < n; k++ {
		df[k] = DiscountFactor(facility.DiscountRate, k)
	}

	for i := 0; i < n; i++ {
		injectionCostPV := (points[i].Price + facility.InjectionCost) * df[i]
		for j := i + 1; j < n; j++ {
			withdrawalRevPV := (points[j].Price - facility.WithdrawalCost) * df[j]
			spreads[i][j] = withdrawalRevPV - injectionCostPV
		}
	}
	return spreads
}
