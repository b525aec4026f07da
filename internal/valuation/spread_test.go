package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gas-storage-valuation/internal/model"
)

func TestDiscountFactor(t *testing.T) {
	assert.Equal(t, 1.0, DiscountFactor(0.05, 0))
	assert.Equal(t, 1.0, DiscountFactor(0, 7))

	// One year out at 5% discounts by exactly 1/1.05.
	assert.InDelta(t, 1/1.05, DiscountFactor(0.05, 12), 1e-12)

	// Strictly decreasing in the period index.
	prev := DiscountFactor(0.05, 0)
	for k := 1; k <= 24; k++ {
		cur := DiscountFactor(0.05, k)
		assert.Less(t, cur, prev, "period %d", k)
		prev = cur
	}
}

func TestBuildSpreadMatrix(t *testing.T) {
	points := []model.ForwardPricePoint{
		{Label: "Jun 2026", Price: 2.0, PeriodLengthDays: 30},
		{Label: "Jul 2026", Price: 2.6, PeriodLengthDays: 31},
		{Label: "Aug 2026", Price: 3.0, PeriodLengthDays: 31},
	}
	facility := model.FacilityParams{
		Capacity:          100_000,
		MaxInjectionRate:  1_000,
		MaxWithdrawalRate: 1_000,
		InjectionCost:     0.02,
		WithdrawalCost:    0.01,
		DiscountRate:      0.05,
	}

	spreads := BuildSpreadMatrix(points, facility)
	require.Len(t, spreads, 3)

	df1 := math.Pow(1.05, -1.0/12)
	df2 := math.Pow(1.05, -2.0/12)
	assert.InDelta(t, (2.6-0.01)*df1-(2.0+0.02), spreads[0][1], 1e-12)
	assert.InDelta(t, (3.0-0.01)*df2-(2.0+0.02), spreads[0][2], 1e-12)
	assert.InDelta(t, (3.0-0.01)*df2-(2.6+0.02)*df1, spreads[1][2], 1e-12)

	// Withdrawal never precedes injection.
	for i := 0; i < 3; i++ {
		for j := 0; j <= i; j++ {
			assert.Zero(t, spreads[i][j], "spreads[%d][%d]", i, j)
		}
	}
}

func TestBuildSpreadMatrixZeroRate(t *testing.T) {
	points := []model.ForwardPricePoint{
		{Price: 2.0, PeriodLengthDays: 30},
		{Price: 3.0, PeriodLengthDays: 30},
	}
	facility := model.FacilityParams{
		MaxInjectionRate:  1,
		MaxWithdrawalRate: 1,
		InjectionCost:     0.1,
		WithdrawalCost:    0.1,
	}

	spreads := BuildSpreadMatrix(points, facility)
	assert.InDelta(t, 0.8, spreads[0][1], 1e-12)
}
