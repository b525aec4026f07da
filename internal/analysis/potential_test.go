package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gas-storage-valuation/internal/model"
)

func monthlyPoints(prices ...float64) []model.ForwardPricePoint {
	points := make([]model.ForwardPricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.ForwardPricePoint{Price: p, PeriodLengthDays: 30}
	}
	return points
}

func TestComputePotential(t *testing.T) {
	p := ComputePotential(monthlyPoints(2.0, 2.5, 3.0, 4.0, 3.5), 0)

	assert.Equal(t, 5, p.Periods)
	assert.Equal(t, 2.0, p.MinPrice)
	assert.Equal(t, 4.0, p.MaxPrice)
	assert.InDelta(t, 3.0, p.MeanPrice, 1e-12)
	assert.Greater(t, p.SpreadP95P05, 0.0)

	// Zero discount rate: the best pair is simply min before max.
	assert.InDelta(t, 2.0, p.BestSpread, 1e-12)
	assert.Equal(t, 0, p.BestInjectIndex)
	assert.Equal(t, 3, p.BestWithdrawIndex)
}

func TestComputePotentialDiscounting(t *testing.T) {
	p := ComputePotential(monthlyPoints(2.0, 2.5, 4.0), 0.05)

	// Discounting shrinks the later leg but the pair survives.
	assert.Equal(t, 0, p.BestInjectIndex)
	assert.Equal(t, 2, p.BestWithdrawIndex)
	assert.Less(t, p.BestSpread, 2.0)
	assert.Greater(t, p.BestSpread, 1.9)
}

func TestComputePotentialInverted(t *testing.T) {
	p := ComputePotential(monthlyPoints(4.0, 3.0, 2.0), 0)

	assert.Zero(t, p.BestSpread)
	assert.Equal(t, -1, p.BestInjectIndex)
	assert.Equal(t, -1, p.BestWithdrawIndex)
}

func TestComputePotentialEmpty(t *testing.T) {
	p := ComputePotential(nil, 0.05)

	assert.Zero(t, p.Periods)
	assert.Equal(t, -1, p.BestInjectIndex)
	assert.Equal(t, -1, p.BestWithdrawIndex)
}

func TestPercentileSorted(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, 1.0, percentileSorted(vals, 0))
	assert.Equal(t, 5.0, percentileSorted(vals, 1))
	assert.InDelta(t, 3.0, percentileSorted(vals, 0.5), 1e-12)
	assert.InDelta(t, 1.2, percentileSorted(vals, 0.05), 1e-12)
	assert.Zero(t, percentileSorted(nil, 0.5))
}

func TestRankByValue(t *testing.T) {
	points := monthlyPoints(2.0, 2.2, 2.4, 3.6, 4.0, 3.8)
	small := model.FacilityParams{
		Capacity:          100_000,
		MaxInjectionRate:  1_000,
		MaxWithdrawalRate: 2_000,
		InjectionCost:     0.02,
		WithdrawalCost:    0.01,
		DiscountRate:      0.05,
	}
	big := small
	big.Capacity = 1_000_000
	big.MaxInjectionRate = 10_000
	big.MaxWithdrawalRate = 20_000

	ranked := RankByValue(points, map[string]model.FacilityParams{
		"small": small,
		"big":   big,
	})

	require.Len(t, ranked, 2)
	assert.Equal(t, "big", ranked[0].Name)
	assert.Equal(t, "small", ranked[1].Name)
	assert.Greater(t, ranked[0].TotalValue, ranked[1].TotalValue)
	assert.Greater(t, ranked[0].NumTrades, 0)
}

func TestRankByValueTieBreaksByName(t *testing.T) {
	params := model.FacilityParams{
		Capacity:          100_000,
		MaxInjectionRate:  1_000,
		MaxWithdrawalRate: 1_000,
		DiscountRate:      0.05,
	}
	ranked := RankByValue(monthlyPoints(2.0, 3.0), map[string]model.FacilityParams{
		"b": params,
		"a": params,
	})

	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].Name)
	assert.Equal(t, "b", ranked[1].Name)
}
