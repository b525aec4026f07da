package analysis

import (
	"math"
	"sort"

	"gas-storage-valuation/internal/model"
	"gas-storage-valuation/internal/valuation"
)

// StoragePotential is a curve-level summary useful for a quick "is this
// curve worth storing against" read. It intentionally does not depend on a
// specific facility; BestSpread uses a canonical cost-free facility.
type StoragePotential struct {
	Periods int `json:"periods"`

	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
	MeanPrice float64 `json:"mean_price"`
	P05Price  float64 `json:"p05_price"`
	P95Price  float64 `json:"p95_price"`

	SpreadP95P05 float64 `json:"spread_p95_p05"`

	// BestSpread is the largest discounted unit profit over all ordered
	// inject/withdraw pairs assuming zero transaction costs.
	BestSpread        float64 `json:"best_spread"`
	BestInjectIndex   int     `json:"best_inject_index"`
	BestWithdrawIndex int     `json:"best_withdraw_index"`
}

func ComputePotential(points []model.ForwardPricePoint, discountRate float64) StoragePotential {
	p := StoragePotential{BestInjectIndex: -1, BestWithdrawIndex: -1}
	if len(points) == 0 {
		return p
	}
	p.Periods = len(points)

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(points))
	for _, pt := range points {
		v := pt.Price
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	p.MinPrice = minv
	p.MaxPrice = maxv
	p.MeanPrice = sum / float64(len(vals))
	p.P05Price = percentileSorted(vals, 0.05)
	p.P95Price = percentileSorted(vals, 0.95)
	p.SpreadP95P05 = p.P95Price - p.P05Price

	p.BestSpread, p.BestInjectIndex, p.BestWithdrawIndex = bestDiscountedSpread(points, discountRate)
	return p
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// bestDiscountedSpread scans all ordered pairs for the largest
// df(j)*price[j] - df(i)*price[i].
func bestDiscountedSpread(points []model.ForwardPricePoint, rate float64) (best float64, injectAt, withdrawAt int) {
	injectAt, withdrawAt = -1, -1
	n := len(points)
	df := make([]float64, n)
	for k := 0; k < n; k++ {
		df[k] = valuation.DiscountFactor(rate, k)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			spread := points[j].Price*df[j] - points[i].Price*df[i]
			if spread > best {
				best = spread
				injectAt, withdrawAt = i, j
			}
		}
	}
	return best, injectAt, withdrawAt
}
