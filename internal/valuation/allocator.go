package valuation

import (
	"math"
	"sort"

	"gas-storage-valuation/internal/model"
)

// Trade is one committed inject/withdraw pair.
type Trade struct {
	InjectPeriod   int     `json:"inject_period"`
	WithdrawPeriod int     `json:"withdraw_period"`
	InjectLabel    string  `json:"inject_label"`
	WithdrawLabel  string  `json:"withdraw_label"`
	Volume         float64 `json:"volume"`
	Spread         float64 `json:"spread"`
	Profit         float64 `json:"profit"`
}

type spreadPair struct {
	i, j   int
	spread float64
}

type allocation struct {
	injection  []float64
	withdrawal []float64
	trades     []Trade
	totalValue float64
}

// allocate commits volume to positive-spread pairs, most profitable first.
// Greedy and single-pass: not globally optimal (pair ordering can lock out
// profitable headroom) but deterministic and always feasible.
func allocate(points []model.ForwardPricePoint, facility model.FacilityParams, spreads [][]float64) allocation {
	n := len(points)
	a := allocation{
		injection:  make([]float64, n),
		withdrawal: make([]float64, n),
	}

	pairs := make([]spreadPair, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if spreads[i][j] > 0 {
				pairs = append(pairs, spreadPair{i: i, j: j, spread: spreads[i][j]})
			}
		}
	}
	// Stable sort keeps (i,j) enumeration order on equal spreads, which
	// makes the output deterministic for ambiguous inputs.
	sort.SliceStable(pairs, func(x, y int) bool {
		return pairs[x].spread > pairs[y].spread
	})

	injRoom := make([]float64, n)
	wdRoom := make([]float64, n)
	for k := 0; k < n; k++ {
		injRoom[k] = facility.MaxInjection(points[k].PeriodLengthDays)
		wdRoom[k] = facility.MaxWithdrawal(points[k].PeriodLengthDays)
	}

	for _, p := range pairs {
		// Recompute the trajectory from everything committed so far.
		// O(n) per pair, fine for curves of tens of periods.
		inv := inventoryTrajectory(facility.InitialInventory, a.injection, a.withdrawal)

		// Capacity headroom across the holding interval [i, j): the new
		// volume sits in storage at every boundary before withdrawal.
		headroom := math.Inf(1)
		for k := p.i; k < p.j; k++ {
			if room := facility.Capacity - inv[k]; room < headroom {
				headroom = room
			}
		}

		volume := math.Min(injRoom[p.i], wdRoom[p.j])
		volume = math.Min(volume, headroom)

		// Inventory available for withdrawal at j, counting the prospective
		// injection before it is committed. Never binding while the
		// trajectory stays non-negative, but the ordering is part of the
		// allocation semantics and must not change.
		withdrawable := inv[p.j-1] + volume
		volume = math.Min(volume, withdrawable)

		if volume <= 0 {
			continue
		}

		a.injection[p.i] += volume
		a.withdrawal[p.j] += volume
		injRoom[p.i] -= volume
		wdRoom[p.j] -= volume
		a.totalValue += volume * p.spread
		a.trades = append(a.trades, Trade{
			InjectPeriod:   p.i,
			WithdrawPeriod: p.j,
			InjectLabel:    points[p.i].Label,
			WithdrawLabel:  points[p.j].Label,
			Volume:         volume,
			Spread:         p.spread,
			Profit:         volume * p.spread,
		})
	}

	return a
}

// inventoryTrajectory returns ending inventory per period: the running sum
// initial + cumulative injections - cumulative withdrawals.
func inventoryTrajectory(initial float64, injection, withdrawal []float64) []float64 {
	inv := make([]float64, len(injection))
	running := initial
	for k := range injection {
		running += injection[k] - withdrawal[k]
		inv[k] = running
	}
	return inv
}
