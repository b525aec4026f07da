package valuation

import "gas-storage-valuation/internal/model"

// Engine computes the static intrinsic value of a storage facility against
// a forward curve. Pure computation: no I/O, no shared state between runs,
// safe to call concurrently for different inputs.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Optimize produces a feasible, capacity- and rate-constrained schedule of
// injections and withdrawals maximizing discounted cash value under the
// greedy pair-allocation heuristic.
//
// Inputs are trusted: callers must have validated facility parameters
// (model.NewFacility) and clamped InitialInventory into [0, Capacity].
func (e *Engine) Optimize(points []model.ForwardPricePoint, facility model.FacilityParams) *Result {
	n := len(points)
	if n < 2 {
		// No inject/withdraw pair possible; zero-activity schedule.
		return assemble(points, facility, allocation{
			injection:  make([]float64, n),
			withdrawal: make([]float64, n),
		})
	}

	spreads := BuildSpreadMatrix(points, facility)
	alloc := allocate(points, facility, spreads)
	return assemble(points, facility, alloc)
}

// assemble replays the committed volumes into a period-by-period schedule
// with running inventory and aggregates summary statistics.
func assemble(points []model.ForwardPricePoint, facility model.FacilityParams, alloc allocation) *Result {
	res := &Result{
		Schedule:      make([]ScheduleRow, len(points)),
		Trades:        alloc.trades,
		TotalValue:    alloc.totalValue,
		PeakInventory: facility.InitialInventory,
		Facility:      facility,
	}

	inventory := facility.InitialInventory
	for k, pt := range points {
		injection := alloc.injection[k]
		withdrawal := alloc.withdrawal[k]
		netFlow := injection - withdrawal
		inventory += netFlow

		res.TotalInjection += injection
		res.TotalWithdrawal += withdrawal
		if inventory > res.PeakInventory {
			res.PeakInventory = inventory
		}

		res.Schedule[k] = ScheduleRow{
			Index:           k,
			Label:           pt.Label,
			Price:           pt.Price,
			Action:          model.ActionFromNetFlow(netFlow),
			Injection:       injection,
			Withdrawal:      withdrawal,
			NetFlow:         netFlow,
			EndingInventory: inventory,
		}
	}
	res.FinalInventory = inventory

	return res
}
