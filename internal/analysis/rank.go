package analysis

import (
	"sort"

	"gas-storage-valuation/internal/model"
	"gas-storage-valuation/internal/valuation"
)

type RankedFacility struct {
	Name string `json:"name"`

	TotalValue      float64 `json:"total_value"`
	TotalInjection  float64 `json:"total_injection"`
	TotalWithdrawal float64 `json:"total_withdrawal"`
	PeakInventory   float64 `json:"peak_inventory"`
	NumTrades       int     `json:"num_trades"`
}

// RankByValue optimizes each facility against the curve and sorts
// descending by captured value. Useful for comparing facility presets.
func RankByValue(points []model.ForwardPricePoint, facilities map[string]model.FacilityParams) []RankedFacility {
	engine := valuation.New()
	out := make([]RankedFacility, 0, len(facilities))
	for name, params := range facilities {
		res := engine.Optimize(points, params)
		out = append(out, RankedFacility{
			Name:            name,
			TotalValue:      res.TotalValue,
			TotalInjection:  res.TotalInjection,
			TotalWithdrawal: res.TotalWithdrawal,
			PeakInventory:   res.PeakInventory,
			NumTrades:       len(res.Trades),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalValue != out[j].TotalValue {
			return out[i].TotalValue > out[j].TotalValue
		}
		return out[i].Name < out[j].Name
	})
	return out
}
