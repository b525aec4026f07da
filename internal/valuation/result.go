package valuation

import "gas-storage-valuation/internal/model"

// ScheduleRow is one period of the optimized schedule.
// This is the primary artifact for "what the facility does" month by month.
type ScheduleRow struct {
	Index int    `json:"index"`
	Label string `json:"label"`

	Price float64 `json:"price"`

	Action model.Action `json:"action"`

	Injection  float64 `json:"injection"`
	Withdrawal float64 `json:"withdrawal"`
	NetFlow    float64 `json:"net_flow"`

	EndingInventory float64 `json:"ending_inventory"`
}

// Result is the full output of one optimization run. Values are kept at
// full float64 precision; display rounding happens at the CSV/API boundary.
type Result struct {
	Schedule []ScheduleRow
	Trades   []Trade

	TotalValue      float64
	TotalInjection  float64
	TotalWithdrawal float64
	PeakInventory   float64
	FinalInventory  float64

	Facility model.FacilityParams
}
